// Package domain holds the scoring request models: the signed method
// envelope and the per-method argument schemas
package domain

import (
	"time"

	"scorebox/internal/schema"
)

// Auth constants. The admin token is bound to the wall-clock hour, see
// service.CheckAuth
const (
	Salt       = "Otus"
	AdminLogin = "admin"
	AdminSalt  = "42"
)

// Gender values accepted by online_score arguments
const (
	GenderUnknown = 0
	GenderMale    = 1
	GenderFemale  = 2
)

// GenderNames maps gender values to labels
var GenderNames = map[int]string{
	GenderUnknown: "unknown",
	GenderMale:    "male",
	GenderFemale:  "female",
}

// Telemetry is the per-call side channel populated by handlers
// (request_id, has, nclients)
type Telemetry map[string]any

// envelopeSchema declares the outer signed request
var envelopeSchema = schema.New(
	schema.Field{Name: "account", Kind: schema.String, Nullable: true},
	schema.Field{Name: "login", Kind: schema.String, Required: true, Nullable: true},
	schema.Field{Name: "token", Kind: schema.String, Required: true, Nullable: true},
	schema.Field{Name: "arguments", Kind: schema.Object, Required: true, Nullable: true},
	schema.Field{Name: "method", Kind: schema.String, Required: true},
)

// Envelope is the parsed outer request
type Envelope struct {
	Account   string
	Login     string
	Token     string
	Method    string
	Arguments map[string]any
}

// IsAdmin reports whether the caller is the fixed admin login
func (e *Envelope) IsAdmin() bool { return e.Login == AdminLogin }

// ParseEnvelope validates body against the envelope schema.
// On failure the error map is returned and the envelope is nil
func ParseEnvelope(body map[string]any, now time.Time) (*Envelope, map[string]string) {
	p := envelopeSchema.Parse(body, now)
	if !p.Valid() {
		return nil, p.Errors()
	}
	return &Envelope{
		Account:   p.String("account"),
		Login:     p.String("login"),
		Token:     p.String("token"),
		Method:    p.String("method"),
		Arguments: p.Object("arguments"),
	}, nil
}

// PairRuleMessage is the cross-field error for online_score arguments
const PairRuleMessage = "At least one pair must be present with non-empty values: " +
	"phone-email, first_name-last_name, or gender-birthday"

// scoreSchema declares online_score arguments. All fields are optional; the
// cross-field rule requires at least one complete pair
var scoreSchema = schema.New(
	schema.Field{Name: "first_name", Kind: schema.String, Nullable: true},
	schema.Field{Name: "last_name", Kind: schema.String, Nullable: true},
	schema.Field{Name: "email", Kind: schema.Email, Nullable: true},
	schema.Field{Name: "phone", Kind: schema.Phone, Nullable: true},
	schema.Field{Name: "birthday", Kind: schema.Birthday, Nullable: true},
	schema.Field{Name: "gender", Kind: schema.Gender, Nullable: true},
).WithRule(func(p *schema.Parsed) string {
	pairs := [][2]string{
		{"phone", "email"},
		{"first_name", "last_name"},
		{"gender", "birthday"},
	}
	for _, pair := range pairs {
		if p.Present(pair[0]) && p.Present(pair[1]) {
			return ""
		}
	}
	return PairRuleMessage
})

// ScoreArgs is the parsed online_score payload
type ScoreArgs struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	Birthday    time.Time
	HasBirthday bool
	Gender      int
	HasGender   bool

	// Has lists present non-empty field names in schema declaration order
	Has []string
}

// ParseScoreArgs validates raw against the online_score schema
func ParseScoreArgs(raw map[string]any, now time.Time) (*ScoreArgs, map[string]string) {
	p := scoreSchema.Parse(raw, now)
	if !p.Valid() {
		return nil, p.Errors()
	}
	a := &ScoreArgs{
		FirstName: p.String("first_name"),
		LastName:  p.String("last_name"),
		Email:     p.String("email"),
		Phone:     p.String("phone"),
		Has:       p.PresentFields(),
	}
	a.Birthday, a.HasBirthday = p.Time("birthday")
	a.Gender, a.HasGender = p.Int("gender")
	return a, nil
}

// interestsSchema declares clients_interests arguments
var interestsSchema = schema.New(
	schema.Field{Name: "client_ids", Kind: schema.ClientIDList, Required: true},
	schema.Field{Name: "date", Kind: schema.Date, Nullable: true},
)

// InterestsArgs is the parsed clients_interests payload
type InterestsArgs struct {
	ClientIDs []int64

	Date    time.Time
	HasDate bool
}

// ParseInterestsArgs validates raw against the clients_interests schema
func ParseInterestsArgs(raw map[string]any, now time.Time) (*InterestsArgs, map[string]string) {
	p := interestsSchema.Parse(raw, now)
	if !p.Valid() {
		return nil, p.Errors()
	}
	a := &InterestsArgs{ClientIDs: p.Ints("client_ids")}
	a.Date, a.HasDate = p.Time("date")
	return a, nil
}
