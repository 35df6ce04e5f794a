package schema

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	pstrings "scorebox/internal/platform/strings"
)

// Kind tags a field with its fixed cleaning function. Birthday is Date plus
// an age bound; Email is String plus an "@" check
type Kind int

const (
	// String accepts any JSON string
	String Kind = iota
	// Object accepts a JSON object
	Object
	// Email is a string containing "@"
	Email
	// Phone is a string or integer number of exactly 11 digits starting with 7
	Phone
	// Date is a string in DD.MM.YYYY format
	Date
	// Birthday is a Date no more than 70 years in the past
	Birthday
	// Gender is the integer 0, 1 or 2
	Gender
	// ClientIDList is a list of integers
	ClientIDList
)

// DateLayout is the wire format for Date and Birthday fields
const DateLayout = "02.01.2006"

// maxAgeYears bounds the Birthday field. The year is the 365.25-day
// approximation; the boundary behaviour at exactly 70 is pinned by tests
const maxAgeYears = 70

// isEmpty mirrors the permissive emptiness notion applied to non-nullable
// fields: empty string, empty list, empty object, zero number
func isEmpty(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

// clean transforms a raw non-absent value into its typed form, or returns an
// error message fragment (prefixed with the field name by the caller).
// Raw numbers must be json.Number: the transport decodes with UseNumber so
// integer, float and numeric-string inputs stay distinguishable
func clean(k Kind, v any, now time.Time) (any, string) {
	switch k {
	case String:
		return cleanString(v)
	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, "must be an object"
		}
		return m, ""
	case Email:
		s, msg := cleanString(v)
		if msg != "" {
			return nil, msg
		}
		str := s.(string)
		if str != "" && !strings.Contains(str, "@") {
			return nil, "must contain @"
		}
		return str, ""
	case Phone:
		return cleanPhone(v)
	case Date:
		return cleanDate(v)
	case Birthday:
		cleaned, msg := cleanDate(v)
		if msg != "" {
			return nil, msg
		}
		t := cleaned.(time.Time)
		age := now.Sub(t).Hours() / 24 / 365.25
		if age > maxAgeYears {
			return nil, "cannot be more than 70 years ago"
		}
		return t, ""
	case Gender:
		n, ok := integral(v)
		if !ok || n < 0 || n > 2 {
			return nil, "must be 0, 1 or 2"
		}
		return int(n), ""
	case ClientIDList:
		list, ok := v.([]any)
		if !ok {
			return nil, "must be a list"
		}
		ids := make([]int64, 0, len(list))
		for _, item := range list {
			n, isInt := integral(item)
			if !isInt {
				return nil, "must contain only integers"
			}
			ids = append(ids, n)
		}
		return ids, ""
	default:
		panic("schema: unknown field kind")
	}
}

func cleanString(v any) (any, string) {
	s, ok := v.(string)
	if !ok {
		return nil, "must be a string"
	}
	return s, ""
}

// cleanPhone accepts a string or an integer number, normalizes to a string,
// and requires exactly 11 digits with a leading 7
func cleanPhone(v any) (any, string) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	default:
		return nil, "must contain only digits"
	}
	if !pstrings.AllDigits(s) {
		return nil, "must contain only digits"
	}
	if len(s) != 11 {
		return nil, "must be 11 digits long"
	}
	if s[0] != '7' {
		return nil, "must start with 7"
	}
	return s, ""
}

func cleanDate(v any) (any, string) {
	s, ok := v.(string)
	if !ok {
		return nil, "must be a string"
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, "must be in DD.MM.YYYY format"
	}
	return t, ""
}

// integral reports whether v is an integer JSON literal (not a float, not a
// numeric string) and returns its value
func integral(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	lit := n.String()
	if strings.ContainsAny(lit, ".eE") {
		return 0, false
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}
