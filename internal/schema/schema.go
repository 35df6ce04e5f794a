// Package schema implements declarative request validation: a schema is a
// fixed, ordered list of named fields, each with a kind-specific cleaning
// pipeline, parsed against a raw JSON object into typed values and a
// per-field error map
package schema

import (
	"time"
)

// Field declares one named input with its validation pipeline.
// Required rejects absent values; Nullable permits empty ones
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Nullable bool
}

// Rule is a cross-field predicate evaluated only once every per-field check
// has passed. A non-empty return is recorded as a synthetic error under the
// fixed "arguments" key
type Rule func(p *Parsed) string

// RuleErrorKey is where a failed cross-field rule lands in the error map
const RuleErrorKey = "arguments"

// Schema is an insertion-ordered field set, built once at program start and
// read-only thereafter
type Schema struct {
	fields []Field
	index  map[string]int
	rule   Rule
}

// New builds a schema from fields in declaration order.
// Panics on duplicate names since schemas are static program structure
func New(fields ...Field) *Schema {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			panic("schema: duplicate field " + f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Extend derives a schema: same-named fields override the base in place,
// new fields append after it. The receiver is not mutated
func (s *Schema) Extend(fields ...Field) *Schema {
	d := &Schema{
		fields: append([]Field(nil), s.fields...),
		index:  make(map[string]int, len(s.fields)+len(fields)),
		rule:   s.rule,
	}
	for name, i := range s.index {
		d.index[name] = i
	}
	for _, f := range fields {
		if i, ok := d.index[f.Name]; ok {
			d.fields[i] = f
			continue
		}
		d.index[f.Name] = len(d.fields)
		d.fields = append(d.fields, f)
	}
	return d
}

// WithRule attaches the cross-field predicate and returns the receiver for
// chaining at construction time
func (s *Schema) WithRule(r Rule) *Schema {
	s.rule = r
	return s
}

// Fields returns the declared fields in order
func (s *Schema) Fields() []Field { return s.fields }

// Parsed is the transient outcome of one Parse call. A field lands in at
// most one of the value map and the error map
type Parsed struct {
	schema *Schema
	values map[string]any
	errors map[string]string
}

// Parse runs every declared field's pipeline against raw. Errors across
// fields are independent and all collected; within one field the pipeline
// stops at the first failure. now anchors the birthday age check
func (s *Schema) Parse(raw map[string]any, now time.Time) *Parsed {
	p := &Parsed{
		schema: s,
		values: make(map[string]any, len(s.fields)),
		errors: map[string]string{},
	}
	for _, f := range s.fields {
		v, exists := raw[f.Name]
		if !exists || v == nil {
			if f.Required {
				p.errors[f.Name] = f.Name + " is required"
			}
			continue
		}
		if !f.Nullable && isEmpty(v) {
			p.errors[f.Name] = f.Name + " cannot be empty"
			continue
		}
		cleaned, msg := clean(f.Kind, v, now)
		if msg != "" {
			p.errors[f.Name] = f.Name + " " + msg
			continue
		}
		p.values[f.Name] = cleaned
	}
	if len(p.errors) == 0 && s.rule != nil {
		if msg := s.rule(p); msg != "" {
			p.errors[RuleErrorKey] = msg
		}
	}
	return p
}

// Valid reports whether the error map is empty
func (p *Parsed) Valid() bool { return len(p.errors) == 0 }

// Errors returns field name -> error message
func (p *Parsed) Errors() map[string]string { return p.errors }

// Has reports whether a cleaned value exists for name
func (p *Parsed) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Present reports whether name has a cleaned value that is non-empty.
// Only the empty string counts as empty here: a zero gender is present
func (p *Parsed) Present(name string) bool {
	v, ok := p.values[name]
	if !ok {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// PresentFields returns the names of present non-empty fields in schema
// declaration order
func (p *Parsed) PresentFields() []string {
	out := make([]string, 0, len(p.values))
	for _, f := range p.schema.fields {
		if p.Present(f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

// String returns the cleaned string for name, or "" when absent
func (p *Parsed) String(name string) string {
	s, _ := p.values[name].(string)
	return s
}

// Object returns the cleaned object for name, or nil when absent
func (p *Parsed) Object(name string) map[string]any {
	m, _ := p.values[name].(map[string]any)
	return m
}

// Time returns the cleaned date for name with a presence flag
func (p *Parsed) Time(name string) (time.Time, bool) {
	t, ok := p.values[name].(time.Time)
	return t, ok
}

// Int returns the cleaned integer for name with a presence flag
func (p *Parsed) Int(name string) (int, bool) {
	n, ok := p.values[name].(int)
	return n, ok
}

// Ints returns the cleaned integer list for name, or nil when absent
func (p *Parsed) Ints(name string) []int64 {
	l, _ := p.values[name].([]int64)
	return l
}
