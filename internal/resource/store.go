package resource

import "time"

// Store holds a resource instance's current attribute values. It is pure
// storage: no validation, no role checks. Instances are owned by a single
// caller, so the store does no locking.
type Store struct {
	schema Schema
	values map[string]any
}

// NewStore creates an empty store for the given schema.
func NewStore(schema Schema) *Store {
	return &Store{
		schema: schema,
		values: make(map[string]any),
	}
}

// Schema returns the schema this store was created with.
func (s *Store) Schema() Schema {
	return s.schema
}

// Set assigns a single attribute. Returns false when name is not declared in
// the schema, in which case the value is dropped.
func (s *Store) Set(name string, value any) bool {
	if !s.schema.Declares(name) {
		return false
	}
	s.values[name] = value
	return true
}

// SetAll copies every declared attribute present in attrs into the store.
// Unknown keys are dropped, not errored.
func (s *Store) SetAll(attrs map[string]any) {
	for name, value := range attrs {
		if s.schema.Declares(name) {
			s.values[name] = value
		}
	}
}

// Get returns the current value of a declared attribute, or nil when the
// attribute is unset or unknown.
func (s *Store) Get(name string) any {
	return s.values[name]
}

// All returns every declared attribute's current value. Unset attributes read
// as nil entries, so callers always see the full declared set.
func (s *Store) All() map[string]any {
	out := make(map[string]any, len(s.schema))
	for name := range s.schema {
		out[name] = s.values[name]
	}
	return out
}

// GetString returns the attribute as a string, or "" for unset or non-string
// values.
func (s *Store) GetString(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// GetBool returns the attribute as a bool, or false for unset or non-bool
// values.
func (s *Store) GetBool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// GetTime parses the attribute as an RFC 3339 timestamp. Returns the zero
// time for unset, non-string, or unparseable values.
func (s *Store) GetTime(name string) time.Time {
	str, ok := s.values[name].(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t
		}
	}
	return time.Time{}
}
