// Package resource implements the mapping machinery shared by all remote
// resource kinds: attribute schemas with role sets, attribute storage, the
// persistence state machine, request payload construction, and translation of
// remote fault bodies into local error maps.
package resource

import "sort"

// Role classifies an attribute within a kind's schema. Roles are a bit set:
// an attribute may be both creatable and updatable.
type Role uint8

const (
	// ReadOnly attributes are server-assigned and never sent in requests.
	ReadOnly Role = 1 << iota
	// Creatable attributes may be sent in a create body.
	Creatable
	// Updatable attributes may be sent in an update body.
	Updatable
)

// Schema is a kind's static attribute table, mapping each declared attribute
// name to its role set. Attributes absent from the schema are unknown to the
// kind and silently dropped on assignment.
type Schema map[string]Role

// Declares reports whether name belongs to the schema.
func (s Schema) Declares(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns every declared attribute name in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
