package resource

// CreateBody returns the request body for a create call: the store's values
// restricted to creatable attributes, excluding unset values. When
// omitEmptyStrings is set, empty-string values are excluded as well — some
// kinds must never send an empty-but-present field because the service treats
// "absent" and "empty" differently.
func CreateBody(s *Store, omitEmptyStrings bool) map[string]any {
	return body(s, Creatable, omitEmptyStrings)
}

// UpdateBody returns the request body for an update call: the store's values
// restricted to updatable attributes, excluding unset values only.
func UpdateBody(s *Store) map[string]any {
	return body(s, Updatable, false)
}

func body(s *Store, role Role, omitEmptyStrings bool) map[string]any {
	out := make(map[string]any)
	for name, r := range s.schema {
		if r&role == 0 {
			continue
		}
		v := s.Get(name)
		if v == nil {
			continue
		}
		if omitEmptyStrings {
			if str, ok := v.(string); ok && str == "" {
				continue
			}
		}
		out[name] = v
	}
	return out
}
