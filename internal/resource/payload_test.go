package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var payloadSchema = Schema{
	"uuid":       ReadOnly,
	"read_at":    ReadOnly,
	"email":      Creatable,
	"password":   Creatable,
	"first_name": Creatable | Updatable,
	"nickname":   Creatable | Updatable,
}

func TestCreateBodyIsExactCreatableSubset(t *testing.T) {
	t.Parallel()
	s := NewStore(payloadSchema)
	s.SetAll(map[string]any{
		"uuid":       "srv-assigned",
		"email":      "alice@example.com",
		"first_name": "Alice",
	})

	body := CreateBody(s, false)
	assert.Equal(t, map[string]any{
		"email":      "alice@example.com",
		"first_name": "Alice",
	}, body)
}

func TestCreateBodyKeepsEmptyStringsByDefault(t *testing.T) {
	t.Parallel()
	s := NewStore(payloadSchema)
	s.Set("email", "alice@example.com")
	s.Set("nickname", "")

	body := CreateBody(s, false)
	assert.Equal(t, map[string]any{
		"email":    "alice@example.com",
		"nickname": "",
	}, body)
}

func TestCreateBodyOmitEmptyStrings(t *testing.T) {
	t.Parallel()
	s := NewStore(payloadSchema)
	s.Set("email", "alice@example.com")
	s.Set("nickname", "")

	body := CreateBody(s, true)
	assert.Equal(t, map[string]any{"email": "alice@example.com"}, body)
}

func TestUpdateBodyNeverIncludesReadOnly(t *testing.T) {
	t.Parallel()
	s := NewStore(payloadSchema)
	s.SetAll(map[string]any{
		"uuid":       "srv-assigned",
		"read_at":    "2026-08-30T12:00:00Z",
		"email":      "alice@example.com",
		"first_name": "Alice",
		"nickname":   "ali",
	})

	body := UpdateBody(s)
	assert.Equal(t, map[string]any{
		"first_name": "Alice",
		"nickname":   "ali",
	}, body)
}

func TestBodiesSkipUnsetValues(t *testing.T) {
	t.Parallel()
	s := NewStore(payloadSchema)

	assert.Empty(t, CreateBody(s, false))
	assert.Empty(t, UpdateBody(s))
}
