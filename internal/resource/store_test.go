package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	"uuid":       ReadOnly,
	"email":      Creatable,
	"first_name": Creatable | Updatable,
	"active":     ReadOnly,
	"created_at": ReadOnly,
}

func TestStoreSetAllDropsUnknownKeys(t *testing.T) {
	t.Parallel()
	s := NewStore(testSchema)

	s.SetAll(map[string]any{
		"email":       "alice@example.com",
		"server_side": "surprise field",
	})

	assert.Equal(t, "alice@example.com", s.Get("email"))
	assert.Nil(t, s.Get("server_side"))
}

func TestStoreSetRejectsUndeclared(t *testing.T) {
	t.Parallel()
	s := NewStore(testSchema)

	assert.True(t, s.Set("first_name", "Alice"))
	assert.False(t, s.Set("last_name", "Smith"))
	assert.Nil(t, s.Get("last_name"))
}

func TestStoreAllIncludesUnsetAsNil(t *testing.T) {
	t.Parallel()
	s := NewStore(testSchema)
	s.Set("email", "alice@example.com")

	all := s.All()
	require.Len(t, all, len(testSchema))
	assert.Equal(t, "alice@example.com", all["email"])

	v, present := all["uuid"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestStoreTypedGetters(t *testing.T) {
	t.Parallel()
	s := NewStore(testSchema)
	s.SetAll(map[string]any{
		"email":      "alice@example.com",
		"active":     true,
		"created_at": "2026-08-30T12:00:00Z",
	})

	assert.Equal(t, "alice@example.com", s.GetString("email"))
	assert.True(t, s.GetBool("active"))
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), s.GetTime("created_at"))

	// Unset and mistyped values read as zero values, never panic.
	assert.Equal(t, "", s.GetString("uuid"))
	assert.False(t, s.GetBool("email"))
	assert.True(t, s.GetTime("email").IsZero())
	assert.True(t, s.GetTime("uuid").IsZero())
}

func TestStoreGetTimeDateOnly(t *testing.T) {
	t.Parallel()
	s := NewStore(Schema{"birth_date": Creatable})
	s.Set("birth_date", "1983-04-09")

	assert.Equal(t, time.Date(1983, 4, 9, 0, 0, 0, 0, time.UTC), s.GetTime("birth_date"))
}

func TestSchemaNamesSorted(t *testing.T) {
	t.Parallel()
	names := testSchema.Names()
	require.Len(t, names, 5)
	assert.Equal(t, []string{"active", "created_at", "email", "first_name", "uuid"}, names)
}
