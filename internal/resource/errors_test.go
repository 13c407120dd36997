package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorsVerbatimFieldLists(t *testing.T) {
	t.Parallel()
	body := []byte(`{"email": ["This field is required.", "Enter a valid e-mail address."], "tos": ["You must agree to the Terms of Service."]}`)

	errs := DecodeErrors(body)
	assert.Equal(t, Errors{
		"email": {"This field is required.", "Enter a valid e-mail address."},
		"tos":   {"You must agree to the Terms of Service."},
	}, errs)
}

func TestDecodeErrorsPromotesScalarToList(t *testing.T) {
	t.Parallel()
	errs := DecodeErrors([]byte(`{"message": "invalid page"}`))
	assert.Equal(t, Errors{"message": {"invalid page"}}, errs)
}

func TestDecodeErrorsNonObjectBody(t *testing.T) {
	t.Parallel()
	errs := DecodeErrors([]byte(`service exploded`))
	assert.Equal(t, Errors{MessageKey: {"service exploded"}}, errs)
}

func TestDecodeErrorsNestedValueKeptRaw(t *testing.T) {
	t.Parallel()
	errs := DecodeErrors([]byte(`{"profile": {"cpf": ["bad"]}}`))
	assert.Equal(t, Errors{"profile": {`{"cpf": ["bad"]}`}}, errs)
}

func TestErrorsHelpers(t *testing.T) {
	t.Parallel()
	var empty Errors
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.Field("email"))

	errs := Errors{"email": {"taken"}}
	assert.False(t, errs.IsEmpty())
	assert.Equal(t, []string{"taken"}, errs.Field("email"))
}

func TestStateString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "transient", Transient.String())
	assert.Equal(t, "persisted", Persisted.String())
	assert.Equal(t, "destroyed", Destroyed.String())
}
