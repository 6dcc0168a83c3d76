package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCheck(t *testing.T) {
	v := NewValidator()

	v.Check(true, "ok", "should not be recorded")
	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "second message is ignored")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
}

func TestValidatorIn(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.In("views", "created_at", "views", "title"))
	assert.False(t, v.In("id", "created_at", "views", "title"))
}

func TestValidationError(t *testing.T) {
	v := NewValidator()
	v.AddError("name", "must be provided")

	err := v.ValidationError()

	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "must be provided", validationErr.Errors["name"])
}
