package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Start    string `json:"start_time" validate:"omitempty,clock"`
}

func TestStructValid(t *testing.T) {
	assert.Nil(t, Struct(&sample{Email: "a@b.com", Password: "longenough", Start: "09:00"}))
	assert.Nil(t, Struct(&sample{}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	errs := Struct(&sample{Email: "not-an-email", Password: "short", Start: "9am"})
	require.NotNil(t, errs)

	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "start_time")
	assert.Contains(t, errs["password"][0], "at least 8")
}
