package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestJSONValid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	var in loginInput
	errs, err := JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "a@b.co", in.Email)
}

func TestJSONValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope"}`))
	var in loginInput
	errs, err := JSON(req, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSONMalformedAndUnknownFields(t *testing.T) {
	var in loginInput
	_, err := JSON(httptest.NewRequest("POST", "/", strings.NewReader(`{`)), &in)
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = JSON(httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.co","password":"x","role":"admin"}`)), &in)
	assert.ErrorContains(t, err, "invalid JSON")
}
