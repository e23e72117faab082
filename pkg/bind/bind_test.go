package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/servicehub/pkg/bind"
)

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type trimmedInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (in *trimmedInput) Normalize() { in.Email = strings.ToLower(strings.TrimSpace(in.Email)) }

func post(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	w, r := post(`{"email":"anu@x.com","password":"secret1"}`)
	var in loginInput

	errs, err := bind.JSON(w, r, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "anu@x.com", in.Email)
}

func TestJSONValidationErrors(t *testing.T) {
	w, r := post(`{"email":"nope","password":"123"}`)
	var in loginInput

	errs, err := bind.JSON(w, r, &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestJSONMalformed(t *testing.T) {
	w, r := post(`{"email":`)
	var in loginInput

	_, err := bind.JSON(w, r, &in)
	assert.ErrorIs(t, err, bind.ErrMalformed)
}

func TestJSONTooLarge(t *testing.T) {
	t.Setenv("MAX_BODY_BYTES", "16")
	w, r := post(`{"email":"anu@x.com","password":"secret1"}`)
	var in loginInput

	_, err := bind.JSON(w, r, &in)
	require.ErrorIs(t, err, bind.ErrMalformed)
	assert.Contains(t, err.Error(), "too large")
}

func TestJSONNormalizesBeforeValidating(t *testing.T) {
	w, r := post(`{"email":"  Anu@X.com "}`)
	var in trimmedInput

	errs, err := bind.JSON(w, r, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "anu@x.com", in.Email)
}
