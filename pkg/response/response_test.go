package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/servicehub/pkg/response"
	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

func TestOKMergesExtra(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]interface{}{"orderId": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true,"orderId":"abc"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, validate.Errors{"email": "The email must be a valid email address."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"error":"Validation failed","fields":{"email":"The email must be a valid email address."}}`,
		rec.Body.String())
}

func TestServerErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ServerError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rec.Body.String())
}
