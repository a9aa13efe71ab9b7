package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusClassification(t *testing.T) {
	assert.Equal(t, "failed", NewBadRequestError("nope").Status())
	assert.Equal(t, "failed", NewNotFoundError("gone").Status())
	assert.Equal(t, "failed", NewForbiddenError("no").Status())
	assert.Equal(t, "error", InternalError(errors.New("boom")).Status())
	assert.Equal(t, "error", NewEmailDeliveryError(errors.New("smtp down")).Status())
}

func TestMarshalJSONEnvelope(t *testing.T) {
	data, err := json.Marshal(NewNotFoundError("No car found with id x"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"failed","message":"No car found with id x"}`, string(data))
}

func TestMarshalJSONWithDetails(t *testing.T) {
	appErr := ValidationError(map[string]string{"email": "Must be a valid email address"})
	data, err := json.Marshal(appErr)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"status":"failed",
		"message":"Validation failed",
		"details":{"email":"Must be a valid email address"}
	}`, string(data))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := InternalError(cause)
	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	var appErr *AppError
	assert.True(t, As(NewUnauthorizedError("out"), &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)

	appErr = nil
	assert.False(t, As(errors.New("plain"), &appErr))
}

func TestConflictIsBadRequest(t *testing.T) {
	appErr := NewConflictError("You are already registered")
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}
