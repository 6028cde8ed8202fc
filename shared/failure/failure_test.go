package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"atoll/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check-out date must be after check-in date")), code: http.StatusBadRequest, message: "check-out date must be after check-in date"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid locale"), code: http.StatusBadRequest, message: "invalid locale"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), code: http.StatusUnauthorized, message: "Token has expired"},
		{name: "forbidden", err: failure.Forbidden("only a superadmin can grant staff roles"), code: http.StatusForbidden, message: "only a superadmin can grant staff roles"},
		{name: "not found", err: failure.NotFound("page not found"), code: http.StatusNotFound, message: "page not found"},
		{name: "conflict", err: failure.Conflict("slug already in use"), code: http.StatusConflict, message: "slug already in use"},
		{name: "internal", err: failure.InternalError(errors.New("s3 unavailable")), code: http.StatusInternalServerError, message: "s3 unavailable"},
		{name: "predefined forbidden", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			assert.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, failure.GetCode(failure.NotFound("booking not found")))
	assert.Equal(t, http.StatusConflict, failure.GetCode(fmt.Errorf("failed to create amenity: %w", failure.Conflict("amenity exists"))))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to get property: %w", failure.NotFound("property not found"))

	assert.True(t, failure.HasCode(wrapped, http.StatusNotFound))
	assert.False(t, failure.HasCode(wrapped, http.StatusBadRequest))
	assert.False(t, failure.HasCode(errors.New("plain"), http.StatusInternalServerError))
	assert.False(t, failure.HasCode(nil, http.StatusNotFound))
}
