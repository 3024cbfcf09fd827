package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-contact-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := apperror.New(http.StatusInternalServerError, "Failed to send message.", cause)

	assert.Equal(t, "Failed to send message.", err.Error())
	assert.ErrorIs(t, err, cause)

	withDetails := err.WithDetails(cause.Error())
	assert.Equal(t, "dial tcp: refused", withDetails.Details)
	assert.Empty(t, err.Details, "original must not be mutated")

	var target *apperror.AppError
	wrapped := errors.Join(errors.New("outer"), withDetails)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, http.StatusInternalServerError, target.Code)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, apperror.BadRequest("x").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, apperror.MethodNotAllowed().Code)
	assert.Equal(t, http.StatusTooManyRequests, apperror.TooManyRequests().Code)
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("x").Code)
	assert.Equal(t, http.StatusInternalServerError, apperror.Internal(nil).Code)
}
