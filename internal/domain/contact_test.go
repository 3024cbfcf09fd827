package domain_test

import (
	"errors"
	"testing"

	"go-contact-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestContactRequestTrim(t *testing.T) {
	req := domain.ContactRequest{Name: "  Jo ", Email: "\tjo@x.com\n", Subject: "  ", Message: " Hi "}
	req.Trim()

	assert.Equal(t, domain.ContactRequest{Name: "Jo", Email: "jo@x.com", Subject: "", Message: "Hi"}, req)
}

func TestValidationErrorUnwrap(t *testing.T) {
	var err error = &domain.ValidationError{Message: "Name, email and message are required."}

	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, "Name, email and message are required.", err.Error())
}
