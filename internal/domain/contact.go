package domain

import (
	"context"
	"errors"
	"strings"
)

// Placeholders used when the visitor leaves the subject empty
const (
	NotificationSubjectPlaceholder = "(No subject)"
	AutoReplySubjectPlaceholder    = "your message"
)

var (
	ErrValidation         = errors.New("invalid contact submission")
	ErrEmailNotConfigured = errors.New("email service is not configured")
	ErrDeliveryFailed     = errors.New("failed to deliver contact email")
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,not_blank,max=200"`
	Email   string `json:"email" validate:"required,not_blank,max=254,contact_email"`
	Subject string `json:"subject" validate:"max=300"`
	Message string `json:"message" validate:"required,not_blank,max=10000"`
}

// Trim strips surrounding whitespace from every field
func (r *ContactRequest) Trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

// ValidationError is a user-correctable rejection of a submission
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission, then notifies the site owner
	// and auto-replies to the visitor, in that order
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
