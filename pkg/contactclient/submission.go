package contactclient

import (
	"strings"

	"go-contact-backend/pkg/validation"
)

const (
	MsgRequiredFields = "Please fill in all required fields."
	MsgInvalidEmail   = "Please enter a valid email address."
)

// Submission is the payload posted to the contact endpoint
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidationError is a local rejection. No request is sent when it occurs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (s *Submission) Trim() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
}

// Validate stops at the first failure: required fields, then the email pattern.
// Call Trim first.
func (s Submission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Message == "" {
		return &ValidationError{Message: MsgRequiredFields}
	}
	if !validation.IsEmail(s.Email) {
		return &ValidationError{Message: MsgInvalidEmail}
	}
	return nil
}
