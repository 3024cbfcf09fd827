package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-contact-backend/config"
)

// maxErrorBody caps how much of a rejected response is kept for diagnostics
const maxErrorBody = 4 << 10

var (
	ErrNotConfigured = errors.New("email service is not configured")
	ErrSendFailed    = errors.New("email provider request failed")
)

// TemplateParams are the values substituted into a provider-side template
type TemplateParams map[string]string

// Sender delivers one templated email through the provider.
type Sender interface {
	Send(ctx context.Context, templateID string, params TemplateParams) error
}

// APIError is returned when the provider answers with a non-2xx status
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("email provider returned %d: %s", e.StatusCode, e.Body)
}

// EmailService sends templated emails through the EmailJS REST API
type EmailService struct {
	httpClient  *http.Client
	apiURL      string
	serviceID   string
	publicKey   string
	privateKey  string
	isAvailable bool
}

// sendRequest is the JSON body accepted by the provider's send endpoint
type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken"`
	TemplateParams TemplateParams `json:"template_params"`
}

// NewEmailService creates an email service from the provider configuration.
// A nil httpClient gets a client with the configured timeout.
func NewEmailService(cfg config.EmailConfig, httpClient *http.Client) *EmailService {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultEmailAPIURL
	}

	return &EmailService{
		httpClient:  httpClient,
		apiURL:      apiURL,
		serviceID:   cfg.ServiceID,
		publicKey:   cfg.PublicKey,
		privateKey:  cfg.PrivateKey,
		isAvailable: cfg.ServiceID != "" && cfg.PublicKey != "" && cfg.PrivateKey != "",
	}
}

// IsConfigured checks if the service has the identifiers needed to authenticate
func (s *EmailService) IsConfigured() bool {
	return s.isAvailable
}

// Send posts one send request and waits for the provider's answer
func (s *EmailService) Send(ctx context.Context, templateID string, params TemplateParams) error {
	if !s.isAvailable || templateID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(sendRequest{
		ServiceID:      s.serviceID,
		TemplateID:     templateID,
		UserID:         s.publicKey,
		AccessToken:    s.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Join(ErrSendFailed, &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))})
	}

	return nil
}
