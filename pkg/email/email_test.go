package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-contact-backend/config"
	"go-contact-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) config.EmailConfig {
	return config.EmailConfig{
		APIURL:              url,
		ServiceID:           "service_x",
		NotifyTemplateID:    "template_notify",
		AutoReplyTemplateID: "template_reply",
		PublicKey:           "public_x",
		PrivateKey:          "private_x",
	}
}

func TestSendPostsProviderPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	svc := email.NewEmailService(testConfig(srv.URL), srv.Client())
	require.True(t, svc.IsConfigured())

	err := svc.Send(context.Background(), "template_notify", email.TemplateParams{"from_name": "Jo"})
	require.NoError(t, err)

	assert.Equal(t, "service_x", got["service_id"])
	assert.Equal(t, "template_notify", got["template_id"])
	assert.Equal(t, "public_x", got["user_id"])
	assert.Equal(t, "private_x", got["accessToken"])
	assert.Equal(t, map[string]any{"from_name": "Jo"}, got["template_params"])
}

func TestSendRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid\n"))
	}))
	defer srv.Close()

	svc := email.NewEmailService(testConfig(srv.URL), srv.Client())
	err := svc.Send(context.Background(), "bad", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, email.ErrSendFailed)

	var apiErr *email.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "The template ID is invalid", apiErr.Body)
}

func TestSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	svc := email.NewEmailService(testConfig(url), nil)
	err := svc.Send(context.Background(), "template_notify", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, email.ErrSendFailed)

	var apiErr *email.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSendNotConfigured(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.PrivateKey = ""
	svc := email.NewEmailService(cfg, srv.Client())

	assert.False(t, svc.IsConfigured())
	assert.ErrorIs(t, svc.Send(context.Background(), "template_notify", nil), email.ErrNotConfigured)
	assert.ErrorIs(t, email.NewEmailService(testConfig(srv.URL), srv.Client()).Send(context.Background(), "", nil), email.ErrNotConfigured)
	assert.Zero(t, calls)
}

func TestAutoReplyRenderer(t *testing.T) {
	r, err := email.NewAutoReplyRenderer("Acme Studio")
	require.NoError(t, err)

	html, err := r.Render(email.AutoReplyData{Name: "Jo <script>", Subject: "your message"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Hi Jo &lt;script&gt;,")
	assert.Contains(t, html, "<strong>your message</strong>")
	assert.Contains(t, html, "Acme Studio")
	assert.NotContains(t, html, "<script>")
}
