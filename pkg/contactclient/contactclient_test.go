package contactclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-contact-backend/pkg/contactclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFields struct {
	mu     sync.Mutex
	values map[contactclient.Field]string
	resets int
}

func newFakeFields(name, email, subject, message string) *fakeFields {
	return &fakeFields{values: map[contactclient.Field]string{
		contactclient.FieldName:    name,
		contactclient.FieldEmail:   email,
		contactclient.FieldSubject: subject,
		contactclient.FieldMessage: message,
	}}
}

func (f *fakeFields) Value(field contactclient.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

func (f *fakeFields) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = map[contactclient.Field]string{}
	f.resets++
}

func (f *fakeFields) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

type fakeControl struct {
	mu       sync.Mutex
	label    string
	disabled bool
	labels   []string
}

func (c *fakeControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *fakeControl) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = label
	c.labels = append(c.labels, label)
}

func (c *fakeControl) Labels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.labels...)
}

func (c *fakeControl) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *fakeControl) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
}

type toast struct {
	Kind    contactclient.ToastKind
	Message string
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *fakeNotifier) Notify(kind contactclient.ToastKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{kind, message})
}

func (n *fakeNotifier) Toasts() []toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]toast(nil), n.toasts...)
}

type fakeMarker struct {
	flags map[contactclient.Field]bool
}

func (m *fakeMarker) Mark(field contactclient.Field, flagged bool) {
	m.flags[field] = flagged
}

// endpoint answers with the given status and body and counts requests
func endpoint(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSubmissionValidate(t *testing.T) {
	cases := []struct {
		name string
		sub  contactclient.Submission
		want string
	}{
		{"valid", contactclient.Submission{Name: "Jo", Email: "jo@x.com", Message: "Hi"}, ""},
		{"missing name", contactclient.Submission{Email: "jo@x.com", Message: "Hi"}, contactclient.MsgRequiredFields},
		{"whitespace message", contactclient.Submission{Name: "Jo", Email: "jo@x.com", Message: "  \n"}, contactclient.MsgRequiredFields},
		{"required wins over email", contactclient.Submission{Name: "Jo", Email: "bad"}, contactclient.MsgRequiredFields},
		{"bad email", contactclient.Submission{Name: "Jo", Email: "jo@x", Message: "Hi"}, contactclient.MsgInvalidEmail},
		{"email with space", contactclient.Submission{Name: "Jo", Email: "j o@x.com", Message: "Hi"}, contactclient.MsgInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := tc.sub
			sub.Trim()
			err := sub.Validate()
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			var verr *contactclient.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.want, verr.Message)
		})
	}
}

func TestClientSubmit(t *testing.T) {
	var got map[string]interface{}
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := contactclient.NewClient(srv.URL, nil)
	res, err := client.Submit(context.Background(), contactclient.Submission{Name: "Jo", Email: "jo@x.com", Message: "Hi"})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]interface{}{"name": "Jo", "email": "jo@x.com", "subject": "", "message": "Hi"}, got)
}

func TestClientSubmitFailures(t *testing.T) {
	t.Run("server message", func(t *testing.T) {
		srv, _ := endpoint(t, http.StatusBadRequest, `{"error":"Please enter a valid email address."}`)
		_, err := contactclient.NewClient(srv.URL, nil).Submit(context.Background(), contactclient.Submission{})

		var srvErr *contactclient.ServerError
		require.ErrorAs(t, err, &srvErr)
		assert.Equal(t, http.StatusBadRequest, srvErr.StatusCode)
		assert.Equal(t, "Please enter a valid email address.", srvErr.Error())
	})

	t.Run("ok status with failure body", func(t *testing.T) {
		srv, _ := endpoint(t, http.StatusOK, `{"success":false}`)
		_, err := contactclient.NewClient(srv.URL, nil).Submit(context.Background(), contactclient.Submission{})

		var srvErr *contactclient.ServerError
		require.ErrorAs(t, err, &srvErr)
		assert.Equal(t, contactclient.MsgServerFallback, srvErr.Error())
	})

	t.Run("non json body", func(t *testing.T) {
		srv, _ := endpoint(t, http.StatusBadGateway, `<html>bad gateway</html>`)
		_, err := contactclient.NewClient(srv.URL, nil).Submit(context.Background(), contactclient.Submission{})

		var srvErr *contactclient.ServerError
		require.ErrorAs(t, err, &srvErr)
		assert.Empty(t, srvErr.Message)
	})

	t.Run("network", func(t *testing.T) {
		srv, _ := endpoint(t, http.StatusOK, `{"success":true}`)
		srv.Close()
		_, err := contactclient.NewClient(srv.URL, nil).Submit(context.Background(), contactclient.Submission{})

		var netErr *contactclient.NetworkError
		assert.ErrorAs(t, err, &netErr)
	})
}

func TestFormSubmitSuccessResetsAfterDelay(t *testing.T) {
	srv, hits := endpoint(t, http.StatusOK, `{"success":true}`)
	fields := newFakeFields(" Jo ", "jo@x.com", "", "Hi")
	control := &fakeControl{label: "Send Message"}
	notifier := &fakeNotifier{}

	form := contactclient.NewForm(contactclient.NewClient(srv.URL, nil), fields, control, notifier, nil)
	form.ResetDelay = 20 * time.Millisecond

	require.NoError(t, form.Submit(context.Background()))

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, []toast{{contactclient.ToastSuccess, contactclient.MsgSuccess}}, notifier.Toasts())
	assert.Contains(t, control.Labels(), contactclient.SendingLabel)

	assert.Eventually(t, func() bool {
		return fields.Resets() == 1 && !control.Disabled() && control.Label() == "Send Message"
	}, time.Second, 5*time.Millisecond)
}

func TestFormSubmitValidationFailureSendsNothing(t *testing.T) {
	srv, hits := endpoint(t, http.StatusOK, `{"success":true}`)
	control := &fakeControl{label: "Send"}
	notifier := &fakeNotifier{}

	form := contactclient.NewForm(contactclient.NewClient(srv.URL, nil), newFakeFields("Jo", "jo@x", "", "Hi"), control, notifier, nil)
	err := form.Submit(context.Background())

	var verr *contactclient.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	assert.Equal(t, []toast{{contactclient.ToastError, contactclient.MsgInvalidEmail}}, notifier.Toasts())
	assert.False(t, control.Disabled())
	assert.Equal(t, "Send", control.Label())
}

func TestFormSubmitFailuresRestoreImmediately(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		closed bool
		want   string
	}{
		{"server message", http.StatusInternalServerError, `{"error":"Email service is not configured."}`, false, "Email service is not configured."},
		{"server without message", http.StatusInternalServerError, `{}`, false, contactclient.MsgServerFallback},
		{"network", http.StatusOK, `{"success":true}`, true, contactclient.MsgNetworkError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := endpoint(t, tc.status, tc.body)
			if tc.closed {
				srv.Close()
			}
			fields := newFakeFields("Jo", "jo@x.com", "", "Hi")
			control := &fakeControl{label: "Send"}
			notifier := &fakeNotifier{}

			form := contactclient.NewForm(contactclient.NewClient(srv.URL, nil), fields, control, notifier, nil)
			assert.Error(t, form.Submit(context.Background()))

			assert.False(t, control.Disabled())
			assert.Equal(t, "Send", control.Label())
			assert.Equal(t, []toast{{contactclient.ToastError, tc.want}}, notifier.Toasts())
			assert.Equal(t, 0, fields.Resets())
		})
	}
}

type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	calls   int32
}

func (b *blockingSubmitter) Submit(ctx context.Context, s contactclient.Submission) (*contactclient.Result, error) {
	atomic.AddInt32(&b.calls, 1)
	close(b.started)
	<-b.release
	return nil, &contactclient.ServerError{StatusCode: http.StatusInternalServerError}
}

func TestFormSubmitIgnoresSecondSubmitWhileInFlight(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	control := &fakeControl{label: "Send"}
	form := contactclient.NewForm(sub, newFakeFields("Jo", "jo@x.com", "", "Hi"), control, nil, nil)

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()
	<-sub.started

	assert.ErrorIs(t, form.Submit(context.Background()), contactclient.ErrInFlight)

	close(sub.release)
	assert.Error(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sub.calls))
	assert.False(t, control.Disabled())
}

func TestFormBlurAndFocus(t *testing.T) {
	marker := &fakeMarker{flags: map[contactclient.Field]bool{}}
	form := contactclient.NewForm(contactclient.NewClient("http://unused", nil), newFakeFields("Jo", " ", "", ""), &fakeControl{}, nil, marker)

	form.Blur(contactclient.FieldName)
	form.Blur(contactclient.FieldEmail)
	form.Blur(contactclient.FieldSubject)
	form.Blur(contactclient.FieldMessage)

	assert.Equal(t, map[contactclient.Field]bool{
		contactclient.FieldEmail:   true,
		contactclient.FieldMessage: true,
	}, marker.flags)

	form.Focus(contactclient.FieldEmail)
	assert.False(t, marker.flags[contactclient.FieldEmail])
}

func TestNilFormIsNoOp(t *testing.T) {
	form := contactclient.NewForm(contactclient.NewClient("http://unused", nil), nil, nil, nil, nil)
	require.Nil(t, form)

	assert.NoError(t, form.Submit(context.Background()))
	form.Blur(contactclient.FieldName)
	form.Focus(contactclient.FieldName)
}
