package contactclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	SendingLabel      = "Sending..."
	SentLabel         = "Sent!"
	MsgSuccess        = "Your message has been sent successfully!"
	DefaultResetDelay = 3 * time.Second
)

// ErrInFlight is returned when Submit is called while a submission is pending
var ErrInFlight = errors.New("a submission is already in flight")

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// RequiredFields are flagged on blur when empty
var RequiredFields = []Field{FieldName, FieldEmail, FieldMessage}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Fields reads the form inputs
type Fields interface {
	Value(field Field) string
	Reset()
}

// SubmitControl is the submit button
type SubmitControl interface {
	Label() string
	SetLabel(label string)
	Disabled() bool
	SetDisabled(disabled bool)
}

// Notifier shows transient, non-blocking messages
type Notifier interface {
	Notify(kind ToastKind, message string)
}

// FieldMarker flags required inputs left empty
type FieldMarker interface {
	Mark(field Field, flagged bool)
}

// Submitter is satisfied by *Client
type Submitter interface {
	Submit(ctx context.Context, s Submission) (*Result, error)
}

// Form drives one contact form. A nil *Form stands for a page without a form
// and every method on it does nothing.
type Form struct {
	// ResetDelay is how long the success state stays visible before the form resets
	ResetDelay time.Duration

	client   Submitter
	fields   Fields
	control  SubmitControl
	notifier Notifier
	marker   FieldMarker

	mu            sync.Mutex
	originalLabel string
}

// NewForm returns nil when fields or control is missing. notifier and marker are optional.
func NewForm(client Submitter, fields Fields, control SubmitControl, notifier Notifier, marker FieldMarker) *Form {
	if client == nil || fields == nil || control == nil {
		return nil
	}
	return &Form{
		ResetDelay: DefaultResetDelay,
		client:     client,
		fields:     fields,
		control:    control,
		notifier:   notifier,
		marker:     marker,
	}
}

// Submit validates and posts the current field values.
// The returned error mirrors the toast already shown.
func (f *Form) Submit(ctx context.Context) error {
	if f == nil {
		return nil
	}

	f.mu.Lock()
	if f.control.Disabled() {
		f.mu.Unlock()
		return ErrInFlight
	}

	sub := f.read()
	sub.Trim()
	if err := sub.Validate(); err != nil {
		f.mu.Unlock()
		f.notify(ToastError, err.Error())
		return err
	}

	f.originalLabel = f.control.Label()
	f.control.SetLabel(SendingLabel)
	f.control.SetDisabled(true)
	f.mu.Unlock()

	if _, err := f.client.Submit(ctx, sub); err != nil {
		f.restore()

		var netErr *NetworkError
		if errors.As(err, &netErr) {
			f.notify(ToastError, MsgNetworkError)
			return err
		}

		msg := MsgServerFallback
		var srvErr *ServerError
		if errors.As(err, &srvErr) && srvErr.Message != "" {
			msg = srvErr.Message
		}
		f.notify(ToastError, msg)
		return err
	}

	f.mu.Lock()
	f.control.SetLabel(SentLabel)
	time.AfterFunc(f.ResetDelay, f.reset)
	f.mu.Unlock()

	f.notify(ToastSuccess, MsgSuccess)
	return nil
}

// Blur flags a required field that was left empty
func (f *Form) Blur(field Field) {
	if f == nil || f.marker == nil || !isRequired(field) {
		return
	}
	sub := f.read()
	sub.Trim()
	if valueOf(sub, field) == "" {
		f.marker.Mark(field, true)
	}
}

// Focus clears the flag set by Blur
func (f *Form) Focus(field Field) {
	if f == nil || f.marker == nil {
		return
	}
	f.marker.Mark(field, false)
}

func (f *Form) read() Submission {
	return Submission{
		Name:    f.fields.Value(FieldName),
		Email:   f.fields.Value(FieldEmail),
		Subject: f.fields.Value(FieldSubject),
		Message: f.fields.Value(FieldMessage),
	}
}

func (f *Form) restore() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.control.SetLabel(f.originalLabel)
	f.control.SetDisabled(false)
}

func (f *Form) reset() {
	f.fields.Reset()
	f.restore()
}

func (f *Form) notify(kind ToastKind, message string) {
	if f.notifier != nil {
		f.notifier.Notify(kind, message)
	}
}

func isRequired(field Field) bool {
	for _, r := range RequiredFields {
		if r == field {
			return true
		}
	}
	return false
}

func valueOf(s Submission, field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}
