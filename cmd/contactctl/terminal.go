package main

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go-contact-backend/pkg/contactclient"

	"github.com/briandowns/spinner"
)

// flagFields holds the values given on the command line
type flagFields struct {
	mu     sync.Mutex
	values map[contactclient.Field]string
}

func newFlagFields() *flagFields {
	return &flagFields{values: make(map[contactclient.Field]string)}
}

func (f *flagFields) Value(field contactclient.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

func (f *flagFields) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[contactclient.Field]string)
}

// spinnerControl shows a spinner while the submit control is disabled
type spinnerControl struct {
	mu       sync.Mutex
	s        *spinner.Spinner
	label    string
	disabled bool
}

func newSpinnerControl(w io.Writer) *spinnerControl {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(w))
	return &spinnerControl{s: s, label: "Send"}
}

func (c *spinnerControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

func (c *spinnerControl) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = label
	if label != contactclient.SendingLabel {
		c.s.Stop()
		return
	}
	c.s.Suffix = " " + label
}

func (c *spinnerControl) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *spinnerControl) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = disabled
	if disabled && c.label == contactclient.SendingLabel {
		c.s.Start()
		return
	}
	c.s.Stop()
}

type terminalNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func (n *terminalNotifier) Notify(kind contactclient.ToastKind, message string) {
	if kind == contactclient.ToastSuccess {
		fmt.Fprintf(n.out, "✅ %s\n", message)
		return
	}
	fmt.Fprintf(n.errOut, "❌ %s\n", message)
}

type terminalMarker struct {
	out io.Writer
}

func (m *terminalMarker) Mark(field contactclient.Field, flagged bool) {
	if flagged {
		fmt.Fprintf(m.out, "⚠️  --%s is required\n", field)
	}
}

func isFormError(err error) bool {
	var verr *contactclient.ValidationError
	var srvErr *contactclient.ServerError
	var netErr *contactclient.NetworkError
	return errors.As(err, &verr) ||
		errors.As(err, &srvErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, contactclient.ErrInFlight)
}
