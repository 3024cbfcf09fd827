package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-contact-backend/pkg/contactclient"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "contactctl - submit contact form messages from the terminal",
	Long: `contactctl posts a message to a contact form backend, applying the same
checks as the web form before anything is sent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact message",
	Long: `Send a contact message to the site owner. You will receive an auto-reply
at the address given with --email.

Example:
  contactctl send --name "Jo" --email jo@example.com --message "Hi there"
  contactctl send --endpoint https://example.com/api/contact --name Jo --email jo@example.com --subject Hello --message "Hi"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		fields := newFlagFields()
		for field, flag := range fieldFlags {
			value, _ := cmd.Flags().GetString(flag)
			fields.values[field] = value
		}

		control := newSpinnerControl(cmd.ErrOrStderr())
		notifier := &terminalNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
		marker := &terminalMarker{out: cmd.ErrOrStderr()}

		client := contactclient.NewClient(endpoint, nil)
		form := contactclient.NewForm(client, fields, control, notifier, marker)

		// Same affordance as leaving an empty required input in the browser
		for _, field := range contactclient.RequiredFields {
			form.Blur(field)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if timeout > 0 {
			var cancelTimeout context.CancelFunc
			ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
			defer cancelTimeout()
		}

		return form.Submit(ctx)
	},
}

// fieldFlags maps form fields to their command-line flags
var fieldFlags = map[contactclient.Field]string{
	contactclient.FieldName:    "name",
	contactclient.FieldEmail:   "email",
	contactclient.FieldSubject: "subject",
	contactclient.FieldMessage: "message",
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("endpoint", "http://localhost:8080/api/contact", "Contact endpoint URL")
	sendCmd.Flags().Duration("timeout", 30*time.Second, "Give up waiting for the server after this long (0 disables)")
	sendCmd.Flags().String("name", "", "Your name (required)")
	sendCmd.Flags().String("email", "", "Your email address (required)")
	sendCmd.Flags().String("subject", "", "Message subject")
	sendCmd.Flags().String("message", "", "Message body (required)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// The form has already reported submission failures
		if !isFormError(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
