package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-contact-backend/config"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/email"
	"go-contact-backend/pkg/logger"
	"go-contact-backend/pkg/security"
	"go-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const msgRequiredFields = "Name, email and message are required."

type contactUsecase struct {
	sender   email.Sender
	renderer *email.AutoReplyRenderer
	cfg      config.EmailConfig
	validate *validator.Validate
	audit    *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase.
// cfg is the provider configuration resolved at startup; it is never re-read from the environment.
func NewContactUsecase(sender email.Sender, renderer *email.AutoReplyRenderer, cfg config.EmailConfig, validate *validator.Validate, audit *security.SecurityLogger) domain.ContactUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if renderer == nil {
		renderer, _ = email.NewAutoReplyRenderer("")
	}
	return &contactUsecase{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		validate: validate,
		audit:    audit,
	}
}

// SendContactMessage validates the contact request and sends both emails
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	meta := requestMeta(ctx)

	if req == nil {
		return &domain.ValidationError{Message: msgRequiredFields}
	}
	req.Trim()

	if err := uc.validate.Struct(req); err != nil {
		verr := toValidationError(err)
		uc.audit.LogContactRejected(ctx, req.Email, strings.Join(verr.Fields, ","), meta)
		logger.Log.Info("Contact submission rejected", "reason", verr.Message, "request_id", meta.RequestID)
		return verr
	}

	if missing := uc.cfg.Missing(); len(missing) > 0 {
		uc.audit.LogMisconfigured(ctx, missing, meta)
		logger.Log.Error("Email service misconfigured", "missing", missing, "request_id", meta.RequestID)
		return fmt.Errorf("%w: missing %s", domain.ErrEmailNotConfigured, strings.Join(missing, ", "))
	}

	// The auto-reply is only attempted once the owner notification was accepted
	if err := uc.sender.Send(ctx, uc.cfg.NotifyTemplateID, notificationParams(req)); err != nil {
		return uc.deliveryFailed(ctx, req, "notification", err, meta)
	}

	params, err := uc.autoReplyParams(req)
	if err != nil {
		return uc.deliveryFailed(ctx, req, "auto_reply_render", err, meta)
	}
	if err := uc.sender.Send(ctx, uc.cfg.AutoReplyTemplateID, params); err != nil {
		return uc.deliveryFailed(ctx, req, "auto_reply", err, meta)
	}

	uc.audit.LogContactSubmitted(ctx, req.Email, meta)
	logger.Log.Info("Contact submission delivered", "request_id", meta.RequestID)
	return nil
}

func (uc *contactUsecase) deliveryFailed(ctx context.Context, req *domain.ContactRequest, stage string, err error, meta security.RequestMeta) error {
	uc.audit.LogDeliveryFailed(ctx, req.Email, stage, err, meta)
	logger.Log.Error("Failed to send contact email", "stage", stage, "error", err, "request_id", meta.RequestID)
	return fmt.Errorf("%w: %s: %w", domain.ErrDeliveryFailed, stage, err)
}

func notificationParams(req *domain.ContactRequest) email.TemplateParams {
	subject := req.Subject
	if subject == "" {
		subject = domain.NotificationSubjectPlaceholder
	}
	return email.TemplateParams{
		"from_name":  req.Name,
		"from_email": req.Email,
		"reply_to":   req.Email,
		"subject":    subject,
		"message":    req.Message,
	}
}

func (uc *contactUsecase) autoReplyParams(req *domain.ContactRequest) (email.TemplateParams, error) {
	subject := req.Subject
	if subject == "" {
		subject = domain.AutoReplySubjectPlaceholder
	}
	html, err := uc.renderer.Render(email.AutoReplyData{Name: req.Name, Subject: subject})
	if err != nil {
		return nil, err
	}
	return email.TemplateParams{
		"from_name":    req.Name,
		"reply_to":     req.Email,
		"subject":      subject,
		"message_html": html,
	}, nil
}

// toValidationError reduces validator output to one user-facing message.
// Any missing required field yields the combined required-fields message.
func toValidationError(err error) *domain.ValidationError {
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
	}

	if validation.HasTag(err, "required") || validation.HasTag(err, "not_blank") {
		return &domain.ValidationError{Message: msgRequiredFields, Fields: fields}
	}
	return &domain.ValidationError{Message: validation.FormatValidationErrors(err)[0], Fields: fields}
}

func requestMeta(ctx context.Context) security.RequestMeta {
	var meta security.RequestMeta
	meta.RequestID, _ = ctx.Value(domain.KeyRequestID).(string)
	meta.IP, _ = ctx.Value(domain.KeyClientIP).(string)
	meta.UserAgent, _ = ctx.Value(domain.KeyUserAgent).(string)
	return meta
}
