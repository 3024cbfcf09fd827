package v1

import (
	"errors"
	"io"
	"net/http"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidBody   = "Invalid request body."
	msgNotConfigured = "Email service is not configured."
	msgSendFailed    = "Failed to send message. Please try again later."
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", limiter, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Notifies the site owner and auto-replies to the visitor. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	// An empty body is treated as a submission with every field missing
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.BadRequest(msgInvalidBody))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			_ = c.Error(apperror.BadRequest(verr.Message))
		case errors.Is(err, domain.ErrEmailNotConfigured):
			_ = c.Error(apperror.New(http.StatusInternalServerError, msgNotConfigured, err).WithDetails(err.Error()))
		default:
			_ = c.Error(apperror.New(http.StatusInternalServerError, msgSendFailed, err).WithDetails(err.Error()))
		}
		return
	}

	response.Success(c, http.StatusOK)
}
