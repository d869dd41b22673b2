package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/apperror"
	"go-touring-backend/pkg/security"
	"go-touring-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	maxContactBodyBytes = 64 << 10

	contactReceivedMessage = "Mensaje recibido."
	invalidDataMessage     = "Datos inválidos."
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
	public.GET("/contact/services", handler.ListServiceOptions)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates, sanitizes and forwards a contact form submission. Field errors are never echoed.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	body, err := c.GetRawData()
	if err != nil {
		c.Error(apperror.BadRequest(invalidDataMessage, err))
		return
	}
	// json.Unmarshal rejects trailing data after the object.
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		c.Error(apperror.BadRequest(invalidDataMessage, err))
		return
	}

	if _, err := h.contactUC.Submit(c.Request.Context(), raw); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			email, _ := raw["email"].(string)
			security.DefaultLogger().LogValidationFailed(
				c.Request.Context(),
				email,
				c.ClientIP(),
				response.RequestID(c),
				fieldErrs.Fields(),
			)
			c.Error(apperror.BadRequest(invalidDataMessage, err))
			return
		}
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, contactReceivedMessage, nil)
}

// ListServiceOptions godoc
// @Summary      List contact form services
// @Description  Returns the accepted values of the contact form's service field
// @Tags         contact
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ServiceOption}
// @Router       /contact/services [get]
func (h *ContactHandler) ListServiceOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, "Servicios disponibles", h.contactUC.ServiceOptions())
}
