package v1

import (
	"errors"
	"io"
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/apperror"
	"go-touring-backend/pkg/sanity"
	"go-touring-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

const maxWebhookBodyBytes = 1 << 20

type RevalidateHandler struct {
	revalidateUC domain.RevalidateUsecase
}

// NewRevalidateHandler registers the CMS webhook. It is authenticated by the
// body signature, not by a token.
func NewRevalidateHandler(public *gin.RouterGroup, revalidateUC domain.RevalidateUsecase) {
	handler := &RevalidateHandler{revalidateUC: revalidateUC}

	public.POST("/revalidate", handler.Revalidate)
}

// Revalidate godoc
// @Summary      CMS revalidation webhook
// @Description  Verifies the Sanity webhook signature and invalidates the cached pages of the changed document
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        sanity-webhook-signature  header    string  true  "t=<unix ms>,v1=<signature>"
// @Success      200  {object}  domain.RevalidateResult
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /revalidate [post]
func (h *RevalidateHandler) Revalidate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.Error(apperror.BadRequest("Solicitud inválida.", err))
		return
	}

	result, err := h.revalidateUC.HandleWebhook(c.Request.Context(), c.GetHeader(sanity.SignatureHeader), body)
	if err != nil {
		var sigErr *sanity.SignatureError
		switch {
		case errors.As(err, &sigErr):
			security.DefaultLogger().LogInvalidSignature(c.Request.Context(), c.ClientIP(), response.RequestID(c), sigErr.Reason)
			c.Error(apperror.Unauthorized("Firma inválida."))
		case errors.Is(err, domain.ErrInvalidSignature):
			security.DefaultLogger().LogInvalidSignature(c.Request.Context(), c.ClientIP(), response.RequestID(c), err.Error())
			c.Error(apperror.Unauthorized("Firma inválida."))
		case errors.Is(err, domain.ErrMissingType):
			c.Error(apperror.BadRequest("Solicitud inválida.", err))
		default:
			c.Error(apperror.Internal(err))
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
