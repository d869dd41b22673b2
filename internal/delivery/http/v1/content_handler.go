package v1

import (
	"errors"
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/apperror"
	"go-touring-backend/pkg/i18n"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

// NewContentHandler registers the public catalogue and sitemap routes.
func NewContentHandler(public *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	public.GET("/services", handler.ListServices)
	public.GET("/services/:slug", handler.GetService)
	public.GET("/sitemap", handler.Sitemap)
}

// ListServices godoc
// @Summary      List services
// @Description  Returns the service cards of the homepage, in display order
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ServiceSummary}
// @Failure      429  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /services [get]
func (h *ContentHandler) ListServices(c *gin.Context) {
	services, err := h.contentUC.ListServices(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Servicios", services)
}

// GetService godoc
// @Summary      Get service page
// @Description  Returns a service page with its sections
// @Tags         content
// @Produce      json
// @Param        slug  path      string  true  "Service slug"
// @Success      200   {object}  response.Response{data=domain.ServiceDetail}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /services/{slug} [get]
func (h *ContentHandler) GetService(c *gin.Context) {
	service, err := h.contentUC.GetService(c.Request.Context(), c.Param("slug"))
	switch {
	case errors.Is(err, domain.ErrInvalidSlug):
		c.Error(apperror.BadRequest("Identificador de servicio inválido.", err))
		return
	case errors.Is(err, domain.ErrNotFound):
		c.Error(apperror.NotFound("Servicio no encontrado."))
		return
	case err != nil:
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Servicio", service)
}

// Sitemap godoc
// @Summary      Sitemap entries
// @Description  Lists every localized page of the site with its alternates
// @Tags         content
// @Produce      json
// @Param        locale  query     string  false  "Only entries of this locale (es, ca, en)"
// @Success      200     {object}  response.Response{data=[]domain.SitemapEntry}
// @Failure      400     {object}  response.Response
// @Router       /sitemap [get]
func (h *ContentHandler) Sitemap(c *gin.Context) {
	locale := c.Query("locale")
	if locale != "" && !i18n.IsSupported(locale) {
		c.Error(apperror.BadRequest("Idioma no soportado.", nil))
		return
	}

	entries, err := h.contentUC.Sitemap(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if locale != "" {
		filtered := make([]domain.SitemapEntry, 0, len(entries)/len(i18n.Locales))
		for _, e := range entries {
			if e.Locale == locale {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	response.Success(c, http.StatusOK, "Sitemap", entries)
}
