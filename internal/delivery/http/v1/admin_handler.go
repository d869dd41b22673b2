package v1

import (
	"net/http"

	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/pkg/apperror"
	"go-touring-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	contentUC domain.ContentUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &AdminHandler{contentUC: contentUC}

	admin := protected.Group("/admin")
	{
		admin.POST("/cache/purge", handler.PurgeCache)
	}
}

// PurgeCache godoc
// @Summary      Purge content cache
// @Description  Drops every cached catalogue response
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /admin/cache/purge [post]
func (h *AdminHandler) PurgeCache(c *gin.Context) {
	if err := h.contentUC.PurgeCache(c.Request.Context()); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	sub := c.GetString(string(domain.KeyAdminSub))
	security.DefaultLogger().LogCachePurged(c.Request.Context(), sub, c.ClientIP(), response.RequestID(c))

	response.Success(c, http.StatusOK, "Caché purgada.", nil)
}
