package v1

import (
	"net/http"
	"time"

	"go-touring-backend/config"
	"go-touring-backend/internal/delivery/http/middleware"
	"go-touring-backend/internal/delivery/http/response"
	"go-touring-backend/internal/domain"
	"go-touring-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC    domain.ContactUsecase
	ContentUC    domain.ContentUsecase
	RevalidateUC domain.RevalidateUsecase
	HealthUC     usecase.HealthUsecase
	RateLimiter  *middleware.RateLimiter
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// The contact form answers only 200/400/500, so it is not rate limited.
	NewContactHandler(v1, deps.ContactUC)

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	content := v1.Group("")
	content.Use(deps.RateLimiter.Middleware(middleware.ContentRateLimitConfig(window, deps.Config.RateLimitGlobalThreshold)))
	NewContentHandler(content, deps.ContentUC)

	webhook := v1.Group("")
	webhook.Use(deps.RateLimiter.Middleware(middleware.WebhookRateLimitConfig()))
	NewRevalidateHandler(webhook, deps.RevalidateUC)

	protected := v1.Group("")
	protected.Use(deps.RateLimiter.Middleware(middleware.AdminRateLimitConfig()))
	protected.Use(middleware.AdminAuthMiddleware(deps.Config.AdminJWTSecret))
	NewAdminHandler(protected, deps.ContentUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
