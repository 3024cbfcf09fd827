package v1

import (
	"net/http"
	"time"

	"go-contact-backend/config"
	"go-contact-backend/internal/delivery/http/middleware"
	"go-contact-backend/internal/domain"
	"go-contact-backend/internal/usecase"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	apiPrefix     = "/api"
	contactPath   = apiPrefix + "/contact"
	swaggerPrefix = apiPrefix + "/swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{CORSAllowedOrigins: []string{"*"}}
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(swaggerPrefix))
	r.Use(middleware.ErrorHandler(cfg.ExposeErrorDetails))

	r.NoMethod(func(c *gin.Context) {
		if c.Request.URL.Path == contactPath {
			c.Header("Allow", "POST, OPTIONS")
		}
		_ = c.Error(apperror.MethodNotAllowed())
	})
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Not found."))
	})

	api := r.Group(apiPrefix)

	if deps.HealthUC != nil {
		NewHealthHandler(api, deps.HealthUC)
	}

	// Public routes
	limiter := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		cfg.RateLimitContactThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	))
	NewContactHandler(api, deps.ContactUC, limiter)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.ServeForm {
		r.GET("/", func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML())
		})
		r.StaticFS("/static", http.FS(web.Static()))
	}

	return r
}
