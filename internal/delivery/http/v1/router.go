package v1

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-cv-backend/config"
	"go-cv-backend/internal/delivery/http/middleware"
	"go-cv-backend/internal/domain"
	"go-cv-backend/pkg/security"
	"go-cv-backend/pkg/validation"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	ProfileUC      domain.ProfileUsecase
	TaxonomyUC     domain.TaxonomyUsecase
	PosteUC        domain.PosteUsecase
	CollectionUC   domain.CollectionUsecase
	FilterUC       domain.FilterUsecase
	NotificationUC domain.NotificationUsecase
	Health         HealthChecker
	Tokens         middleware.TokenParser
	SecurityLog    *security.SecurityLogger
	Config         *config.Config
}

var registerValidators sync.Once

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterValidators(v)
		}
	})

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	if cfg.CSRFEnabled {
		r.Use(middleware.IssueCSRFCookie(cfg.CookieSecure))
	}
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	health := &HealthHandler{checker: deps.Health}
	v1.GET("/health", health.Health)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	if cfg.CSRFEnabled {
		protected.Use(middleware.CSRFMiddleware())
	}

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin(deps.SecurityLog))

	loginLimit := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window))

	NewAuthHandler(v1, protected, admin, loginLimit, deps.AuthUC, cfg)
	NewProfileHandler(protected, admin, deps.ProfileUC, deps.NotificationUC)
	NewTaxonomyHandlers(v1, admin, deps.TaxonomyUC, deps.PosteUC)
	NewCollectionHandler(protected, admin, deps.CollectionUC, cfg)
	NewFilterHandler(protected, deps.FilterUC)

	return r
}
