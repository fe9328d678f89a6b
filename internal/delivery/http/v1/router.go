package v1

import (
	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC         domain.UserUsecase
	SavedUC        domain.SavedUsecase
	VagaUC         domain.VagaUsecase
	HealthUC       usecase.HealthUsecase
	LoginTracker   *security.LoginTracker
	SecurityLogger *security.SecurityLogger
	RateLimiter    *middleware.RateLimiter
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Swagger and health stay outside the global limit
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	NewHealthHandler(api, deps.HealthUC)

	window := deps.Config.RateLimit.Window()
	limited := api.Group("")
	limited.Use(deps.RateLimiter.Middleware(middleware.DefaultRateLimitConfig(deps.Config.RateLimit.GlobalThreshold, window)))
	{
		loginLimit := deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(deps.Config.RateLimit.LoginThreshold, window))
		NewUserHandler(limited, deps.UserUC, deps.LoginTracker, deps.SecurityLogger, loginLimit)
		NewSavedHandler(limited, deps.SavedUC)
		NewVagaHandler(limited, deps.VagaUC)
	}

	return r
}
