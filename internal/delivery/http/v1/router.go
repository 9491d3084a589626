package v1

import (
	"net/http"

	"solar-quote-backend/config"
	"solar-quote-backend/internal/delivery/http/middleware"
	"solar-quote-backend/internal/delivery/http/response"
	"solar-quote-backend/internal/domain"
	"solar-quote-backend/internal/usecase"
	"solar-quote-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	QuoteUC       domain.QuoteUsecase
	HealthUC      usecase.HealthUsecase
	DiagnosticsUC domain.DiagnosticsUsecase // nil disables the operator routes
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.Recovery()) // must stay first
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes. /quote is kept at the root for existing form deployments.
	NewQuoteHandler(deps.QuoteUC, []gin.HandlerFunc{deps.RateLimiter.Middleware()}, v1, &r.RouterGroup)

	// Operator routes
	if deps.DiagnosticsUC != nil && deps.Config.DiagnosticsJWTSecret != "" {
		operator := v1.Group("")
		operator.Use(middleware.OperatorAuth(deps.Config.DiagnosticsJWTSecret))
		NewDiagnosticsHandler(operator, deps.DiagnosticsUC)
	}

	return r
}
