package v1

import (
	"net/http"
	"path/filepath"
	"time"

	"offer-form-backend/config"
	"offer-form-backend/internal/delivery/http/middleware"
	"offer-form-backend/internal/delivery/http/response"
	"offer-form-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	OfferUC domain.OfferUsecase
	Config  *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware(cfg.RateLimitGlobalThreshold, window))

	// Embeddable form page and stored logo uploads
	r.StaticFile("/form", filepath.Join(cfg.StaticDir, "form.html"))
	r.Static("/uploads", cfg.UploadDir)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes, with a stricter limit on submissions
	offer := v1.Group("")
	offer.Use(middleware.RateLimitMiddleware(middleware.OfferRateLimitConfig(cfg.RateLimitOfferThreshold, window)))
	NewOfferHandler(offer, deps.OfferUC, cfg.PricePerSqm, cfg.SpecialShapeSurcharge)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
