package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/aurumdent/goldbuy/internal/adapter/objectstore"
	"github.com/aurumdent/goldbuy/internal/config"
	"github.com/aurumdent/goldbuy/internal/server/http/handlers"
	"github.com/aurumdent/goldbuy/internal/server/http/middleware"
)

// HealthChecker reports storage reachability for the liveness endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.GoldFacade, health HealthChecker, images *objectstore.DiskStore, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	priceHandler := handlers.NewPriceHandler(facade)
	requestHandler := handlers.NewRequestHandler(facade)
	settlementHandler := handlers.NewSettlementHandler(facade)

	engine.GET("/healthz", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if images != nil {
		engine.Static(cfg.ImageBaseURL, images.Dir())
	}

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", authHandler.Profile)
	userAuth.PATCH("/profile", authHandler.UpdateProfile)

	price := api.Group("/gold-price")
	price.GET("/current", priceHandler.Current)
	price.GET("/history", priceHandler.History)
	priceAdmin := price.Group("")
	priceAdmin.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	priceAdmin.POST("", priceHandler.Save)

	requests := api.Group("/requests")
	requests.Use(middleware.AuthRequired(facade))
	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.List)
	requests.GET("/:id", requestHandler.Get)
	requests.GET("/:id/timeline", requestHandler.Timeline)
	requests.GET("/:id/settlement", settlementHandler.GetByRequest)
	requests.PATCH("/:id/status", requestHandler.UpdateStatus)
	requests.POST("/:id/confirm", requestHandler.Confirm)

	requestsAdmin := requests.Group("")
	requestsAdmin.Use(middleware.AdminRequired())
	requestsAdmin.PATCH("/:id/evaluation", requestHandler.Evaluate)
	requestsAdmin.POST("/:id/images", requestHandler.UploadImage)

	settlements := api.Group("/settlements")
	settlements.Use(middleware.AuthRequired(facade))
	settlements.GET("", settlementHandler.List)
	settlements.GET("/:id", settlementHandler.Get)

	settlementsAdmin := settlements.Group("")
	settlementsAdmin.Use(middleware.AdminRequired())
	settlementsAdmin.POST("", settlementHandler.Derive)
	settlementsAdmin.PATCH("/:id/payment", settlementHandler.UpdatePayment)

	return engine
}
