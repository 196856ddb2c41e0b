package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/server/http/handlers"
	"github.com/garmentix/marketplace/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Role gating
// happens here: admin-only and manager-only groups reject before any handler
// runs, so a handler can assume the role check already passed.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	userHandler := handlers.NewUserHandler(facade)

	auth := engine.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// storefront catalog is public
	engine.GET("/products", productHandler.List)
	engine.GET("/products/:id", productHandler.Get)

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/users/:email", authHandler.Profile)

	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.PATCH("/orders/:id", orderHandler.Patch)
	authed.DELETE("/orders/:id", orderHandler.Delete)
	authed.GET("/orders/:id/tracking", orderHandler.Tracking)

	authed.POST("/create-checkout-session", paymentHandler.CreateSession)
	authed.PATCH("/payment-success", paymentHandler.Success)

	staff := authed.Group("")
	staff.Use(middleware.RequireRole(model.RoleManager, model.RoleAdmin))
	staff.POST("/orders/:id/tracking", orderHandler.AppendTracking)
	staff.POST("/products", productHandler.Create)
	staff.PUT("/products/:id", productHandler.Update)
	staff.DELETE("/products/:id", productHandler.Delete)

	admin := authed.Group("/users")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("", userHandler.List)
	admin.PUT("/:email", userHandler.Update)
	admin.DELETE("/:email", userHandler.Delete)

	return engine
}
