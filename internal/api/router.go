package api

import (
	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful/internal/api/handler"
	"github.com/plateful/plateful/internal/api/middleware"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	authService *service.AuthService,
	catalogService *service.CatalogService,
	recommendService *service.RecommendService,
	log *logger.Logger,
	cors middleware.CORSConfig,
	mode string,
) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	// Create handlers
	healthHandler := handler.NewHealthHandler(recommendService)
	authHandler := handler.NewAuthHandler(authService)
	foodHandler := handler.NewFoodHandler(catalogService)
	orderHandler := handler.NewOrderHandler(catalogService)
	recommendHandler := handler.NewRecommendHandler(recommendService)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Accounts
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)

		// Catalog
		v1.GET("/food-items", foodHandler.ListFoodItems)
		v1.POST("/food-items", foodHandler.CreateFoodItem)

		// Authenticated routes
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.POST("/food-items/:id/like", foodHandler.Like)
			authed.POST("/food-items/:id/dislike", foodHandler.Dislike)
			authed.GET("/user/ratings", foodHandler.Ratings)
			authed.GET("/user/orders", orderHandler.ListOrders)
			authed.POST("/user/orders", orderHandler.PlaceOrder)
			authed.GET("/recommendations", recommendHandler.Recommendations)
		}
	}

	return r
}
