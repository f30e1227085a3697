// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/audiosynthese-backend/internal/config"
	"github.com/your-org/audiosynthese-backend/internal/interfaces/http/handlers"
	"github.com/your-org/audiosynthese-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all storefront routes onto the API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg, log)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg, log)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
	}

	rg.GET("/categories", productHandler.ListCategories)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// guest checkout is allowed; a valid token binds the order to the account
	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		checkoutGroup.POST("", checkoutHandler.Submit)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", invoiceHandler.ListOrders)
		orders.GET("/:id", invoiceHandler.GetOrder)
	}
}
