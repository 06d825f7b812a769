package routers

import (
	"vendura-api-io/api/internal/auth"
	"vendura-api-io/api/internal/container"
	"vendura-api-io/api/internal/middleware"
	"vendura-api-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the Gin router with the service layer wired in.
func InitRoute() *gin.Engine {
	serviceContainer := container.NewServiceContainer()
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/api", middleware.VenduraRateLimiter(serviceContainer.RedisClient))
	{
		api.GET("/ping", controllers.Ping)

		userRoutes(api, serviceContainer)
		productRoutes(api, serviceContainer)
		productConfigRoutes(api, serviceContainer)
		orderRoutes(api, serviceContainer)
	}

	return router
}

func userRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	userController := sc.UserController

	user := api.Group("/user")
	user.POST("/signup", userController.Signup)
	user.POST("/login", userController.Login)
	{
		secured := user.Group("").Use(auth.Auth(sc.RedisClient))
		secured.DELETE("/logout", userController.Logout)
		secured.GET("/me", userController.GetMe)
	}
}

func productRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	productController := sc.ProductController

	product := api.Group("/product")
	product.GET("/", productController.GetProducts)
	product.GET("/:id", productController.GetProduct)
	product.POST("/search", productController.SearchProducts)
	{
		secured := product.Group("").Use(auth.Auth(sc.RedisClient), auth.AdminOnly())
		secured.POST("/", productController.CreateProduct)
		secured.PUT("/:id", productController.UpdateProduct)
		secured.DELETE("/:id", productController.DeleteProduct)
	}
}

// productConfigRoutes covers the catalog taxonomy: the category tree and
// curated collections.
func productConfigRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	categoryController := sc.CategoryController
	collectionController := sc.CollectionController

	config := api.Group("/product-config")

	config.GET("/category-tree", categoryController.GetCategoryTree)
	config.GET("/category/:id", categoryController.GetCategory)
	config.GET("/category/is-slug-unique", categoryController.IsSlugUnique)

	config.GET("/collection", collectionController.GetCollections)
	config.POST("/collection/search", collectionController.SearchCollections)
	config.GET("/collection/is-slug-unique", collectionController.IsSlugUnique)

	{
		secured := config.Group("").Use(auth.Auth(sc.RedisClient), auth.AdminOnly())
		secured.POST("/category", categoryController.CreateCategory)
		secured.PUT("/category/:id", categoryController.UpdateCategory)
		secured.DELETE("/category/:id", categoryController.DeleteCategory)

		secured.POST("/collection", collectionController.CreateCollection)
		secured.PUT("/collection/:id", collectionController.UpdateCollection)
		secured.DELETE("/collection/:id", collectionController.DeleteCollection)
	}
}

func orderRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	orderController := sc.OrderController

	order := api.Group("/order")

	order.GET("/delivery-options", orderController.GetDeliveryOptions)
	order.GET("/payment-options", orderController.GetPaymentOptions)

	{
		secured := order.Group("").Use(auth.Auth(sc.RedisClient))
		secured.POST("/", orderController.CreateOrder)
	}
	{
		admin := order.Group("").Use(auth.Auth(sc.RedisClient), auth.AdminOnly())
		admin.GET("/", orderController.GetOrders)

		admin.POST("/delivery-options", orderController.CreateDeliveryOption)
		admin.PUT("/delivery-options/:id", orderController.UpdateDeliveryOption)
		admin.DELETE("/delivery-options/:id", orderController.DeleteDeliveryOption)

		admin.POST("/payment-options", orderController.CreatePaymentOption)
		admin.PUT("/payment-options/:id", orderController.UpdatePaymentOption)
		admin.DELETE("/payment-options/:id", orderController.DeletePaymentOption)
	}
}
