package container

import (
	"log"

	"vendura-api-io/api/pkg/controllers"
	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceContainer wires storage, services and controllers once at startup.
type ServiceContainer struct {
	MongoClient *mongo.Client
	RedisClient *redis.Client
	MediaStore  media.Store

	CategoryService   services.CategoryService
	CollectionService services.CollectionService
	ProductService    services.ProductService
	OrderService      services.OrderService
	UserService       services.UserService

	CategoryController   *controllers.CategoryController
	CollectionController *controllers.CollectionController
	ProductController    *controllers.ProductController
	OrderController      *controllers.OrderController
	UserController       *controllers.UserController
}

func NewServiceContainer() *ServiceContainer {
	mongoClient := util.ConnectDB()
	redisClient := util.ConnectRedis()

	mediaRoot := util.LoadEnvFor("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	mediaStore, err := media.NewDiskStore(mediaRoot)
	if err != nil {
		log.Fatal("failed to initialize media store: ", err)
	}

	runTxn := services.MongoTxnRunner(mongoClient)

	categoryStore := services.NewCategoryStore(mongoClient)
	collectionStore := services.NewCollectionStore(mongoClient)
	productStore := services.NewProductStore(mongoClient)

	categoryService := services.NewCategoryService(categoryStore, mediaStore, redisClient)
	// The query engine resolves slug filters through the live category and
	// collection services.
	queryEngine := services.NewCatalogQueryEngine(categoryService.ResolveSlug, nil)

	collectionService := services.NewCollectionService(collectionStore, mediaStore, queryEngine)
	queryEngine.SetCollectionResolver(collectionService.ResolveSlug)

	productService := services.NewProductService(productStore, mediaStore, queryEngine, runTxn)
	orderService := services.NewOrderService(mongoClient, runTxn)
	userService := services.NewUserService(mongoClient)

	return &ServiceContainer{
		MongoClient: mongoClient,
		RedisClient: redisClient,
		MediaStore:  mediaStore,

		CategoryService:   categoryService,
		CollectionService: collectionService,
		ProductService:    productService,
		OrderService:      orderService,
		UserService:       userService,

		CategoryController:   controllers.InitCategoryController(categoryService, mediaStore),
		CollectionController: controllers.InitCollectionController(collectionService, mediaStore),
		ProductController:    controllers.InitProductController(productService, mediaStore),
		OrderController:      controllers.InitOrderController(orderService),
		UserController:       controllers.InitUserController(userService, redisClient),
	}
}
