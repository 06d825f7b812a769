package services

import (
	"context"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService maintains the self-referencing category hierarchy.
type CategoryService interface {
	CreateCategory(ctx context.Context, req models.CategoryRequest, imageTemp string, callerID primitive.ObjectID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, patch models.CategoryPatch, imageTemp string, callerID primitive.ObjectID) (*models.Category, error)
	SoftDeleteCategory(ctx context.Context, id, callerID primitive.ObjectID) error
	GetCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	IsSlugUnique(ctx context.Context, slug string) (bool, error)
	MaterializeTree(ctx context.Context, rootID *primitive.ObjectID) ([]*models.Category, error)
	ResolveSlug(ctx context.Context, slug string) (primitive.ObjectID, bool)
}

// CollectionService maintains curated product collections.
type CollectionService interface {
	CreateCollection(ctx context.Context, req models.CollectionRequest, imageTemp string, callerID primitive.ObjectID) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id primitive.ObjectID, patch models.CollectionPatch, imageTemp string, callerID primitive.ObjectID) (*models.Collection, error)
	SoftDeleteCollection(ctx context.Context, id, callerID primitive.ObjectID) error
	IsSlugUnique(ctx context.Context, slug string) (bool, error)
	ListCollections(ctx context.Context, args util.PaginationArgs) ([]models.Collection, int64, error)
	SearchCollections(ctx context.Context, req models.SearchRequest) ([]models.Collection, int64, error)
	ResolveSlug(ctx context.Context, slug string) (primitive.ObjectID, bool)
}

// ProductService coordinates transactional product writes and catalog
// reads.
type ProductService interface {
	CreateProduct(ctx context.Context, req ProductWriteRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, req ProductWriteRequest) (*models.Product, error)
	SoftDeleteProduct(ctx context.Context, id, callerID primitive.ObjectID) error
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error)
	GetProductRow(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context, args util.PaginationArgs) ([]models.Product, int64, error)
	SearchProducts(ctx context.Context, req models.SearchRequest) ([]models.Product, int64, error)
}

// OrderService places orders with the same transactional pattern the
// product coordinator uses, plus delivery/payment option management.
type OrderService interface {
	CreateOrder(ctx context.Context, req models.OrderRequest, callerID primitive.ObjectID) (*models.Order, error)
	GetOrders(ctx context.Context, args util.PaginationArgs) ([]models.Order, int64, error)

	CreateDeliveryOption(ctx context.Context, opt models.DeliveryOption) (*models.DeliveryOption, error)
	UpdateDeliveryOption(ctx context.Context, id primitive.ObjectID, opt models.DeliveryOption) (*models.DeliveryOption, error)
	GetDeliveryOptions(ctx context.Context) ([]models.DeliveryOption, error)
	DeleteDeliveryOption(ctx context.Context, id primitive.ObjectID) error

	CreatePaymentOption(ctx context.Context, opt models.PaymentOption) (*models.PaymentOption, error)
	UpdatePaymentOption(ctx context.Context, id primitive.ObjectID, opt models.PaymentOption) (*models.PaymentOption, error)
	GetPaymentOptions(ctx context.Context) ([]models.PaymentOption, error)
	DeletePaymentOption(ctx context.Context, id primitive.ObjectID) error
}

// UserService handles account registration and credential checks.
type UserService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
