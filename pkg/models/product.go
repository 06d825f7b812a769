package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariantOption is one axis of a variant configuration, e.g. size=L.
// Option order is meaningful and preserved as submitted.
type VariantOption struct {
	Name  string `bson:"name" json:"name" validate:"required"`
	Value string `bson:"value" json:"value" validate:"required"`
}

// Variant is a priced, stocked configuration owned by exactly one product.
// Variants are created and destroyed only inside a product write
// transaction; their lifetime never outlives the owning product's
// reference list.
type Variant struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Options       []VariantOption    `bson:"options" json:"options"`
	SKU           string             `bson:"sku" json:"sku"`
	Stock         int                `bson:"stock" json:"stock"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice *float64           `bson:"discount_price,omitempty" json:"discountPrice,omitempty"`
	CostPrice     *float64           `bson:"cost_price,omitempty" json:"costPrice,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	IsDeleted     bool               `bson:"is_deleted" json:"isDeleted"`
}

// Product is the aggregate root of the catalog. When HasVariants is true
// the scalar price/sku/stock are absent and Variants holds the ordered id
// set; when false the scalars are required and Variants is empty. Images
// holds ordered media-store paths under the product's own directory.
type Product struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	HasVariants bool                 `bson:"has_variants" json:"hasVariants"`
	Price       *float64             `bson:"price,omitempty" json:"price,omitempty"`
	Discount    float64              `bson:"discount" json:"discount"`
	SKU         *string              `bson:"sku,omitempty" json:"sku,omitempty"`
	Variants    []primitive.ObjectID `bson:"variants" json:"variants"`
	Stock       *int                 `bson:"stock,omitempty" json:"stock,omitempty"`
	TrackStock  bool                 `bson:"track_stock" json:"trackStock"`
	Category    primitive.ObjectID   `bson:"category,omitempty" json:"category,omitempty"`
	Collections []primitive.ObjectID `bson:"collections" json:"collections"`
	Tags        []string             `bson:"tags" json:"tags"`
	Images      []string             `bson:"images" json:"images"`
	IsActive    bool                 `bson:"is_active" json:"isActive"`
	IsDeleted   bool                 `bson:"is_deleted" json:"isDeleted"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
	CreatedBy   primitive.ObjectID   `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy   primitive.ObjectID   `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
}

// VariantPayload is one entry of a submitted variant list. An empty ID
// means a fresh variant; a set ID references one the product already owns.
type VariantPayload struct {
	ID            string          `json:"id"`
	Options       []VariantOption `json:"options" validate:"dive"`
	SKU           string          `json:"sku" validate:"required"`
	Stock         int             `json:"stock"`
	Price         float64         `json:"price" validate:"required"`
	DiscountPrice *float64        `json:"discountPrice"`
	CostPrice     *float64        `json:"costPrice"`
	Image         string          `json:"image"`
	IsActive      *bool           `json:"isActive"`
}

// ProductPayload is the JSON-encoded `data` field of the multipart
// create/update request. Images lists the previously stored paths the
// caller wants to keep; paths absent from it are scheduled for removal.
type ProductPayload struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	HasVariants bool             `json:"hasVariants"`
	Price       *float64         `json:"price"`
	Discount    float64          `json:"discount"`
	SKU         *string          `json:"sku"`
	Stock       *int             `json:"stock"`
	TrackStock  bool             `json:"trackStock"`
	Variants    []VariantPayload `json:"variants" validate:"dive"`
	Category    string           `json:"category"`
	Collections []string         `json:"collections"`
	Tags        []string         `json:"tags"`
	Images      []string         `json:"images"`
	IsActive    *bool            `json:"isActive"`
}

// ProductDetail is a product with its variant rows resolved, the read-side
// shape of get/list endpoints.
type ProductDetail struct {
	Product
	VariantRows []Variant `json:"variantDetails,omitempty"`
}
