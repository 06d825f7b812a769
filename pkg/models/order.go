package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a snapshot of a product at purchase time. It copies the
// fields it needs instead of referencing live catalog rows, so later
// catalog edits never rewrite order history.
type OrderItem struct {
	ID              primitive.ObjectID   `bson:"_id" json:"id"`
	Name            string               `bson:"name" json:"name" validate:"required"`
	Summary         string               `bson:"summary" json:"summary"`
	Price           float64              `bson:"price" json:"price" validate:"required"`
	DiscountPrice   *float64             `bson:"discount_price,omitempty" json:"discountPrice,omitempty"`
	CostPrice       *float64             `bson:"cost_price,omitempty" json:"costPrice,omitempty"`
	HasVariants     bool                 `bson:"has_variants" json:"hasVariants"`
	Qty             int                  `bson:"qty" json:"qty" validate:"required,min=1"`
	SelectedVariant any                  `bson:"selected_variant,omitempty" json:"selectedVariant,omitempty"`
	SKU             string               `bson:"sku" json:"sku" validate:"required"`
	Category        primitive.ObjectID   `bson:"category" json:"category"`
	Collections     []primitive.ObjectID `bson:"collections" json:"collections"`
	Images          []string             `bson:"images" json:"images"`
}

type Order struct {
	ID              primitive.ObjectID   `bson:"_id" json:"id"`
	Items           []primitive.ObjectID `bson:"items" json:"items"`
	SubTotal        float64              `bson:"sub_total" json:"subTotal"`
	ShippingCost    float64              `bson:"shipping_cost" json:"shippingCost"`
	Discount        float64              `bson:"discount" json:"discount"`
	Total           float64              `bson:"total" json:"total"`
	DeliveryAddress string               `bson:"delivery_address" json:"deliveryAddress"`
	DeliveryOption  primitive.ObjectID   `bson:"delivery_option" json:"deliveryOption"`
	PaymentOption   primitive.ObjectID   `bson:"payment_option" json:"paymentOption"`
	OrderNo         string               `bson:"order_no" json:"orderNo"`
	Status          string               `bson:"status" json:"status"`
	User            primitive.ObjectID   `bson:"user" json:"user"`
	PaymentStatus   string               `bson:"payment_status" json:"paymentStatus"`
	DeliveryStatus  string               `bson:"delivery_status" json:"deliveryStatus"`
	DeliveryDate    string               `bson:"delivery_date" json:"deliveryDate"`
	IsDeleted       bool                 `bson:"is_deleted" json:"isDeleted"`
	CreatedAt       time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updatedAt"`
	CreatedBy       primitive.ObjectID   `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy       primitive.ObjectID   `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
}

// OrderRequest is the order placement payload; items are snapshots built
// by the storefront, not catalog references.
type OrderRequest struct {
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	SubTotal        float64     `json:"subTotal" validate:"required"`
	ShippingCost    float64     `json:"shippingCost"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total" validate:"required"`
	DeliveryAddress string      `json:"deliveryAddress" validate:"required"`
	DeliveryOption  string      `json:"deliveryOption" validate:"required"`
	PaymentOption   string      `json:"paymentOption" validate:"required"`
	DeliveryDate    string      `json:"deliveryDate"`
}

type DeliveryOption struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Code      string             `bson:"code" json:"code" validate:"required"`
	Title     string             `bson:"title" json:"title" validate:"required"`
	Charge    float64            `bson:"charge" json:"charge"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
}

type PaymentOption struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Code      string             `bson:"code" json:"code" validate:"required"`
	Title     string             `bson:"title" json:"title" validate:"required"`
	Img       string             `bson:"img" json:"img"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
}
