package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a node in the self-referencing catalog hierarchy. Parent is
// nil for roots. Categories are never physically removed; IsDeleted keeps
// historical products and orders resolvable.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Parent      *primitive.ObjectID `bson:"parent" json:"parent"`
	Slug        string              `bson:"slug" json:"slug"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Image       string              `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool                `bson:"is_active" json:"isActive"`
	IsDeleted   bool                `bson:"is_deleted" json:"isDeleted"`
	CreatedAt   time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updatedAt"`
	CreatedBy   primitive.ObjectID  `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy   primitive.ObjectID  `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`

	// Children is populated during tree materialization only.
	Children []*Category `bson:"-" json:"children,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Parent      string `json:"parent"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Parent      *string `json:"parent"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	// ClearImage drops the stored image without replacing it.
	ClearImage bool `json:"clearImage"`
}
