package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection is a curated, flat grouping of products. Same soft-delete and
// slug-uniqueness discipline as Category, no hierarchy.
type Collection struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	IsDeleted   bool               `bson:"is_deleted" json:"isDeleted"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy   primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
}

type CollectionRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type CollectionPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	ClearImage  bool    `json:"clearImage"`
}
