package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Password  string             `bson:"password" json:"-"`
	IsAdmin   bool               `bson:"is_admin" json:"isAdmin"`
	Roles     []string           `bson:"roles" json:"roles"`
	IsActive  bool               `bson:"is_active" json:"isActive"`
	IsDeleted bool               `bson:"is_deleted" json:"isDeleted"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
