package services

import (
	"context"
	"strings"
	"time"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users *mongo.Collection
}

func NewUserService(client *mongo.Client) UserService {
	return &userService{users: util.GetCollection(client, "User")}
}

func (s *userService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return nil, errors.Wrapf(util.ErrConflict, "email %q already registered", email)
	}
	if err != mongo.ErrNoDocuments {
		return nil, errors.Wrap(err, "check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := time.Now()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Mobile:    req.Mobile,
		Password:  string(hash),
		Roles:     []string{"customer"},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrapf(util.ErrConflict, "email %q already registered", email)
		}
		return nil, errors.Wrap(err, "insert user")
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrap(util.ErrValidation, "incorrect email or password")
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.Wrap(util.ErrValidation, "incorrect email or password")
	}
	if !user.IsActive {
		return nil, errors.Wrap(util.ErrValidation, "account is disabled")
	}

	return &user, nil
}

func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.Wrapf(util.ErrNotFound, "user %s", id.Hex())
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}
