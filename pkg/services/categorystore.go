package services

import (
	"context"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryStore is the storage surface behind the category tree service.
// Find methods return (nil, nil) when nothing matches.
type CategoryStore interface {
	Insert(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindLiveBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListLive(ctx context.Context) ([]*models.Category, error)
}

type mongoCategoryStore struct {
	categories *mongo.Collection
}

func NewCategoryStore(client *mongo.Client) CategoryStore {
	return &mongoCategoryStore{categories: util.GetCollection(client, "Category")}
}

func (s *mongoCategoryStore) Insert(ctx context.Context, c *models.Category) error {
	_, err := s.categories.InsertOne(ctx, c)
	return err
}

func (s *mongoCategoryStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	res, err := s.categories.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *mongoCategoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *mongoCategoryStore) FindLiveBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.categories.FindOne(ctx, bson.M{"slug": slug, "is_deleted": false}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *mongoCategoryStore) ListLive(ctx context.Context) ([]*models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
