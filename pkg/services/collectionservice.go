package services

import (
	"context"
	"time"

	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	slug2 "github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionStore mirrors CategoryStore for the flat collection entity.
type CollectionStore interface {
	Insert(ctx context.Context, c *models.Collection) error
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error)
	FindLiveBySlug(ctx context.Context, slug string) (*models.Collection, error)
	List(ctx context.Context, filter bson.M, args util.PaginationArgs) ([]models.Collection, int64, error)
}

type mongoCollectionStore struct {
	collections *mongo.Collection
}

func NewCollectionStore(client *mongo.Client) CollectionStore {
	return &mongoCollectionStore{collections: util.GetCollection(client, "Collection")}
}

func (s *mongoCollectionStore) Insert(ctx context.Context, c *models.Collection) error {
	_, err := s.collections.InsertOne(ctx, c)
	return err
}

func (s *mongoCollectionStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	res, err := s.collections.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *mongoCollectionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Collection, error) {
	var c models.Collection
	err := s.collections.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *mongoCollectionStore) FindLiveBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	var c models.Collection
	err := s.collections.FindOne(ctx, bson.M{"slug": slug, "is_deleted": false}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *mongoCollectionStore) List(ctx context.Context, filter bson.M, args util.PaginationArgs) ([]models.Collection, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(args.NormalizedLimit())).
		SetSkip(int64(args.Skip())).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.collections.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var collections []models.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, 0, err
	}

	count, err := s.collections.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return collections, count, nil
}

type collectionService struct {
	store CollectionStore
	media media.Store
	query *CatalogQueryEngine
}

func NewCollectionService(store CollectionStore, mediaStore media.Store, query *CatalogQueryEngine) CollectionService {
	return &collectionService{store: store, media: mediaStore, query: query}
}

func collectionMediaDir(id primitive.ObjectID) string {
	return "collections/" + id.Hex()
}

func (s *collectionService) CreateCollection(ctx context.Context, req models.CollectionRequest, imageTemp string, callerID primitive.ObjectID) (*models.Collection, error) {
	cleanup := func() {
		if imageTemp != "" {
			if err := s.media.Delete(imageTemp); err != nil {
				util.LogError("discard collection upload", err)
			}
		}
	}

	slugVal := req.Slug
	if slugVal == "" {
		slugVal = req.Name
	}
	slugVal = slug2.Make(slugVal)

	existing, err := s.store.FindLiveBySlug(ctx, slugVal)
	if err != nil {
		cleanup()
		return nil, errors.Wrap(err, "check collection slug")
	}
	if existing != nil {
		cleanup()
		return nil, errors.Wrapf(util.ErrConflict, "collection slug %q already in use", slugVal)
	}

	now := time.Now()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	collection := &models.Collection{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Slug:        slugVal,
		Description: req.Description,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   callerID,
		UpdatedBy:   callerID,
	}

	if imageTemp != "" {
		finalPath, err := s.media.Move(imageTemp, collectionMediaDir(collection.ID))
		if err != nil {
			cleanup()
			return nil, errors.Wrap(err, "relocate collection image")
		}
		collection.Image = finalPath
	}

	if err := s.store.Insert(ctx, collection); err != nil {
		if collection.Image != "" {
			if delErr := s.media.Delete(collection.Image); delErr != nil {
				util.LogError("rollback collection image", delErr)
			}
		}
		return nil, errors.Wrap(err, "insert collection")
	}

	return collection, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, id primitive.ObjectID, patch models.CollectionPatch, imageTemp string, callerID primitive.ObjectID) (*models.Collection, error) {
	cleanup := func() {
		if imageTemp != "" {
			if err := s.media.Delete(imageTemp); err != nil {
				util.LogError("discard collection upload", err)
			}
		}
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		cleanup()
		return nil, errors.Wrap(err, "load collection")
	}
	if current == nil || current.IsDeleted {
		cleanup()
		return nil, errors.Wrapf(util.ErrNotFound, "collection %s", id.Hex())
	}

	set := bson.M{"updated_by": callerID, "updated_at": time.Now()}

	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		set["is_active"] = *patch.IsActive
	}
	if patch.Slug != nil {
		slugVal := slug2.Make(*patch.Slug)
		other, err := s.store.FindLiveBySlug(ctx, slugVal)
		if err != nil {
			cleanup()
			return nil, errors.Wrap(err, "check collection slug")
		}
		if other != nil && other.ID != id {
			cleanup()
			return nil, errors.Wrapf(util.ErrConflict, "collection slug %q already in use", slugVal)
		}
		set["slug"] = slugVal
	}

	oldImage := ""
	if imageTemp != "" {
		finalPath, err := s.media.Move(imageTemp, collectionMediaDir(id))
		if err != nil {
			return nil, errors.Wrap(err, "relocate collection image")
		}
		set["image"] = finalPath
		oldImage = current.Image
	} else if patch.ClearImage {
		set["image"] = ""
		oldImage = current.Image
	}

	matched, err := s.store.Update(ctx, id, bson.M{"$set": set})
	if err != nil {
		if newImage, ok := set["image"].(string); ok && newImage != "" {
			if delErr := s.media.Delete(newImage); delErr != nil {
				util.LogError("rollback collection image", delErr)
			}
		}
		return nil, errors.Wrap(err, "update collection")
	}
	if matched == 0 {
		return nil, errors.Wrapf(util.ErrNotFound, "collection %s", id.Hex())
	}

	if oldImage != "" {
		if delErr := s.media.Delete(oldImage); delErr != nil {
			util.LogError("cleanup replaced collection image", delErr)
		}
	}

	return s.store.FindByID(ctx, id)
}

func (s *collectionService) SoftDeleteCollection(ctx context.Context, id, callerID primitive.ObjectID) error {
	matched, err := s.store.Update(ctx, id, bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_by": callerID,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return errors.Wrap(err, "delete collection")
	}
	if matched == 0 {
		return errors.Wrapf(util.ErrNotFound, "collection %s", id.Hex())
	}
	return nil
}

func (s *collectionService) IsSlugUnique(ctx context.Context, slugVal string) (bool, error) {
	existing, err := s.store.FindLiveBySlug(ctx, slug2.Make(slugVal))
	if err != nil {
		return false, errors.Wrap(err, "check collection slug")
	}
	return existing == nil, nil
}

func (s *collectionService) ResolveSlug(ctx context.Context, slugVal string) (primitive.ObjectID, bool) {
	existing, err := s.store.FindLiveBySlug(ctx, slugVal)
	if err != nil {
		util.LogError("resolve collection slug "+slugVal, err)
		return primitive.NilObjectID, false
	}
	if existing == nil {
		return primitive.NilObjectID, false
	}
	return existing.ID, true
}

func (s *collectionService) ListCollections(ctx context.Context, args util.PaginationArgs) ([]models.Collection, int64, error) {
	return s.store.List(ctx, bson.M{"is_deleted": false}, args)
}

func (s *collectionService) SearchCollections(ctx context.Context, req models.SearchRequest) ([]models.Collection, int64, error) {
	filter := s.query.BuildCollectionFilter(req.Filter)
	args := util.PaginationArgs{Page: req.Meta.Page, Limit: req.Meta.Limit}
	return s.store.List(ctx, filter, args)
}
