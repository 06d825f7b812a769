package services

import (
	"context"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductStore is the storage surface the transaction coordinator writes
// through. Every method honors the session carried by ctx, so calls made
// inside a TxnRunner callback participate in that transaction.
type ProductStore interface {
	InsertProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error)
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	RemoveProduct(ctx context.Context, id primitive.ObjectID) error
	ListProducts(ctx context.Context, filter bson.M, args util.PaginationArgs) ([]models.Product, int64, error)

	InsertVariants(ctx context.Context, vs []models.Variant) error
	UpdateVariant(ctx context.Context, id primitive.ObjectID, set bson.M) error
	RemoveVariants(ctx context.Context, ids []primitive.ObjectID) error
	FindVariants(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error)
}

type mongoProductStore struct {
	products *mongo.Collection
	variants *mongo.Collection
}

func NewProductStore(client *mongo.Client) ProductStore {
	return &mongoProductStore{
		products: util.GetCollection(client, "Product"),
		variants: util.GetCollection(client, "Variant"),
	}
}

func (s *mongoProductStore) InsertProduct(ctx context.Context, p *models.Product) error {
	_, err := s.products.InsertOne(ctx, p)
	return err
}

func (s *mongoProductStore) UpdateProduct(ctx context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// FindProduct returns (nil, nil) when no document matches, so callers can
// map absence to the API's not-found error themselves.
func (s *mongoProductStore) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mongoProductStore) RemoveProduct(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *mongoProductStore) ListProducts(ctx context.Context, filter bson.M, args util.PaginationArgs) ([]models.Product, int64, error) {
	findOptions := options.Find().
		SetLimit(int64(args.NormalizedLimit())).
		SetSkip(int64(args.Skip())).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.products.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	count, err := s.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (s *mongoProductStore) InsertVariants(ctx context.Context, vs []models.Variant) error {
	if len(vs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(vs))
	for _, v := range vs {
		docs = append(docs, v)
	}
	_, err := s.variants.InsertMany(ctx, docs)
	return err
}

func (s *mongoProductStore) UpdateVariant(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	_, err := s.variants.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (s *mongoProductStore) RemoveVariants(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.variants.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (s *mongoProductStore) FindVariants(ctx context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := s.variants.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.Variant
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	// Preserve the product's stored order, not cursor order.
	byID := make(map[primitive.ObjectID]models.Variant, len(rows))
	for _, v := range rows {
		byID[v.ID] = v
	}
	ordered := make([]models.Variant, 0, len(rows))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}
