package services

import (
	"context"
	"regexp"

	"vendura-api-io/api/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlugResolver maps a slug to the id of a live entity. The second return
// is false when the slug resolves to nothing.
type SlugResolver func(ctx context.Context, slug string) (primitive.ObjectID, bool)

// CatalogQueryEngine turns a structured search filter into the bson
// predicate a list query runs with. Deleted rows are always excluded.
type CatalogQueryEngine struct {
	resolveCategory   SlugResolver
	resolveCollection SlugResolver
}

func NewCatalogQueryEngine(category, collection SlugResolver) *CatalogQueryEngine {
	return &CatalogQueryEngine{
		resolveCategory:   category,
		resolveCollection: collection,
	}
}

// SetCollectionResolver breaks the wiring cycle between the query engine
// and the collection service, which itself searches through the engine.
func (e *CatalogQueryEngine) SetCollectionResolver(r SlugResolver) {
	e.resolveCollection = r
}

// BuildProductFilter expands searchKey to a case-insensitive substring
// match across name/description/sku/tags and resolves category/collection
// slugs to ids. A slug that resolves to nothing drops its filter term
// rather than forcing an empty result; that quirk is part of the API
// contract.
func (e *CatalogQueryEngine) BuildProductFilter(ctx context.Context, f models.SearchFilter) bson.M {
	match := bson.M{"is_deleted": false}

	if f.IsActive != nil {
		match["is_active"] = *f.IsActive
	}

	if f.SearchKey != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.SearchKey), Options: "i"}
		match["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern}},
			{"description": bson.M{"$regex": pattern}},
			{"sku": bson.M{"$regex": pattern}},
			{"tags": bson.M{"$regex": pattern}},
		}
	}

	if f.CategorySlug != "" && e.resolveCategory != nil {
		if id, ok := e.resolveCategory(ctx, f.CategorySlug); ok {
			match["category"] = id
		}
	}

	if f.CollectionSlug != "" && e.resolveCollection != nil {
		if id, ok := e.resolveCollection(ctx, f.CollectionSlug); ok {
			match["collections"] = id
		}
	}

	return match
}

// BuildCollectionFilter is the collection-search variant: soft-delete
// exclusion, optional active state, substring match on name/description.
func (e *CatalogQueryEngine) BuildCollectionFilter(f models.SearchFilter) bson.M {
	match := bson.M{"is_deleted": false}

	if f.IsActive != nil {
		match["is_active"] = *f.IsActive
	}

	if f.SearchKey != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.SearchKey), Options: "i"}
		match["$or"] = []bson.M{
			{"name": bson.M{"$regex": pattern}},
			{"description": bson.M{"$regex": pattern}},
		}
	}

	return match
}
