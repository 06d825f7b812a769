package services

import (
	"context"
	"testing"

	"vendura-api-io/api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func staticResolver(known map[string]primitive.ObjectID) SlugResolver {
	return func(_ context.Context, slug string) (primitive.ObjectID, bool) {
		id, ok := known[slug]
		return id, ok
	}
}

func TestBuildProductFilterAlwaysExcludesDeleted(t *testing.T) {
	e := NewCatalogQueryEngine(nil, nil)
	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{})
	assert.Equal(t, bson.M{"is_deleted": false}, filter)
}

func TestBuildProductFilterActiveState(t *testing.T) {
	e := NewCatalogQueryEngine(nil, nil)
	active := true
	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{IsActive: &active})
	assert.Equal(t, true, filter["is_active"])
}

func TestBuildProductFilterSearchKeySpansFields(t *testing.T) {
	e := NewCatalogQueryEngine(nil, nil)
	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{SearchKey: "linen"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)

	fields := make([]string, 0, len(or))
	for _, term := range or {
		for field := range term {
			fields = append(fields, field)
		}
	}
	assert.ElementsMatch(t, []string{"name", "description", "sku", "tags"}, fields)
}

func TestBuildProductFilterQuotesRegexMeta(t *testing.T) {
	e := NewCatalogQueryEngine(nil, nil)
	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{SearchKey: "100% (cotton)"})

	or := filter["$or"].([]bson.M)
	pattern := or[0]["name"].(bson.M)["$regex"].(primitive.Regex)
	assert.Equal(t, `100% \(cotton\)`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestBuildProductFilterResolvesSlugs(t *testing.T) {
	categoryID := primitive.NewObjectID()
	collectionID := primitive.NewObjectID()
	e := NewCatalogQueryEngine(
		staticResolver(map[string]primitive.ObjectID{"clothing": categoryID}),
		staticResolver(map[string]primitive.ObjectID{"summer": collectionID}),
	)

	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{
		CategorySlug:   "clothing",
		CollectionSlug: "summer",
	})

	assert.Equal(t, categoryID, filter["category"])
	assert.Equal(t, collectionID, filter["collections"])
}

func TestBuildProductFilterDropsUnresolvedSlug(t *testing.T) {
	e := NewCatalogQueryEngine(
		staticResolver(map[string]primitive.ObjectID{}),
		staticResolver(map[string]primitive.ObjectID{}),
	)

	filter := e.BuildProductFilter(context.Background(), models.SearchFilter{
		SearchKey:      "shirt",
		CategorySlug:   "no-such-category",
		CollectionSlug: "no-such-collection",
	})

	// Unresolved slug terms are dropped, not turned into empty matches.
	_, hasCategory := filter["category"]
	_, hasCollection := filter["collections"]
	assert.False(t, hasCategory)
	assert.False(t, hasCollection)
	assert.Contains(t, filter, "$or")
}

func TestBuildCollectionFilter(t *testing.T) {
	e := NewCatalogQueryEngine(nil, nil)
	active := false
	filter := e.BuildCollectionFilter(models.SearchFilter{SearchKey: "sale", IsActive: &active})

	assert.Equal(t, false, filter["is_deleted"])
	assert.Equal(t, false, filter["is_active"])
	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, or, 2)
}
