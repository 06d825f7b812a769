package services

import (
	"context"
	"testing"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestCollectionService(t *testing.T) (CollectionService, *fakeCollectionStore) {
	t.Helper()
	store := newFakeCollectionStore()
	mediaStore, _ := newTestMedia(t)
	return NewCollectionService(store, mediaStore, NewCatalogQueryEngine(nil, nil)), store
}

func TestCreateCollectionSlugConflict(t *testing.T) {
	svc, _ := newTestCollectionService(t)

	created, err := svc.CreateCollection(context.Background(), models.CollectionRequest{Name: "Summer Sale"}, "", primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, "summer-sale", created.Slug)

	_, err = svc.CreateCollection(context.Background(), models.CollectionRequest{Name: "Summer Sale"}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrConflict))
}

func TestCollectionSlugFreedBySoftDelete(t *testing.T) {
	svc, _ := newTestCollectionService(t)

	created, err := svc.CreateCollection(context.Background(), models.CollectionRequest{Name: "Summer Sale"}, "", primitive.NewObjectID())
	require.NoError(t, err)

	require.NoError(t, svc.SoftDeleteCollection(context.Background(), created.ID, primitive.NewObjectID()))

	unique, err := svc.IsSlugUnique(context.Background(), "summer-sale")
	require.NoError(t, err)
	assert.True(t, unique)

	_, ok := svc.ResolveSlug(context.Background(), "summer-sale")
	assert.False(t, ok)
}

func TestUpdateCollectionSlugGuard(t *testing.T) {
	svc, _ := newTestCollectionService(t)

	first, err := svc.CreateCollection(context.Background(), models.CollectionRequest{Name: "Summer Sale"}, "", primitive.NewObjectID())
	require.NoError(t, err)
	second, err := svc.CreateCollection(context.Background(), models.CollectionRequest{Name: "Winter Sale"}, "", primitive.NewObjectID())
	require.NoError(t, err)

	taken := "Summer Sale"
	_, err = svc.UpdateCollection(context.Background(), second.ID, models.CollectionPatch{Slug: &taken}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrConflict))

	// A collection may keep its own slug through an update.
	own := "Summer Sale"
	_, err = svc.UpdateCollection(context.Background(), first.ID, models.CollectionPatch{Slug: &own}, "", primitive.NewObjectID())
	assert.NoError(t, err)
}

func TestUpdateCollectionUnknownID(t *testing.T) {
	svc, _ := newTestCollectionService(t)
	name := "Renamed"
	_, err := svc.UpdateCollection(context.Background(), primitive.NewObjectID(), models.CollectionPatch{Name: &name}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrNotFound))
}
