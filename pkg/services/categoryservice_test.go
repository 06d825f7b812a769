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

func newTestCategoryService(t *testing.T) (CategoryService, *fakeCategoryStore) {
	t.Helper()
	store := newFakeCategoryStore()
	mediaStore, _ := newTestMedia(t)
	return NewCategoryService(store, mediaStore, nil), store
}

func mustCreateCategory(t *testing.T, svc CategoryService, name, parent string) *models.Category {
	t.Helper()
	c, err := svc.CreateCategory(context.Background(), models.CategoryRequest{
		Name:   name,
		Parent: parent,
	}, "", primitive.NewObjectID())
	require.NoError(t, err)
	return c
}

func TestCreateCategorySlugGeneratedAndUnique(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	c := mustCreateCategory(t, svc, "Summer Wear", "")
	assert.Equal(t, "summer-wear", c.Slug)

	_, err := svc.CreateCategory(context.Background(), models.CategoryRequest{
		Name: "Summer Wear",
	}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrConflict))
}

func TestSlugReusableAfterSoftDelete(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	c := mustCreateCategory(t, svc, "Summer Wear", "")
	require.NoError(t, svc.SoftDeleteCategory(context.Background(), c.ID, primitive.NewObjectID()))

	unique, err := svc.IsSlugUnique(context.Background(), "Summer Wear")
	require.NoError(t, err)
	assert.True(t, unique)

	again := mustCreateCategory(t, svc, "Summer Wear", "")
	assert.Equal(t, "summer-wear", again.Slug)
	assert.NotEqual(t, c.ID, again.ID)
}

func TestCreateCategoryRejectsDeadParent(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	parent := mustCreateCategory(t, svc, "Clothing", "")
	require.NoError(t, svc.SoftDeleteCategory(context.Background(), parent.ID, primitive.NewObjectID()))

	_, err := svc.CreateCategory(context.Background(), models.CategoryRequest{
		Name:   "Shirts",
		Parent: parent.ID.Hex(),
	}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrNotFound))

	_, err = svc.CreateCategory(context.Background(), models.CategoryRequest{
		Name:   "Shirts",
		Parent: primitive.NewObjectID().Hex(),
	}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestUpdateCategoryRejectsSelfAndDescendantParent(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	root := mustCreateCategory(t, svc, "Clothing", "")
	child := mustCreateCategory(t, svc, "Shirts", root.ID.Hex())
	grandchild := mustCreateCategory(t, svc, "Linen", child.ID.Hex())

	self := root.ID.Hex()
	_, err := svc.UpdateCategory(context.Background(), root.ID, models.CategoryPatch{Parent: &self}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrValidation))

	descendant := grandchild.ID.Hex()
	_, err = svc.UpdateCategory(context.Background(), root.ID, models.CategoryPatch{Parent: &descendant}, "", primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestUpdateCategoryReparentAndDetach(t *testing.T) {
	svc, store := newTestCategoryService(t)

	a := mustCreateCategory(t, svc, "A", "")
	b := mustCreateCategory(t, svc, "B", "")
	child := mustCreateCategory(t, svc, "C", a.ID.Hex())

	to := b.ID.Hex()
	updated, err := svc.UpdateCategory(context.Background(), child.ID, models.CategoryPatch{Parent: &to}, "", primitive.NewObjectID())
	require.NoError(t, err)
	require.NotNil(t, updated.Parent)
	assert.Equal(t, b.ID, *updated.Parent)

	detach := ""
	updated, err = svc.UpdateCategory(context.Background(), child.ID, models.CategoryPatch{Parent: &detach}, "", primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, updated.Parent)
	assert.Nil(t, store.rows[child.ID].Parent)
}

func TestMaterializeTreeNesting(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	root := mustCreateCategory(t, svc, "Clothing", "")
	child := mustCreateCategory(t, svc, "Shirts", root.ID.Hex())
	mustCreateCategory(t, svc, "Linen", child.ID.Hex())
	other := mustCreateCategory(t, svc, "Shoes", "")

	forest, err := svc.MaterializeTree(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, forest, 2)

	byID := map[primitive.ObjectID]*models.Category{}
	for _, r := range forest {
		byID[r.ID] = r
	}
	require.Contains(t, byID, root.ID)
	require.Contains(t, byID, other.ID)

	clothing := byID[root.ID]
	require.Len(t, clothing.Children, 1)
	assert.Equal(t, child.ID, clothing.Children[0].ID)
	require.Len(t, clothing.Children[0].Children, 1)
	assert.Empty(t, byID[other.ID].Children)
}

func TestMaterializeTreeSubtreeRoot(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	root := mustCreateCategory(t, svc, "Clothing", "")
	child := mustCreateCategory(t, svc, "Shirts", root.ID.Hex())
	mustCreateCategory(t, svc, "Linen", child.ID.Hex())

	forest, err := svc.MaterializeTree(context.Background(), &root.ID)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, child.ID, forest[0].ID)
	require.Len(t, forest[0].Children, 1)
}

func TestMaterializeTreePrunesDeletedParentSubtree(t *testing.T) {
	svc, _ := newTestCategoryService(t)

	root := mustCreateCategory(t, svc, "Clothing", "")
	child := mustCreateCategory(t, svc, "Shirts", root.ID.Hex())
	mustCreateCategory(t, svc, "Linen", child.ID.Hex())

	require.NoError(t, svc.SoftDeleteCategory(context.Background(), child.ID, primitive.NewObjectID()))

	forest, err := svc.MaterializeTree(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	// Children of the deleted node fall out of the tree entirely.
	assert.Empty(t, forest[0].Children)
}

func TestBuildCategoryForestDetectsUnreachableCycle(t *testing.T) {
	a := &models.Category{ID: primitive.NewObjectID(), Name: "a"}
	b := &models.Category{ID: primitive.NewObjectID(), Name: "b"}
	a.Parent = &b.ID
	b.Parent = &a.ID
	root := &models.Category{ID: primitive.NewObjectID(), Name: "root"}

	_, err := BuildCategoryForest([]*models.Category{root, a, b}, nil)
	assert.True(t, errors.Is(err, util.ErrIntegrity))
}

func TestSoftDeleteCategoryUnknownID(t *testing.T) {
	svc, _ := newTestCategoryService(t)
	err := svc.SoftDeleteCategory(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, util.ErrNotFound))
}
