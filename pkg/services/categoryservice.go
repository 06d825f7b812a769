package services

import (
	"context"
	"encoding/json"
	"time"

	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	slug2 "github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	categoryTreeCacheKey = "catalog:category_tree"
	categoryTreeCacheTTL = 10 * time.Minute
)

type categoryService struct {
	store CategoryStore
	media media.Store
	cache *redis.Client
}

// NewCategoryService builds the category tree service. cache may be nil;
// the materialized tree is then recomputed on every read.
func NewCategoryService(store CategoryStore, mediaStore media.Store, cache *redis.Client) CategoryService {
	return &categoryService{store: store, media: mediaStore, cache: cache}
}

func categoryMediaDir(id primitive.ObjectID) string {
	return "categories/" + id.Hex()
}

func (s *categoryService) CreateCategory(ctx context.Context, req models.CategoryRequest, imageTemp string, callerID primitive.ObjectID) (*models.Category, error) {
	cleanup := func() {
		if imageTemp != "" {
			if err := s.media.Delete(imageTemp); err != nil {
				util.LogError("discard category upload", err)
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
		return nil, errors.Wrap(err, "check category slug")
	}
	if existing != nil {
		cleanup()
		return nil, errors.Wrapf(util.ErrConflict, "category slug %q already in use", slugVal)
	}

	var parent *primitive.ObjectID
	if req.Parent != "" {
		parentID, err := primitive.ObjectIDFromHex(req.Parent)
		if err != nil {
			cleanup()
			return nil, errors.Wrapf(util.ErrValidation, "invalid parent id %q", req.Parent)
		}
		parentCat, err := s.store.FindByID(ctx, parentID)
		if err != nil {
			cleanup()
			return nil, errors.Wrap(err, "resolve parent category")
		}
		if parentCat == nil || parentCat.IsDeleted {
			cleanup()
			return nil, errors.Wrapf(util.ErrNotFound, "parent category %s", req.Parent)
		}
		parent = &parentID
	}

	now := time.Now()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	category := &models.Category{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Parent:      parent,
		Slug:        slugVal,
		Description: req.Description,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   callerID,
		UpdatedBy:   callerID,
	}

	// The media directory is keyed by the id generated above, so the file
	// can take its final place before the row exists.
	if imageTemp != "" {
		finalPath, err := s.media.Move(imageTemp, categoryMediaDir(category.ID))
		if err != nil {
			cleanup()
			return nil, errors.Wrap(err, "relocate category image")
		}
		category.Image = finalPath
	}

	if err := s.store.Insert(ctx, category); err != nil {
		if category.Image != "" {
			if delErr := s.media.Delete(category.Image); delErr != nil {
				util.LogError("rollback category image", delErr)
			}
		}
		return nil, errors.Wrap(err, "insert category")
	}

	s.invalidateTree(ctx)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, patch models.CategoryPatch, imageTemp string, callerID primitive.ObjectID) (*models.Category, error) {
	cleanup := func() {
		if imageTemp != "" {
			if err := s.media.Delete(imageTemp); err != nil {
				util.LogError("discard category upload", err)
			}
		}
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		cleanup()
		return nil, errors.Wrap(err, "load category")
	}
	if current == nil || current.IsDeleted {
		cleanup()
		return nil, errors.Wrapf(util.ErrNotFound, "category %s", id.Hex())
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
			return nil, errors.Wrap(err, "check category slug")
		}
		if other != nil && other.ID != id {
			cleanup()
			return nil, errors.Wrapf(util.ErrConflict, "category slug %q already in use", slugVal)
		}
		set["slug"] = slugVal
	}

	if patch.Parent != nil {
		if *patch.Parent == "" {
			set["parent"] = nil
		} else {
			parentID, err := primitive.ObjectIDFromHex(*patch.Parent)
			if err != nil {
				cleanup()
				return nil, errors.Wrapf(util.ErrValidation, "invalid parent id %q", *patch.Parent)
			}
			if err := s.guardParent(ctx, id, parentID); err != nil {
				cleanup()
				return nil, err
			}
			set["parent"] = parentID
		}
	}

	// Image replacement never deletes the old file before the new record
	// references the new one.
	oldImage := ""
	if imageTemp != "" {
		finalPath, err := s.media.Move(imageTemp, categoryMediaDir(id))
		if err != nil {
			return nil, errors.Wrap(err, "relocate category image")
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
				util.LogError("rollback category image", delErr)
			}
		}
		return nil, errors.Wrap(err, "update category")
	}
	if matched == 0 {
		return nil, errors.Wrapf(util.ErrNotFound, "category %s", id.Hex())
	}

	if oldImage != "" {
		if delErr := s.media.Delete(oldImage); delErr != nil {
			util.LogError("cleanup replaced category image", delErr)
		}
	}

	s.invalidateTree(ctx)
	return s.store.FindByID(ctx, id)
}

// guardParent rejects a parent that does not resolve to a live category or
// that sits in the subtree rooted at id. The walk is bounded by a visited
// set so corrupted parent chains surface as integrity errors instead of
// hanging the request.
func (s *categoryService) guardParent(ctx context.Context, id, parentID primitive.ObjectID) error {
	if parentID == id {
		return errors.Wrap(util.ErrValidation, "category cannot be its own parent")
	}

	visited := map[primitive.ObjectID]bool{}
	cursor := parentID
	for {
		if visited[cursor] {
			return errors.Wrap(util.ErrIntegrity, "cycle in category parent chain")
		}
		visited[cursor] = true

		node, err := s.store.FindByID(ctx, cursor)
		if err != nil {
			return errors.Wrap(err, "walk category ancestors")
		}
		if node == nil || node.IsDeleted {
			if cursor == parentID {
				return errors.Wrapf(util.ErrNotFound, "parent category %s", parentID.Hex())
			}
			return nil
		}
		if node.ID == id {
			return errors.Wrap(util.ErrValidation, "parent cannot be a descendant of the category")
		}
		if node.Parent == nil {
			return nil
		}
		cursor = *node.Parent
	}
}

func (s *categoryService) SoftDeleteCategory(ctx context.Context, id, callerID primitive.ObjectID) error {
	matched, err := s.store.Update(ctx, id, bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_by": callerID,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if matched == 0 {
		return errors.Wrapf(util.ErrNotFound, "category %s", id.Hex())
	}

	// Children keep their parent pointer; re-parenting orphans is the
	// caller's call. They drop out of tree materialization only.
	s.invalidateTree(ctx)
	return nil
}

func (s *categoryService) IsSlugUnique(ctx context.Context, slugVal string) (bool, error) {
	existing, err := s.store.FindLiveBySlug(ctx, slug2.Make(slugVal))
	if err != nil {
		return false, errors.Wrap(err, "check category slug")
	}
	return existing == nil, nil
}

// ResolveSlug satisfies the query engine's SlugResolver contract.
func (s *categoryService) ResolveSlug(ctx context.Context, slugVal string) (primitive.ObjectID, bool) {
	existing, err := s.store.FindLiveBySlug(ctx, slugVal)
	if err != nil {
		util.LogError("resolve category slug "+slugVal, err)
		return primitive.NilObjectID, false
	}
	if existing == nil {
		return primitive.NilObjectID, false
	}
	return existing.ID, true
}

func (s *categoryService) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load category")
	}
	if c == nil || c.IsDeleted {
		return nil, errors.Wrapf(util.ErrNotFound, "category %s", id.Hex())
	}
	return c, nil
}

// MaterializeTree returns the forest of live categories under rootID (all
// roots when rootID is nil), each node populated with its live children.
// The full forest is served from the redis cache when available.
func (s *categoryService) MaterializeTree(ctx context.Context, rootID *primitive.ObjectID) ([]*models.Category, error) {
	if rootID == nil && s.cache != nil {
		if raw, err := s.cache.Get(ctx, categoryTreeCacheKey).Result(); err == nil {
			var forest []*models.Category
			if err := json.Unmarshal([]byte(raw), &forest); err == nil {
				return forest, nil
			}
		}
	}

	categories, err := s.store.ListLive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	forest, err := BuildCategoryForest(categories, rootID)
	if err != nil {
		return nil, err
	}

	if rootID == nil && s.cache != nil {
		if raw, err := json.Marshal(forest); err == nil {
			if err := s.cache.Set(ctx, categoryTreeCacheKey, raw, categoryTreeCacheTTL).Err(); err != nil {
				util.LogError("cache category tree", err)
			}
		}
	}

	return forest, nil
}

func (s *categoryService) invalidateTree(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, categoryTreeCacheKey).Err(); err != nil {
		util.LogError("invalidate category tree cache", err)
	}
}

// BuildCategoryForest assembles the materialized tree from the flat live
// category list. Children of a deleted (hence absent) parent are pruned.
// Recursion is bounded by a visited set and a corrupted parent chain that
// loops yields an integrity error instead of running forever.
func BuildCategoryForest(categories []*models.Category, rootID *primitive.ObjectID) ([]*models.Category, error) {
	index := make(map[primitive.ObjectID]*models.Category, len(categories))
	byParent := make(map[primitive.ObjectID][]*models.Category)
	for _, c := range categories {
		c.Children = nil
		index[c.ID] = c
	}
	for _, c := range categories {
		if c.Parent != nil {
			byParent[*c.Parent] = append(byParent[*c.Parent], c)
		}
	}

	roots := make([]*models.Category, 0)
	for _, c := range categories {
		if rootID == nil {
			if c.Parent == nil {
				roots = append(roots, c)
			}
		} else if c.Parent != nil && *c.Parent == *rootID {
			roots = append(roots, c)
		}
	}

	visited := make(map[primitive.ObjectID]bool, len(categories))
	var attach func(n *models.Category) error
	attach = func(n *models.Category) error {
		if visited[n.ID] {
			return errors.Wrapf(util.ErrIntegrity, "category %s reached twice in tree", n.ID.Hex())
		}
		visited[n.ID] = true
		n.Children = byParent[n.ID]
		for _, child := range n.Children {
			if err := attach(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := attach(r); err != nil {
			return nil, err
		}
	}

	// Single-parent pointers can only form loops that are unreachable from
	// any root; scan the leftovers so corruption is reported, not hidden.
	if rootID == nil {
		for _, c := range categories {
			if !visited[c.ID] && parentChainLoops(index, c) {
				return nil, errors.Wrapf(util.ErrIntegrity, "cycle in category parent chain at %s", c.ID.Hex())
			}
		}
	}

	return roots, nil
}

func parentChainLoops(index map[primitive.ObjectID]*models.Category, start *models.Category) bool {
	seen := map[primitive.ObjectID]bool{}
	node := start
	for {
		if seen[node.ID] {
			return true
		}
		seen[node.ID] = true
		if node.Parent == nil {
			return false
		}
		parent, ok := index[*node.Parent]
		if !ok {
			// Deleted or missing parent: legitimately pruned.
			return false
		}
		node = parent
	}
}
