package services

import (
	"context"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeProductStore keeps products and variants in maps and can be told to
// fail a specific operation so rollback paths are reachable in tests.
type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
	variants map[primitive.ObjectID]models.Variant

	failInsertProduct bool
	failUpdateProduct bool
	failInsertVariant bool
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products: map[primitive.ObjectID]models.Product{},
		variants: map[primitive.ObjectID]models.Variant{},
	}
}

type productSnapshot struct {
	products map[primitive.ObjectID]models.Product
	variants map[primitive.ObjectID]models.Variant
}

func (f *fakeProductStore) snapshot() productSnapshot {
	snap := productSnapshot{
		products: make(map[primitive.ObjectID]models.Product, len(f.products)),
		variants: make(map[primitive.ObjectID]models.Variant, len(f.variants)),
	}
	for k, v := range f.products {
		snap.products[k] = v
	}
	for k, v := range f.variants {
		snap.variants[k] = v
	}
	return snap
}

func (f *fakeProductStore) restore(snap productSnapshot) {
	f.products = snap.products
	f.variants = snap.variants
}

// rollbackTxnRunner mimics an aborted mongo transaction: the callback's
// writes vanish when it returns an error.
func rollbackTxnRunner(f *fakeProductStore) TxnRunner {
	return func(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
		snap := f.snapshot()
		v, err := fn(ctx)
		if err != nil {
			f.restore(snap)
			return nil, err
		}
		return v, nil
	}
}

func (f *fakeProductStore) InsertProduct(_ context.Context, p *models.Product) error {
	if f.failInsertProduct {
		return errors.New("injected insert failure")
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	if f.failUpdateProduct {
		return 0, errors.New("injected update failure")
	}
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	applyProductUpdate(&p, update)
	f.products[id] = p
	return 1, nil
}

func (f *fakeProductStore) FindProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (f *fakeProductStore) RemoveProduct(_ context.Context, id primitive.ObjectID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) ListProducts(_ context.Context, filter bson.M, args util.PaginationArgs) ([]models.Product, int64, error) {
	var rows []models.Product
	for _, p := range f.products {
		if deleted, ok := filter["is_deleted"].(bool); ok && p.IsDeleted != deleted {
			continue
		}
		rows = append(rows, p)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeProductStore) InsertVariants(_ context.Context, vs []models.Variant) error {
	if f.failInsertVariant {
		return errors.New("injected variant insert failure")
	}
	for _, v := range vs {
		f.variants[v.ID] = v
	}
	return nil
}

func (f *fakeProductStore) UpdateVariant(_ context.Context, id primitive.ObjectID, set bson.M) error {
	v, ok := f.variants[id]
	if !ok {
		return nil
	}
	if sku, ok := set["sku"].(string); ok {
		v.SKU = sku
	}
	if stock, ok := set["stock"].(int); ok {
		v.Stock = stock
	}
	if price, ok := set["price"].(float64); ok {
		v.Price = price
	}
	f.variants[id] = v
	return nil
}

func (f *fakeProductStore) RemoveVariants(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		delete(f.variants, id)
	}
	return nil
}

func (f *fakeProductStore) FindVariants(_ context.Context, ids []primitive.ObjectID) ([]models.Variant, error) {
	var rows []models.Variant
	for _, id := range ids {
		if v, ok := f.variants[id]; ok {
			rows = append(rows, v)
		}
	}
	return rows, nil
}

// fakeCategoryStore backs category tests without mongo.
type fakeCategoryStore struct {
	rows map[primitive.ObjectID]models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{rows: map[primitive.ObjectID]models.Category{}}
}

func (f *fakeCategoryStore) Insert(_ context.Context, c *models.Category) error {
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategoryStore) Update(_ context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	c, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	applyCategoryUpdate(&c, update)
	f.rows[id] = c
	return 1, nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (f *fakeCategoryStore) FindLiveBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.rows {
		if c.Slug == slug && !c.IsDeleted {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryStore) ListLive(_ context.Context) ([]*models.Category, error) {
	var live []*models.Category
	for _, c := range f.rows {
		if !c.IsDeleted {
			cp := c
			live = append(live, &cp)
		}
	}
	return live, nil
}

// fakeCollectionStore mirrors fakeCategoryStore for collections.
type fakeCollectionStore struct {
	rows map[primitive.ObjectID]models.Collection
}

func newFakeCollectionStore() *fakeCollectionStore {
	return &fakeCollectionStore{rows: map[primitive.ObjectID]models.Collection{}}
}

func (f *fakeCollectionStore) Insert(_ context.Context, c *models.Collection) error {
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCollectionStore) Update(_ context.Context, id primitive.ObjectID, update bson.M) (int64, error) {
	c, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["name"].(string); ok {
			c.Name = v
		}
		if v, ok := set["slug"].(string); ok {
			c.Slug = v
		}
		if v, ok := set["image"].(string); ok {
			c.Image = v
		}
		if v, ok := set["is_active"].(bool); ok {
			c.IsActive = v
		}
		if v, ok := set["is_deleted"].(bool); ok {
			c.IsDeleted = v
		}
	}
	f.rows[id] = c
	return 1, nil
}

func (f *fakeCollectionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Collection, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := c
	return &cp, nil
}

func (f *fakeCollectionStore) FindLiveBySlug(_ context.Context, slug string) (*models.Collection, error) {
	for _, c := range f.rows {
		if c.Slug == slug && !c.IsDeleted {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCollectionStore) List(_ context.Context, filter bson.M, args util.PaginationArgs) ([]models.Collection, int64, error) {
	var rows []models.Collection
	for _, c := range f.rows {
		if deleted, ok := filter["is_deleted"].(bool); ok && c.IsDeleted != deleted {
			continue
		}
		rows = append(rows, c)
	}
	return rows, int64(len(rows)), nil
}

func applyProductUpdate(p *models.Product, update bson.M) {
	if set, ok := update["$set"].(bson.M); ok {
		if v, ok := set["name"].(string); ok {
			p.Name = v
		}
		if v, ok := set["has_variants"].(bool); ok {
			p.HasVariants = v
		}
		if v, ok := set["variants"].([]primitive.ObjectID); ok {
			p.Variants = v
		}
		if v, ok := set["images"].([]string); ok {
			p.Images = v
		}
		if v, ok := set["price"].(float64); ok {
			p.Price = &v
		}
		if v, ok := set["sku"].(string); ok {
			p.SKU = &v
		}
		if v, ok := set["stock"].(int); ok {
			p.Stock = &v
		}
		if v, ok := set["is_deleted"].(bool); ok {
			p.IsDeleted = v
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		if _, ok := unset["price"]; ok {
			p.Price = nil
		}
		if _, ok := unset["sku"]; ok {
			p.SKU = nil
		}
		if _, ok := unset["stock"]; ok {
			p.Stock = nil
		}
	}
}

func applyCategoryUpdate(c *models.Category, update bson.M) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		return
	}
	if v, ok := set["name"].(string); ok {
		c.Name = v
	}
	if v, ok := set["slug"].(string); ok {
		c.Slug = v
	}
	if v, ok := set["image"].(string); ok {
		c.Image = v
	}
	if v, ok := set["is_active"].(bool); ok {
		c.IsActive = v
	}
	if v, ok := set["is_deleted"].(bool); ok {
		c.IsDeleted = v
	}
	if parent, present := set["parent"]; present {
		if parent == nil {
			c.Parent = nil
		} else if id, ok := parent.(primitive.ObjectID); ok {
			c.Parent = &id
		}
	}
}
