package services

import (
	"context"
	"time"

	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductWriteRequest carries a validated-at-the-boundary payload plus the
// uploads the controller already wrote to the media store's temp area.
type ProductWriteRequest struct {
	Payload    models.ProductPayload
	TempImages []string
	CallerID   primitive.ObjectID
}

type productService struct {
	store  ProductStore
	media  media.Store
	query  *CatalogQueryEngine
	runTxn TxnRunner
}

func NewProductService(store ProductStore, mediaStore media.Store, query *CatalogQueryEngine, runTxn TxnRunner) ProductService {
	return &productService{
		store:  store,
		media:  mediaStore,
		query:  query,
		runTxn: runTxn,
	}
}

func productMediaDir(id primitive.ObjectID) string {
	return "products/" + id.Hex()
}

// CreateProduct inserts the product row and its variants in one
// transaction, then relocates the uploads into the directory derived from
// the generated id. An incompletely relocated product is rolled back, never
// left half-populated.
func (s *productService) CreateProduct(ctx context.Context, req ProductWriteRequest) (*models.Product, error) {
	if err := validateProductPayload(&req.Payload); err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}
	category, collections, err := parseCatalogRefs(req.Payload)
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}
	plan, err := BuildVariantPlan(nil, incomingVariants(req.Payload))
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}

	now := time.Now()
	active := true
	if req.Payload.IsActive != nil {
		active = *req.Payload.IsActive
	}
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        req.Payload.Name,
		Description: req.Payload.Description,
		HasVariants: req.Payload.HasVariants,
		Discount:    req.Payload.Discount,
		Variants:    plan.FinalIDs,
		TrackStock:  req.Payload.TrackStock,
		Category:    category,
		Collections: collections,
		Tags:        req.Payload.Tags,
		Images:      []string{},
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   req.CallerID,
		UpdatedBy:   req.CallerID,
	}
	if !req.Payload.HasVariants {
		product.Price = req.Payload.Price
		product.SKU = req.Payload.SKU
		product.Stock = req.Payload.Stock
	}

	_, err = s.runTxn(ctx, func(txCtx context.Context) (any, error) {
		if err := s.store.InsertVariants(txCtx, plan.Inserts); err != nil {
			return nil, err
		}
		if err := s.store.InsertProduct(txCtx, product); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, errors.Wrap(err, "create product")
	}

	// Second phase: the permanent media directory is keyed by the id the
	// insert just produced.
	finals, err := s.moveIntoDir(req.TempImages, productMediaDir(product.ID))
	if err != nil {
		s.rollbackCreated(ctx, product.ID, plan.FinalIDs)
		return nil, errors.Wrap(err, "relocate product media")
	}
	if len(finals) > 0 {
		if _, err := s.store.UpdateProduct(ctx, product.ID, bson.M{"$set": bson.M{"images": finals}}); err != nil {
			s.discardFiles(finals)
			s.rollbackCreated(ctx, product.ID, plan.FinalIDs)
			return nil, errors.Wrap(err, "record product media")
		}
		product.Images = finals
	}

	return product, nil
}

// UpdateProduct reconciles the variant set and writes the product row in
// one transaction. New uploads are moved into the permanent directory
// before the transaction and deleted again if it aborts; images the caller
// dropped are removed only after the commit.
func (s *productService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req ProductWriteRequest) (*models.Product, error) {
	current, err := s.store.FindProduct(ctx, id)
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, errors.Wrap(err, "load product")
	}
	if current == nil || current.IsDeleted {
		s.discardFiles(req.TempImages)
		return nil, errors.Wrapf(util.ErrNotFound, "product %s", id.Hex())
	}

	if err := validateProductPayload(&req.Payload); err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}
	category, collections, err := parseCatalogRefs(req.Payload)
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}
	plan, err := BuildVariantPlan(current.Variants, incomingVariants(req.Payload))
	if err != nil {
		s.discardFiles(req.TempImages)
		return nil, err
	}

	retained := retainImages(current.Images, req.Payload.Images)
	dropped := subtractImages(current.Images, retained)

	moved, err := s.moveIntoDir(req.TempImages, productMediaDir(id))
	if err != nil {
		return nil, errors.Wrap(err, "relocate product media")
	}
	images := append(retained, moved...)

	update := productRowUpdate(req.Payload, plan.FinalIDs, images, req.CallerID, category, collections)
	_, err = s.runTxn(ctx, func(txCtx context.Context) (any, error) {
		if err := s.store.InsertVariants(txCtx, plan.Inserts); err != nil {
			return nil, err
		}
		for _, u := range plan.Updates {
			if err := s.store.UpdateVariant(txCtx, u.ID, u.Set); err != nil {
				return nil, err
			}
		}
		if err := s.store.RemoveVariants(txCtx, plan.Deletes); err != nil {
			return nil, err
		}
		matched, err := s.store.UpdateProduct(txCtx, id, update)
		if err != nil {
			return nil, err
		}
		if matched == 0 {
			return nil, errors.Wrapf(util.ErrNotFound, "product %s", id.Hex())
		}
		return nil, nil
	})
	if err != nil {
		s.discardFiles(moved)
		return nil, errors.Wrap(err, "update product")
	}

	// Dropped files go only after the commit that removed their
	// references; a failed delete is logged, not escalated.
	for _, p := range dropped {
		if delErr := s.media.Delete(p); delErr != nil {
			util.LogError("cleanup dropped image "+p, delErr)
		}
	}

	return s.GetProductRow(ctx, id)
}

func (s *productService) SoftDeleteProduct(ctx context.Context, id, callerID primitive.ObjectID) error {
	matched, err := s.store.UpdateProduct(ctx, id, bson.M{"$set": bson.M{
		"is_deleted": true,
		"updated_by": callerID,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if matched == 0 {
		return errors.Wrapf(util.ErrNotFound, "product %s", id.Hex())
	}
	return nil
}

// GetProductRow fetches a live product without resolving variants.
func (s *productService) GetProductRow(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, err := s.store.FindProduct(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load product")
	}
	if p == nil || p.IsDeleted {
		return nil, errors.Wrapf(util.ErrNotFound, "product %s", id.Hex())
	}
	return p, nil
}

func (s *productService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.ProductDetail, error) {
	p, err := s.GetProductRow(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.FindVariants(ctx, p.Variants)
	if err != nil {
		return nil, errors.Wrap(err, "load variants")
	}

	return &models.ProductDetail{Product: *p, VariantRows: rows}, nil
}

func (s *productService) SearchProducts(ctx context.Context, req models.SearchRequest) ([]models.Product, int64, error) {
	filter := s.query.BuildProductFilter(ctx, req.Filter)
	args := util.PaginationArgs{Page: req.Meta.Page, Limit: req.Meta.Limit}
	return s.store.ListProducts(ctx, filter, args)
}

func (s *productService) ListProducts(ctx context.Context, args util.PaginationArgs) ([]models.Product, int64, error) {
	return s.store.ListProducts(ctx, bson.M{"is_deleted": false}, args)
}

// moveIntoDir relocates temp uploads one by one. On failure everything is
// cleaned up - already-moved files and the unmoved remainder alike - so no
// upload ever leaks into permanent storage.
func (s *productService) moveIntoDir(tempPaths []string, dir string) ([]string, error) {
	var moved []string
	for i, tp := range tempPaths {
		fp, err := s.media.Move(tp, dir)
		if err != nil {
			s.discardFiles(moved)
			s.discardFiles(tempPaths[i:])
			return nil, err
		}
		moved = append(moved, fp)
	}
	return moved, nil
}

func (s *productService) discardFiles(paths []string) {
	for _, p := range paths {
		if err := s.media.Delete(p); err != nil {
			util.LogError("discard upload "+p, err)
		}
	}
}

func (s *productService) rollbackCreated(ctx context.Context, id primitive.ObjectID, variantIDs []primitive.ObjectID) {
	if err := s.store.RemoveProduct(ctx, id); err != nil {
		util.LogError("rollback created product "+id.Hex(), err)
	}
	if err := s.store.RemoveVariants(ctx, variantIDs); err != nil {
		util.LogError("rollback created variants", err)
	}
}

func validateProductPayload(p *models.ProductPayload) error {
	if p.Name == "" {
		return errors.Wrap(util.ErrValidation, "name is required")
	}
	if p.HasVariants {
		if len(p.Variants) == 0 {
			return errors.Wrap(util.ErrValidation, "variants are required when hasVariants is true")
		}
		// Scalar pricing lives on the variants in variant mode.
		p.Price = nil
		p.SKU = nil
		p.Stock = nil
		return nil
	}
	if len(p.Variants) > 0 {
		return errors.Wrap(util.ErrValidation, "variants must be empty when hasVariants is false")
	}
	if p.Price == nil {
		return errors.Wrap(util.ErrValidation, "price is required when hasVariants is false")
	}
	if p.SKU == nil || *p.SKU == "" {
		return errors.Wrap(util.ErrValidation, "sku is required when hasVariants is false")
	}
	return nil
}

func incomingVariants(p models.ProductPayload) []models.VariantPayload {
	if !p.HasVariants {
		// Switching to non-variant mode removes the full existing set.
		return nil
	}
	return p.Variants
}

func parseCatalogRefs(p models.ProductPayload) (primitive.ObjectID, []primitive.ObjectID, error) {
	var category primitive.ObjectID
	if p.Category != "" {
		id, err := primitive.ObjectIDFromHex(p.Category)
		if err != nil {
			return primitive.NilObjectID, nil, errors.Wrapf(util.ErrValidation, "invalid category id %q", p.Category)
		}
		category = id
	}

	collections := make([]primitive.ObjectID, 0, len(p.Collections))
	for _, c := range p.Collections {
		id, err := primitive.ObjectIDFromHex(c)
		if err != nil {
			return primitive.NilObjectID, nil, errors.Wrapf(util.ErrValidation, "invalid collection id %q", c)
		}
		collections = append(collections, id)
	}

	return category, collections, nil
}

// retainImages keeps the requested paths that the product actually owns,
// in the order the caller submitted them.
func retainImages(current, requested []string) []string {
	owned := make(map[string]bool, len(current))
	for _, p := range current {
		owned[p] = true
	}
	retained := make([]string, 0, len(requested))
	for _, p := range requested {
		if owned[p] {
			retained = append(retained, p)
		}
	}
	return retained
}

func subtractImages(current, retained []string) []string {
	keep := make(map[string]bool, len(retained))
	for _, p := range retained {
		keep[p] = true
	}
	var dropped []string
	for _, p := range current {
		if !keep[p] {
			dropped = append(dropped, p)
		}
	}
	return dropped
}
