package services

import (
	"time"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariantUpdate is a field patch for a variant the product already owns.
type VariantUpdate struct {
	ID  primitive.ObjectID
	Set bson.M
}

// VariantPlan is the minimal insert/update/delete set that transforms a
// product's stored variant rows into the submitted list. FinalIDs preserves
// payload order and becomes the product's variants field. The plan is
// applied inserts-first so a crash mid-reconciliation never leaves the
// product variant-less.
type VariantPlan struct {
	Inserts  []models.Variant
	Updates  []VariantUpdate
	Deletes  []primitive.ObjectID
	FinalIDs []primitive.ObjectID
}

// BuildVariantPlan diffs the previously stored variant id set against the
// incoming payload. Entries without an id become fresh rows with
// pre-generated ids; entries with an id must reference a variant the
// product already owns. Stored ids absent from the payload are deleted.
func BuildVariantPlan(prev []primitive.ObjectID, incoming []models.VariantPayload) (VariantPlan, error) {
	plan := VariantPlan{FinalIDs: make([]primitive.ObjectID, 0, len(incoming))}

	owned := make(map[primitive.ObjectID]bool, len(prev))
	for _, id := range prev {
		owned[id] = true
	}

	kept := make(map[primitive.ObjectID]bool, len(incoming))
	for _, v := range incoming {
		if v.ID == "" {
			row := newVariantRow(v)
			plan.Inserts = append(plan.Inserts, row)
			plan.FinalIDs = append(plan.FinalIDs, row.ID)
			continue
		}

		id, err := primitive.ObjectIDFromHex(v.ID)
		if err != nil {
			return VariantPlan{}, errors.Wrapf(util.ErrValidation, "invalid variant id %q", v.ID)
		}
		if !owned[id] {
			return VariantPlan{}, errors.Wrapf(util.ErrValidation, "variant %s does not belong to this product", v.ID)
		}
		if kept[id] {
			return VariantPlan{}, errors.Wrapf(util.ErrValidation, "variant %s submitted twice", v.ID)
		}
		kept[id] = true

		plan.Updates = append(plan.Updates, VariantUpdate{ID: id, Set: variantPatch(v)})
		plan.FinalIDs = append(plan.FinalIDs, id)
	}

	for _, id := range prev {
		if !kept[id] {
			plan.Deletes = append(plan.Deletes, id)
		}
	}

	return plan, nil
}

func newVariantRow(v models.VariantPayload) models.Variant {
	active := true
	if v.IsActive != nil {
		active = *v.IsActive
	}
	return models.Variant{
		ID:            primitive.NewObjectID(),
		Options:       v.Options,
		SKU:           v.SKU,
		Stock:         v.Stock,
		Price:         v.Price,
		DiscountPrice: v.DiscountPrice,
		CostPrice:     v.CostPrice,
		Image:         v.Image,
		IsActive:      active,
	}
}

func variantPatch(v models.VariantPayload) bson.M {
	set := bson.M{
		"options": v.Options,
		"sku":     v.SKU,
		"stock":   v.Stock,
		"price":   v.Price,
	}
	if v.DiscountPrice != nil {
		set["discount_price"] = *v.DiscountPrice
	}
	if v.CostPrice != nil {
		set["cost_price"] = *v.CostPrice
	}
	if v.Image != "" {
		set["image"] = v.Image
	}
	if v.IsActive != nil {
		set["is_active"] = *v.IsActive
	}
	return set
}

// productRowUpdate builds the $set document for a product write, honoring
// the variant-mode invariant: scalar price/sku/stock exist only on
// non-variant products.
func productRowUpdate(p models.ProductPayload, finalIDs []primitive.ObjectID, images []string, updatedBy primitive.ObjectID, category primitive.ObjectID, collections []primitive.ObjectID) bson.M {
	set := bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"has_variants": p.HasVariants,
		"discount":     p.Discount,
		"variants":     finalIDs,
		"track_stock":  p.TrackStock,
		"category":     category,
		"collections":  collections,
		"tags":         p.Tags,
		"images":       images,
		"updated_by":   updatedBy,
		"updated_at":   time.Now(),
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	update := bson.M{"$set": set}
	if p.HasVariants {
		update["$unset"] = bson.M{"price": "", "sku": "", "stock": ""}
	} else {
		set["price"] = *p.Price
		set["sku"] = *p.SKU
		if p.Stock != nil {
			set["stock"] = *p.Stock
		}
	}
	return update
}
