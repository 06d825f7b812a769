package services

import (
	"context"
	"strings"
	"time"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderService struct {
	orders          *mongo.Collection
	orderItems      *mongo.Collection
	deliveryOptions *mongo.Collection
	paymentOptions  *mongo.Collection
	runTxn          TxnRunner
}

func NewOrderService(client *mongo.Client, runTxn TxnRunner) OrderService {
	return &orderService{
		orders:          util.GetCollection(client, "Order"),
		orderItems:      util.GetCollection(client, "OrderItems"),
		deliveryOptions: util.GetCollection(client, "DeliveryOptions"),
		paymentOptions:  util.GetCollection(client, "PaymentOptions"),
		runTxn:          runTxn,
	}
}

func generateOrderNo() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateOrder snapshots the submitted items and the order header inside a
// single transaction so a partially placed order is never observable.
func (s *orderService) CreateOrder(ctx context.Context, req models.OrderRequest, callerID primitive.ObjectID) (*models.Order, error) {
	deliveryOption, err := primitive.ObjectIDFromHex(req.DeliveryOption)
	if err != nil {
		return nil, errors.Wrapf(util.ErrValidation, "invalid delivery option id %q", req.DeliveryOption)
	}
	paymentOption, err := primitive.ObjectIDFromHex(req.PaymentOption)
	if err != nil {
		return nil, errors.Wrapf(util.ErrValidation, "invalid payment option id %q", req.PaymentOption)
	}

	now := time.Now()
	itemDocs := make([]interface{}, 0, len(req.Items))
	itemIDs := make([]primitive.ObjectID, 0, len(req.Items))
	for _, item := range req.Items {
		item.ID = primitive.NewObjectID()
		itemDocs = append(itemDocs, item)
		itemIDs = append(itemIDs, item.ID)
	}

	order := &models.Order{
		ID:              primitive.NewObjectID(),
		Items:           itemIDs,
		SubTotal:        req.SubTotal,
		ShippingCost:    req.ShippingCost,
		Discount:        req.Discount,
		Total:           req.Total,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryOption:  deliveryOption,
		PaymentOption:   paymentOption,
		OrderNo:         generateOrderNo(),
		Status:          "pending",
		User:            callerID,
		PaymentStatus:   "unpaid",
		DeliveryStatus:  "pending",
		DeliveryDate:    req.DeliveryDate,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       callerID,
		UpdatedBy:       callerID,
	}

	_, err = s.runTxn(ctx, func(txCtx context.Context) (any, error) {
		if _, err := s.orderItems.InsertMany(txCtx, itemDocs); err != nil {
			return nil, err
		}
		if _, err := s.orders.InsertOne(txCtx, order); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, args util.PaginationArgs) ([]models.Order, int64, error) {
	filter := bson.M{"is_deleted": false}
	findOptions := options.Find().
		SetLimit(int64(args.NormalizedLimit())).
		SetSkip(int64(args.Skip())).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.orders.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	count, err := s.orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (s *orderService) CreateDeliveryOption(ctx context.Context, opt models.DeliveryOption) (*models.DeliveryOption, error) {
	opt.ID = primitive.NewObjectID()
	opt.IsActive = true
	if _, err := s.deliveryOptions.InsertOne(ctx, opt); err != nil {
		return nil, errors.Wrap(err, "create delivery option")
	}
	return &opt, nil
}

func (s *orderService) UpdateDeliveryOption(ctx context.Context, id primitive.ObjectID, opt models.DeliveryOption) (*models.DeliveryOption, error) {
	res, err := s.deliveryOptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"code":      opt.Code,
		"title":     opt.Title,
		"charge":    opt.Charge,
		"is_active": opt.IsActive,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "update delivery option")
	}
	if res.MatchedCount == 0 {
		return nil, errors.Wrapf(util.ErrNotFound, "delivery option %s", id.Hex())
	}
	opt.ID = id
	return &opt, nil
}

func (s *orderService) GetDeliveryOptions(ctx context.Context) ([]models.DeliveryOption, error) {
	cursor, err := s.deliveryOptions.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opts []models.DeliveryOption
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *orderService) DeleteDeliveryOption(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.deliveryOptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return errors.Wrap(err, "delete delivery option")
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(util.ErrNotFound, "delivery option %s", id.Hex())
	}
	return nil
}

func (s *orderService) CreatePaymentOption(ctx context.Context, opt models.PaymentOption) (*models.PaymentOption, error) {
	opt.ID = primitive.NewObjectID()
	opt.IsActive = true
	if _, err := s.paymentOptions.InsertOne(ctx, opt); err != nil {
		return nil, errors.Wrap(err, "create payment option")
	}
	return &opt, nil
}

func (s *orderService) UpdatePaymentOption(ctx context.Context, id primitive.ObjectID, opt models.PaymentOption) (*models.PaymentOption, error) {
	res, err := s.paymentOptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"code":      opt.Code,
		"title":     opt.Title,
		"img":       opt.Img,
		"is_active": opt.IsActive,
	}})
	if err != nil {
		return nil, errors.Wrap(err, "update payment option")
	}
	if res.MatchedCount == 0 {
		return nil, errors.Wrapf(util.ErrNotFound, "payment option %s", id.Hex())
	}
	opt.ID = id
	return &opt, nil
}

func (s *orderService) GetPaymentOptions(ctx context.Context) ([]models.PaymentOption, error) {
	cursor, err := s.paymentOptions.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opts []models.PaymentOption
	if err := cursor.All(ctx, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *orderService) DeletePaymentOption(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.paymentOptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return errors.Wrap(err, "delete payment option")
	}
	if res.MatchedCount == 0 {
		return errors.Wrapf(util.ErrNotFound, "payment option %s", id.Hex())
	}
	return nil
}
