package controllers

import (
	"net/http"

	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService services.OrderService
}

func InitOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}

	var req models.OrderRequest
	if !BindJSONAndValidate(c, &req) {
		return
	}

	order, err := oc.orderService.CreateOrder(ctx, req, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Order placed", order)
}

func (oc *OrderController) GetOrders(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	args := PaginationFromQuery(c)
	orders, count, err := oc.orderService.GetOrders(ctx, args)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	meta := util.NewListMeta(args.Page, args.Limit, len(orders), count)
	util.HandleSuccessMeta(c, http.StatusOK, "Orders retrieved", orders, meta)
}

func (oc *OrderController) CreateDeliveryOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var opt models.DeliveryOption
	if !BindJSONAndValidate(c, &opt) {
		return
	}

	created, err := oc.orderService.CreateDeliveryOption(ctx, opt)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Delivery option created", created)
}

func (oc *OrderController) UpdateDeliveryOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	optionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var opt models.DeliveryOption
	if !BindJSONAndValidate(c, &opt) {
		return
	}

	updated, err := oc.orderService.UpdateDeliveryOption(ctx, optionID, opt)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Delivery option updated", updated)
}

func (oc *OrderController) GetDeliveryOptions(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	opts, err := oc.orderService.GetDeliveryOptions(ctx)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Delivery options retrieved", opts)
}

func (oc *OrderController) DeleteDeliveryOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	optionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := oc.orderService.DeleteDeliveryOption(ctx, optionID); err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Delivery option deleted", nil)
}

func (oc *OrderController) CreatePaymentOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var opt models.PaymentOption
	if !BindJSONAndValidate(c, &opt) {
		return
	}

	created, err := oc.orderService.CreatePaymentOption(ctx, opt)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Payment option created", created)
}

func (oc *OrderController) UpdatePaymentOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	optionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}
	var opt models.PaymentOption
	if !BindJSONAndValidate(c, &opt) {
		return
	}

	updated, err := oc.orderService.UpdatePaymentOption(ctx, optionID, opt)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Payment option updated", updated)
}

func (oc *OrderController) GetPaymentOptions(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	opts, err := oc.orderService.GetPaymentOptions(ctx)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Payment options retrieved", opts)
}

func (oc *OrderController) DeletePaymentOption(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	optionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := oc.orderService.DeletePaymentOption(ctx, optionID); err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Payment option deleted", nil)
}
