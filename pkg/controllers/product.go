package controllers

import (
	"net/http"

	"vendura-api-io/api/internal/common"
	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService services.ProductService
	mediaStore     media.Store
}

func InitProductController(productService services.ProductService, mediaStore media.Store) *ProductController {
	return &ProductController{
		productService: productService,
		mediaStore:     mediaStore,
	}
}

// CreateProduct accepts a multipart request: the JSON payload under `data`
// and the uploads under `images`.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}

	var payload models.ProductPayload
	if !BindMultipartData(c, &payload) {
		return
	}

	temps, ok := SaveUploads(c, pc.mediaStore, "images", common.MAX_PRODUCT_IMAGES)
	if !ok {
		return
	}

	product, err := pc.productService.CreateProduct(ctx, services.ProductWriteRequest{
		Payload:    payload,
		TempImages: temps,
		CallerID:   callerID,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Product created", product)
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	productID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var payload models.ProductPayload
	if !BindMultipartData(c, &payload) {
		return
	}

	temps, ok := SaveUploads(c, pc.mediaStore, "images", common.MAX_PRODUCT_IMAGES)
	if !ok {
		return
	}

	product, err := pc.productService.UpdateProduct(ctx, productID, services.ProductWriteRequest{
		Payload:    payload,
		TempImages: temps,
		CallerID:   callerID,
	})
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Product updated", product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	productID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := pc.productService.SoftDeleteProduct(ctx, productID, callerID); err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Product deleted", nil)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	productID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := pc.productService.GetProduct(ctx, productID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Product retrieved", detail)
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	args := PaginationFromQuery(c)
	products, count, err := pc.productService.ListProducts(ctx, args)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	meta := util.NewListMeta(args.Page, args.Limit, len(products), count)
	util.HandleSuccessMeta(c, http.StatusOK, "Products retrieved", products, meta)
}

// SearchProducts runs the structured catalog search. Slug terms that do not
// resolve are dropped by the query engine rather than failing the request.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var req models.SearchRequest
	if !BindJSONAndValidate(c, &req) {
		return
	}

	products, count, err := pc.productService.SearchProducts(ctx, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	meta := util.NewListMeta(req.Meta.Page, req.Meta.Limit, len(products), count)
	util.HandleSuccessMeta(c, http.StatusOK, "Products retrieved", products, meta)
}
