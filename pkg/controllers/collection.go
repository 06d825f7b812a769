package controllers

import (
	"net/http"

	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type CollectionController struct {
	collectionService services.CollectionService
	mediaStore        media.Store
}

func InitCollectionController(collectionService services.CollectionService, mediaStore media.Store) *CollectionController {
	return &CollectionController{
		collectionService: collectionService,
		mediaStore:        mediaStore,
	}
}

func (cc *CollectionController) CreateCollection(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}

	var req models.CollectionRequest
	if !BindMultipartData(c, &req) {
		return
	}

	imageTemp, ok := SaveSingleUpload(c, cc.mediaStore, "image")
	if !ok {
		return
	}

	collection, err := cc.collectionService.CreateCollection(ctx, req, imageTemp, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Collection created", collection)
}

func (cc *CollectionController) UpdateCollection(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	collectionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var patch models.CollectionPatch
	if !BindMultipartData(c, &patch) {
		return
	}

	imageTemp, ok := SaveSingleUpload(c, cc.mediaStore, "image")
	if !ok {
		return
	}

	collection, err := cc.collectionService.UpdateCollection(ctx, collectionID, patch, imageTemp, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Collection updated", collection)
}

func (cc *CollectionController) DeleteCollection(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	collectionID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.collectionService.SoftDeleteCollection(ctx, collectionID, callerID); err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Collection deleted", nil)
}

func (cc *CollectionController) GetCollections(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	args := PaginationFromQuery(c)
	collections, count, err := cc.collectionService.ListCollections(ctx, args)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	meta := util.NewListMeta(args.Page, args.Limit, len(collections), count)
	util.HandleSuccessMeta(c, http.StatusOK, "Collections retrieved", collections, meta)
}

func (cc *CollectionController) SearchCollections(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var req models.SearchRequest
	if !BindJSONAndValidate(c, &req) {
		return
	}

	collections, count, err := cc.collectionService.SearchCollections(ctx, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	meta := util.NewListMeta(req.Meta.Page, req.Meta.Limit, len(collections), count)
	util.HandleSuccessMeta(c, http.StatusOK, "Collections retrieved", collections, meta)
}

func (cc *CollectionController) IsSlugUnique(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	slug := c.Query("slug")
	if slug == "" {
		util.HandleError(c, http.StatusBadRequest, util.ErrValidation)
		return
	}

	unique, err := cc.collectionService.IsSlugUnique(ctx, slug)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Slug checked", gin.H{"isUnique": unique})
}
