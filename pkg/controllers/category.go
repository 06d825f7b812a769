package controllers

import (
	"net/http"

	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryController struct {
	categoryService services.CategoryService
	mediaStore      media.Store
}

func InitCategoryController(categoryService services.CategoryService, mediaStore media.Store) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		mediaStore:      mediaStore,
	}
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}

	var req models.CategoryRequest
	if !BindMultipartData(c, &req) {
		return
	}

	imageTemp, ok := SaveSingleUpload(c, cc.mediaStore, "image")
	if !ok {
		return
	}

	category, err := cc.categoryService.CreateCategory(ctx, req, imageTemp, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Category created", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	categoryID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var patch models.CategoryPatch
	if !BindMultipartData(c, &patch) {
		return
	}

	imageTemp, ok := SaveSingleUpload(c, cc.mediaStore, "image")
	if !ok {
		return
	}

	category, err := cc.categoryService.UpdateCategory(ctx, categoryID, patch, imageTemp, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Category updated", category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}
	categoryID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.categoryService.SoftDeleteCategory(ctx, categoryID, callerID); err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Category deleted", nil)
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	categoryID, ok := ParseObjectIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.categoryService.GetCategory(ctx, categoryID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Category retrieved", category)
}

// GetCategoryTree returns the live hierarchy as nested roots. An optional
// `root` query narrows the forest to one subtree.
func (cc *CategoryController) GetCategoryTree(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var rootID *primitive.ObjectID
	if root := c.Query("root"); root != "" {
		id, err := primitive.ObjectIDFromHex(root)
		if err != nil {
			util.HandleError(c, http.StatusBadRequest, err)
			return
		}
		rootID = &id
	}

	tree, err := cc.categoryService.MaterializeTree(ctx, rootID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Category tree retrieved", tree)
}

func (cc *CategoryController) IsSlugUnique(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	slug := c.Query("slug")
	if slug == "" {
		util.HandleError(c, http.StatusBadRequest, util.ErrValidation)
		return
	}

	unique, err := cc.categoryService.IsSlugUnique(ctx, slug)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Slug checked", gin.H{"isUnique": unique})
}
