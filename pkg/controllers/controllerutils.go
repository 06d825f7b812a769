package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"vendura-api-io/api/internal/auth"
	"vendura-api-io/api/internal/common"
	"vendura-api-io/api/pkg/media"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithTimeout creates a context with the standard request timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
}

// RequireCaller resolves the authenticated user id and handles errors
// automatically. Services take the caller as an explicit argument, so every
// mutating handler starts here.
func RequireCaller(c *gin.Context) (primitive.ObjectID, bool) {
	callerID, err := auth.CallerID(c)
	if err != nil {
		util.HandleError(c, http.StatusUnauthorized, err)
		return primitive.NilObjectID, false
	}
	return callerID, true
}

// ParseObjectIDParam parses an ObjectID from URL parameter and handles errors
func ParseObjectIDParam(c *gin.Context, paramName string) (primitive.ObjectID, bool) {
	idString := c.Param(paramName)
	objectID, err := primitive.ObjectIDFromHex(idString)
	if err != nil {
		util.HandleError(c, http.StatusBadRequest, errors.Wrapf(util.ErrValidation, "invalid %s %q", paramName, idString))
		return primitive.NilObjectID, false
	}

	return objectID, true
}

// BindJSONAndValidate binds JSON and handles validation errors
func BindJSONAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	if err := common.Validate.Struct(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	return true
}

// BindMultipartData decodes the JSON `data` field of a multipart request
// into obj and validates it. Write endpoints carry their payload this way so
// files and structured fields travel in one request.
func BindMultipartData(c *gin.Context, obj any) bool {
	if err := c.Request.ParseMultipartForm(common.MAX_MULTIPART_MEMORY); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	raw := c.PostForm("data")
	if raw == "" {
		util.HandleError(c, http.StatusBadRequest, errors.Wrap(util.ErrValidation, "missing data field"))
		return false
	}
	if err := json.Unmarshal([]byte(raw), obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	if err := common.Validate.Struct(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}

	return true
}

// SaveUploads writes every file under the given form field to the media
// store's temp area and returns the temp paths. On failure the files
// already written are discarded before responding.
func SaveUploads(c *gin.Context, store media.Store, field string, max int) ([]string, bool) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, true
	}

	files := form.File[field]
	if len(files) > max {
		util.HandleError(c, http.StatusBadRequest, errors.Wrapf(util.ErrValidation, "too many files: %d (max %d)", len(files), max))
		return nil, false
	}

	var temps []string
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			discardTemps(store, temps)
			util.HandleError(c, http.StatusBadRequest, err)
			return nil, false
		}
		temp, err := store.WriteTemp(f, header.Filename)
		f.Close()
		if err != nil {
			discardTemps(store, temps)
			util.HandleError(c, http.StatusInternalServerError, err)
			return nil, false
		}
		temps = append(temps, temp)
	}

	return temps, true
}

// SaveSingleUpload is SaveUploads for endpoints that accept one file.
func SaveSingleUpload(c *gin.Context, store media.Store, field string) (string, bool) {
	temps, ok := SaveUploads(c, store, field, 1)
	if !ok {
		return "", false
	}
	if len(temps) == 0 {
		return "", true
	}
	return temps[0], true
}

func discardTemps(store media.Store, temps []string) {
	for _, t := range temps {
		if err := store.Delete(t); err != nil {
			util.LogError("discard upload "+t, err)
		}
	}
}

// PaginationFromQuery reads page/limit query params, tolerating absent or
// malformed values.
func PaginationFromQuery(c *gin.Context) util.PaginationArgs {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(util.DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = util.DefaultPageLimit
	}
	return util.PaginationArgs{Page: page, Limit: limit}
}
