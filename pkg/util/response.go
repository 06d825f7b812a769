package util

import (
	"log"
	"math"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Meta    *ListMeta `json:"meta,omitempty"`
}

// ListMeta is the pagination block returned by every list endpoint.
type ListMeta struct {
	CurrentPageTotal int   `json:"currentPageTotal"`
	TotalRecords     int64 `json:"totalRecords"`
	TotalPages       int   `json:"totalPages"`
	NextPage         *int  `json:"nextPage"`
	PrevPage         *int  `json:"prevPage"`
	Limit            int   `json:"limit"`
	Page             int   `json:"page"`
}

// NewListMeta computes page links from the total record count. NextPage and
// PrevPage stay nil at the edges so clients can treat them as cursors.
func NewListMeta(page, limit, currentPageTotal int, totalRecords int64) *ListMeta {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))

	meta := &ListMeta{
		CurrentPageTotal: currentPageTotal,
		TotalRecords:     totalRecords,
		TotalPages:       totalPages,
		Limit:            limit,
		Page:             page,
	}
	if page < totalPages {
		next := page + 1
		meta.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		meta.PrevPage = &prev
	}

	return meta
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data any, meta *ListMeta) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func HandleError(c *gin.Context, statusCode int, err error) {
	log.Printf("error: %v", err)
	c.JSON(statusCode, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// RespondError picks the status from the error kind (see errors.go).
func RespondError(c *gin.Context, err error) {
	HandleError(c, StatusForError(err), err)
}
