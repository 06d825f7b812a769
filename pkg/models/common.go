package models

import (
	"mime/multipart"
)

type File struct {
	File multipart.File `json:"file,omitempty" validate:"required"`
}

// SearchMeta is the pagination block clients send on search endpoints.
type SearchMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SearchFilter is the structured filter for catalog searches. Slugs are
// resolved to ids by the query engine before the filter hits storage.
type SearchFilter struct {
	SearchKey      string `json:"searchKey"`
	IsActive       *bool  `json:"isActive"`
	CategorySlug   string `json:"categorySlug"`
	CollectionSlug string `json:"collectionSlug"`
}

// SearchRequest is the body of POST /search endpoints.
type SearchRequest struct {
	Filter SearchFilter `json:"filter"`
	Meta   SearchMeta   `json:"meta"`
}
