package common

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS     = 2 * 60 * time.Second
	MONGO_DUPLICATE_KEY_CODE = 11000

	// Uploads beyond this are rejected before they reach the media store.
	MAX_MULTIPART_MEMORY = 32 << 20
	MAX_PRODUCT_IMAGES   = 10
)
