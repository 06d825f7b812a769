package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListMetaFirstPage(t *testing.T) {
	meta := NewListMeta(1, 10, 10, 25)

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalRecords)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}

func TestNewListMetaLastPage(t *testing.T) {
	meta := NewListMeta(3, 10, 5, 25)

	assert.Nil(t, meta.NextPage)
	require.NotNil(t, meta.PrevPage)
	assert.Equal(t, 2, *meta.PrevPage)
}

func TestNewListMetaSinglePage(t *testing.T) {
	meta := NewListMeta(1, 10, 4, 4)

	assert.Equal(t, 1, meta.TotalPages)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}

func TestNewListMetaNormalizesBadInput(t *testing.T) {
	meta := NewListMeta(0, 0, 0, 0)

	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, DefaultPageLimit, meta.Limit)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, 400, StatusForError(errors.Wrap(ErrValidation, "bad input")))
	assert.Equal(t, 404, StatusForError(errors.Wrap(ErrNotFound, "missing")))
	assert.Equal(t, 409, StatusForError(errors.Wrap(ErrConflict, "taken")))
	assert.Equal(t, 500, StatusForError(errors.Wrap(ErrIntegrity, "cycle")))
	assert.Equal(t, 500, StatusForError(errors.New("boom")))
}
