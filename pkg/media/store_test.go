package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*DiskStore, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewDiskStore(root)
	require.NoError(t, err)
	return store, root
}

func TestWriteTempKeepsExtensionOnly(t *testing.T) {
	store, root := newStore(t)

	temp, err := store.WriteTemp(strings.NewReader("payload"), "Product Photo.JPG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(temp, TempDir+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(temp, ".jpg"))
	assert.NotContains(t, temp, "Product Photo")

	data, err := os.ReadFile(filepath.Join(root, temp))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestMoveRelocatesAndDrainsTemp(t *testing.T) {
	store, root := newStore(t)

	temp, err := store.WriteTemp(strings.NewReader("payload"), "a.png")
	require.NoError(t, err)

	final, err := store.Move(temp, "products/abc")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("products/abc", filepath.Base(temp)), final)
	assert.True(t, store.Exists(final))
	assert.False(t, store.Exists(temp))

	entries, err := os.ReadDir(filepath.Join(root, TempDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newStore(t)

	temp, err := store.WriteTemp(strings.NewReader("payload"), "a.png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(temp))
	assert.False(t, store.Exists(temp))
	assert.NoError(t, store.Delete(temp))
	assert.NoError(t, store.Delete("never/existed.png"))
}

func TestConcurrentUploadsDoNotCollide(t *testing.T) {
	store, _ := newStore(t)

	a, err := store.WriteTemp(strings.NewReader("one"), "same-name.png")
	require.NoError(t, err)
	b, err := store.WriteTemp(strings.NewReader("two"), "same-name.png")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	fa, err := store.Move(a, "products/x")
	require.NoError(t, err)
	fb, err := store.Move(b, "products/x")
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}
