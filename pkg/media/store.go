// Package media implements the file store backing catalog images. Files are
// addressed by paths relative to the media root so the values persisted on
// catalog records stay stable across deployments.
package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TempDir is where uploads land before a write transaction claims them.
const TempDir = "_temp"

// Store is the contract the transaction coordinator relies on. Uploads are
// written to a temporary area first and only moved into an entity's media
// directory once the owning record is durably persisted.
type Store interface {
	WriteTemp(r io.Reader, suggestedName string) (string, error)
	Move(tempPath, destDir string) (string, error)
	Delete(path string) error
	Exists(path string) bool
	EnsureDir(dir string) error
}

// DiskStore keeps media on the local filesystem under a single root.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	s := &DiskStore{root: root}
	if err := s.EnsureDir(TempDir); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteTemp stores the upload under the temp area with a random name,
// keeping only the original extension. Returns the root-relative path.
func (s *DiskStore) WriteTemp(r io.Reader, suggestedName string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(suggestedName))
	relPath := filepath.Join(TempDir, name)

	f, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", errors.Wrap(err, "media: create temp file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "media: write temp file")
	}

	return relPath, nil
}

// Move relocates a temp file into destDir and returns its final path. The
// rename keeps the temp file's generated name so concurrent uploads for the
// same entity cannot collide.
func (s *DiskStore) Move(tempPath, destDir string) (string, error) {
	if err := s.EnsureDir(destDir); err != nil {
		return "", err
	}

	finalPath := filepath.Join(destDir, filepath.Base(tempPath))
	src := filepath.Join(s.root, tempPath)
	dst := filepath.Join(s.root, finalPath)

	if err := os.Rename(src, dst); err != nil {
		// Rename fails across devices; fall back to copy+remove.
		if copyErr := copyFile(src, dst); copyErr != nil {
			return "", errors.Wrap(err, "media: move file")
		}
		os.Remove(src)
	}

	return finalPath, nil
}

// Delete removes a file. A missing path is not an error so cleanup passes
// can be retried safely.
func (s *DiskStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, path))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "media: delete file")
	}
	return nil
}

func (s *DiskStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.root, path))
	return err == nil
}

func (s *DiskStore) EnsureDir(dir string) error {
	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return errors.Wrap(err, "media: ensure dir")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
