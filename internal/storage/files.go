// Package storage persists uploaded files under a configured root directory
// and resolves serve requests strictly inside that root.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Subdirectories used by the upload paths. Identity and address documents
// are kept apart from listing photos so the serving layer can reason about
// them separately.
const (
	SubdirIDDocuments      = "id-documents"
	SubdirProofOfResidence = "proof-of-residence"
	SubdirItems            = "items"
)

// ErrNotFound is returned by Read when the requested file does not exist,
// is unreadable, or resolves outside the storage root.
var ErrNotFound = errors.New("file not found")

// Store writes and reads files below Root. Saved files get an opaque
// generated name so caller-supplied names never collide or overwrite.
type Store struct {
	Root string
}

func New(root string) *Store { return &Store{Root: root} }

// Save writes data under root/subdir with a fresh UUID name, preserving the
// original extension if any, and returns the public URL path of the form
// /uploads/<subdir>/<name>.
func (s *Store) Save(data []byte, originalName, subdir string) (string, error) {
	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}

// Read returns the contents and content type of a stored file. Both path
// segments come from the URL, so the resolved path is canonicalized and
// rejected when it escapes the storage root.
func (s *Store) Read(subdir, filename string) ([]byte, string, error) {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, "", err
	}
	path, err := filepath.Abs(filepath.Join(root, subdir, filename))
	if err != nil {
		return nil, "", err
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, "", ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", ErrNotFound
	}
	return data, ContentTypeFor(filename), nil
}

// ContentTypeFor infers a content type from the file extension. The table
// is deliberately small: the service only ever writes images and PDFs, and
// anything else defaults to JPEG.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
