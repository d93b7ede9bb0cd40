package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRead(t *testing.T) {
	s := New(t.TempDir())

	payload := []byte("not really a jpeg")
	url, err := s.Save(payload, "photo.JPG", SubdirItems)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/items/") {
		t.Fatalf("url = %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("extension not preserved lowercase: %q", url)
	}

	name := filepath.Base(url)
	data, ct, err := s.Read(SubdirItems, name)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("read data differs from saved data")
	}
	if ct != "image/jpeg" {
		t.Errorf("content type = %q", ct)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	s := New(t.TempDir())
	a, err := s.Save([]byte("a"), "same.pdf", SubdirIDDocuments)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := s.Save([]byte("b"), "same.pdf", SubdirIDDocuments)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Fatal("two saves of the same original name collided")
	}
}

func TestReadRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	secret := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(secret, []byte("do not serve"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(filepath.Join(root, "uploads"))

	if _, _, err := s.Read(SubdirItems, "../../secret.txt"); err != ErrNotFound {
		t.Fatalf("traversal read err = %v, want ErrNotFound", err)
	}
	if _, _, err := s.Read("..", "secret.txt"); err != ErrNotFound {
		t.Fatalf("subdir traversal err = %v, want ErrNotFound", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	s := New(t.TempDir())
	if _, _, err := s.Read(SubdirItems, "nope.jpg"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := ContentTypeFor("a.PNG"); got != "image/png" {
		t.Errorf("png: %q", got)
	}
	if got := ContentTypeFor("b.pdf"); got != "application/pdf" {
		t.Errorf("pdf: %q", got)
	}
	if got := ContentTypeFor("c.jpeg"); got != "image/jpeg" {
		t.Errorf("default: %q", got)
	}
}
