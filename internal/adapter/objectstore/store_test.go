package objectstore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestUploadStoresObjectAndReturnsURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads/", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Upload("crown.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("expected url under base, got %s", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected extension preserved, got %s", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(url)))
	if err != nil {
		t.Fatalf("object not written: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestUploadGeneratesUniqueKeys(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := store.Upload("same.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Upload("same.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct keys, got %s twice", first)
	}
}

func TestDeleteRemovesObject(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads", testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Upload("inlay.webp", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(url); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), filepath.Base(url))); !os.IsNotExist(err) {
		t.Fatal("expected object removed")
	}

	if err := store.Delete("/uploads/missing.jpg"); err != nil {
		t.Fatalf("delete of unknown url should be silent, got %v", err)
	}
}
