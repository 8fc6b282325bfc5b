package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveGeneratesName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	webPath, err := store.Save("mugshots", "photo.PNG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasPrefix(webPath, "/uploads/mugshots/") {
		t.Errorf("Unexpected web path: %s", webPath)
	}
	if !strings.HasSuffix(webPath, ".png") {
		t.Errorf("Expected lowercased extension, got %s", webPath)
	}
	if strings.Contains(webPath, "photo") {
		t.Error("Original file name leaked into stored path")
	}

	onDisk := filepath.Join(store.BaseDir(), "mugshots", filepath.Base(webPath))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Error("Stored content does not match")
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	tests := []string{"payload.exe", "script.sh", "noextension", "archive.tar.gz"}
	for _, name := range tests {
		if _, err := store.Save("mugshots", name, strings.NewReader("x")); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("Expected ErrUnsupportedType for %s, got %v", name, err)
		}
	}
}

func TestSaveConfinesSubdir(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	webPath, err := store.Save("../../etc", "photo.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The traversal attempt collapses to its final path element.
	if !strings.HasPrefix(webPath, "/uploads/etc/") {
		t.Errorf("Traversal not neutralized: %s", webPath)
	}

	entries, err := os.ReadDir(filepath.Join(base, "etc"))
	if err != nil || len(entries) != 1 {
		t.Errorf("File not stored inside the base directory: %v", err)
	}
}

func TestSaveBytes(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	webPath, err := store.SaveBytes("dossiers", "dossier.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("SaveBytes failed: %v", err)
	}
	if !strings.HasSuffix(webPath, ".html") {
		t.Errorf("Unexpected path: %s", webPath)
	}
}
