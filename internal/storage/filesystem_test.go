package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "avatars/u1/a.png", want: "avatars/u1/a.png"},
		{in: "/avatars//u1/./a.png", want: "avatars/u1/a.png"},
		{in: `avatars\u1\a.png`, want: "avatars/u1/a.png"},
		{in: "../etc/passwd", wantErr: true},
		{in: "avatars/../../x", wantErr: true},
		{in: "  ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	key, err := store.Put(ctx, "avatars/u1/pic.png", strings.NewReader("hello"), 5)
	if err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if store.URL(key) != "http://localhost:8080/static/avatars/u1/pic.png" {
		t.Fatalf("URL = %q", store.URL(key))
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "avatars", "u1", "pic.png")); string(data) != "hello" {
		t.Fatalf("stored %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
}

func TestPutTooLarge(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir, "")
	_, err := store.Put(context.Background(), "a/b.bin", strings.NewReader("123456"), 5)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a", "b.bin")); !os.IsNotExist(statErr) {
		t.Fatal("oversized upload must not be left on disk")
	}
}
