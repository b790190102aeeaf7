package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"clearcause/internal/domain"
	"clearcause/internal/storage"
)

type memStore struct {
	objects map[string][]byte
	deleted []string
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, maxBytes int64) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > maxBytes {
		return "", storage.ErrTooLarge
	}
	m.objects[key] = body
	return key, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStore) URL(key string) string { return "https://files.example.org/" + key }

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadStoresUnderUserPrefix(t *testing.T) {
	base, _, _ := newBase()
	store := &memStore{objects: map[string][]byte{}}
	svc := NewUploadService(store, 0, base)

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 1024)...)
	up, err := svc.Upload(context.Background(), donor, "avatars", "../me.png", int64(len(body)), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Upload error = %v", err)
	}
	if !strings.HasPrefix(up.Key, "avatars/donor-1/") || !strings.HasSuffix(up.Key, ".png") {
		t.Fatalf("key = %q", up.Key)
	}
	if up.ContentType != "image/png" || up.URL != "https://files.example.org/"+up.Key || up.Filename != "me.png" {
		t.Fatalf("unexpected upload %+v", up)
	}
	if !bytes.Equal(store.objects[up.Key], body) {
		t.Fatal("stored body differs from upload")
	}
}

func TestUploadRejections(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n")
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)
	tests := []struct {
		name   string
		actor  domain.Actor
		bucket string
		body   []byte
		size   int64
		kind   domain.ErrorKind
	}{
		{"anonymous", domain.Actor{}, "avatars", pngHeader, 0, domain.KindUnauthorized},
		{"unknown bucket", donor, "secrets", pngHeader, 0, domain.KindValidation},
		{"pdf avatar", donor, "avatars", pdf, 0, domain.KindValidation},
		{"declared too large", donor, "avatars", pngHeader, 3 << 20, domain.KindValidation},
		{"streamed too large", donor, "avatars", big, 0, domain.KindValidation},
		{"empty", donor, "avatars", nil, 0, domain.KindValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base, _, _ := newBase()
			svc := NewUploadService(&memStore{objects: map[string][]byte{}}, 0, base)
			_, err := svc.Upload(context.Background(), tc.actor, tc.bucket, "f", tc.size, bytes.NewReader(tc.body))
			if de := domain.AsError(err); de == nil || de.Kind != tc.kind {
				t.Fatalf("Upload() error = %v, want kind %s", err, tc.kind)
			}
		})
	}

	t.Run("pdf accepted as charity document", func(t *testing.T) {
		base, _, _ := newBase()
		svc := NewUploadService(&memStore{objects: map[string][]byte{}}, 0, base)
		up, err := svc.Upload(context.Background(), charityAcc, "charity-documents", "permit.pdf", int64(len(pdf)), bytes.NewReader(pdf))
		if err != nil || up.ContentType != "application/pdf" {
			t.Fatalf("Upload() = %+v, %v", up, err)
		}
	})
}

func TestUploadDeleteOwnership(t *testing.T) {
	base, _, _ := newBase()
	store := &memStore{objects: map[string][]byte{}}
	svc := NewUploadService(store, 0, base)
	ctx := context.Background()

	if err := svc.Delete(ctx, donor, "avatars/someone-else/a.png"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("Delete other user's file error = %v", err)
	}
	if err := svc.Delete(ctx, donor, "avatars/../../etc"); err == nil {
		t.Fatal("malformed key accepted")
	}
	if err := svc.Delete(ctx, donor, "/avatars/donor-1/a.png"); err != nil {
		t.Fatalf("Delete own file error = %v", err)
	}
	if err := svc.Delete(ctx, admin, "campaign-images/donor-1/b.png"); err != nil {
		t.Fatalf("admin Delete error = %v", err)
	}
	if len(store.deleted) != 2 || store.deleted[0] != "avatars/donor-1/a.png" {
		t.Fatalf("deleted %v", store.deleted)
	}
}
