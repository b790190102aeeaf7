package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"clearcause/internal/domain"
	"clearcause/internal/storage"
)

const sniffLen = 512

// ObjectStore persists uploaded files.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Bucket describes what one upload bucket accepts.
type Bucket struct {
	Name     string
	MaxBytes int64
	Types    map[string]string // content type -> extension
}

var (
	imageTypes = map[string]string{"image/jpeg": ".jpg", "image/png": ".png", "image/webp": ".webp"}
	docTypes   = map[string]string{"application/pdf": ".pdf", "image/jpeg": ".jpg", "image/png": ".png"}
	proofTypes = map[string]string{"application/pdf": ".pdf", "image/jpeg": ".jpg", "image/png": ".png", "image/webp": ".webp"}
)

// Buckets lists the upload buckets.
var Buckets = map[string]Bucket{
	"campaign-images":   {Name: "campaign-images", MaxBytes: 5 << 20, Types: imageTypes},
	"charity-documents": {Name: "charity-documents", MaxBytes: 10 << 20, Types: docTypes},
	"milestone-proofs":  {Name: "milestone-proofs", MaxBytes: 10 << 20, Types: proofTypes},
	"avatars":           {Name: "avatars", MaxBytes: 2 << 20, Types: imageTypes},
}

// Upload is a stored file.
type Upload struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename,omitempty"`
}

// UploadService stores files into buckets under a per-user prefix.
type UploadService struct {
	Base
	store ObjectStore
	// maxBytes caps every bucket; zero keeps the bucket limits.
	maxBytes int64
}

func NewUploadService(store ObjectStore, maxBytes int64, base Base) *UploadService {
	return &UploadService{Base: base, store: store, maxBytes: maxBytes}
}

// Upload sniffs the content type, checks it against the bucket and stores the
// file at <bucket>/<userID>/<uuid><ext>.
func (s *UploadService) Upload(ctx context.Context, actor domain.Actor, bucket, filename string, size int64, r io.Reader) (*Upload, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	b, ok := Buckets[bucket]
	if !ok {
		return nil, domain.Validation("unknown bucket %q", bucket)
	}
	limit := b.MaxBytes
	if s.maxBytes > 0 && s.maxBytes < limit {
		limit = s.maxBytes
	}
	if size > limit {
		return nil, domain.Validation("file exceeds the %d MB limit", limit>>20)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if n == 0 {
		return nil, domain.Validation("file is empty")
	}
	head = head[:n]
	contentType := sniff(head)
	ext, ok := b.Types[contentType]
	if !ok {
		return nil, domain.Validation("%s files are not accepted in %s", contentType, bucket)
	}

	key := path.Join(b.Name, actor.UserID, uuid.NewString()+ext)
	stored, err := s.store.Put(ctx, key, io.MultiReader(bytes.NewReader(head), r), limit)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, domain.Validation("file exceeds the %d MB limit", limit>>20)
		}
		return nil, err
	}
	s.Logger.Debug().Str("key", stored).Str("content_type", contentType).Msg("file uploaded")
	return &Upload{Key: stored, URL: s.store.URL(stored), ContentType: contentType, Filename: path.Base(filename)}, nil
}

// Delete removes a file the caller uploaded. Admins may remove any file.
func (s *UploadService) Delete(ctx context.Context, actor domain.Actor, key string) error {
	if err := requireAuth(actor); err != nil {
		return err
	}
	key = strings.TrimLeft(trim(key), "/")
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		return domain.Validation("invalid file key")
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return domain.Validation("invalid file key")
		}
	}
	if _, ok := Buckets[parts[0]]; !ok {
		return domain.Validation("unknown bucket %q", parts[0])
	}
	if parts[1] != actor.UserID && !actor.IsAdmin() {
		return domain.Forbidden("you can only delete your own files")
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	s.audit(ctx, actor, "upload.deleted", "upload", key, nil)
	return nil
}

func sniff(head []byte) string {
	ct := http.DetectContentType(head)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
