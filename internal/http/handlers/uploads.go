package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"clearcause/internal/domain"
)

// Upload accepts a multipart form with a single "file" part. The bucket is
// the last path segment.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	limit := a.MaxUploadBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.fail(w, r, domain.Validation("file exceeds the upload limit"))
			return
		}
		a.fail(w, r, domain.Validation("invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		a.fail(w, r, domain.Validation("file is required"))
		return
	}
	defer file.Close()

	up, err := a.Uploads.Upload(r.Context(), actor(r), chi.URLParam(r, "bucket"), header.Filename, header.Size, file)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusCreated, up)
}

func (a *App) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if err := a.Uploads.Delete(r.Context(), actor(r), key); err != nil {
		a.fail(w, r, err)
		return
	}
	a.ok(w, http.StatusOK, map[string]bool{"deleted": true})
}
