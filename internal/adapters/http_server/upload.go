package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/adapters/uploads"
)

// upload stores the multipart field "image" under its original file name.
func (h *Handlers) upload(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	file, hdr, err := r.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, r, &apiError{Status: http.StatusRequestEntityTooLarge, Message: "file too large"})
			return
		}
		writeError(w, r, badRequest("image file is required"))
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	err = h.Uploads.Save(r.Context(), hdr.Filename, file, hdr.Size, hdr.Header.Get("Content-Type"))
	observability.ObserveUpload(h.Uploads.Kind(), err)
	if errors.Is(err, uploads.ErrBadName) {
		writeError(w, r, badRequest("invalid file name"))
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("file", hdr.Filename).Int64("size", hdr.Size).Str("sink", h.Uploads.Kind()).Msg("file uploaded")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("File uploaded successfully"))
}
