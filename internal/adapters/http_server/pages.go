package httpserver

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"travelguide/internal/adapters/views"
	"travelguide/internal/domain"
)

func (h *Handlers) indexPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("name")
	ds, err := h.Catalog.ListDestinations(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPage(w, r, http.StatusOK, func(out io.Writer) error {
		return h.Views.Index(out, views.IndexPage{Query: q, Destinations: ds})
	})
}

func (h *Handlers) destinationPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFoundPage(w, r, "Destination not found")
		return
	}
	d, cs, err := h.Catalog.DestinationDetail(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.notFoundPage(w, r, "Destination not found")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPage(w, r, http.StatusOK, func(out io.Writer) error {
		return h.Views.Destination(out, views.DestinationPage{Destination: d, Comments: cs})
	})
}

func (h *Handlers) usersPage(w http.ResponseWriter, r *http.Request) {
	us, err := h.Catalog.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPage(w, r, http.StatusOK, func(out io.Writer) error { return h.Views.Users(out, us) })
}

func (h *Handlers) commentsPage(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Catalog.ListComments(r.Context(), domain.CommentsQuery{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderPage(w, r, http.StatusOK, func(out io.Writer) error { return h.Views.Comments(out, cs) })
}

func (h *Handlers) notFoundPage(w http.ResponseWriter, r *http.Request, msg string) {
	h.renderPage(w, r, http.StatusNotFound, func(out io.Writer) error { return h.Views.NotFound(out, msg) })
}

// renderPage buffers the page so a template error can still become a 500.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("write page failed")
	}
}
