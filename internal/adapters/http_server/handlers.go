package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelguide/internal/adapters/uploads"
	"travelguide/internal/adapters/views"
	"travelguide/internal/app"
	"travelguide/internal/domain"
)

type Handlers struct {
	Catalog        *app.CatalogService
	Uploads        uploads.Sink
	Views          *views.Renderer
	AccessToken    string
	PublicDir      string
	MaxUploadBytes int64
}

type message struct {
	Message string `json:"message"`
}

// apiError carries a client-facing status and message through the catch-all.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string { return e.Message }

func badRequest(msg string) error { return &apiError{Status: http.StatusBadRequest, Message: msg} }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/destinations", h.listDestinations)
		r.Get("/destination", h.listDestinations)
		r.Get("/destination/{id}", h.getDestination)
		r.Post("/destination", h.createDestination)
		r.Patch("/destination/{id}", h.updateDestination)
		r.Delete("/destination/{id}", h.deleteDestination)

		r.Get("/users", h.listUsers)
		r.Get("/user", h.listUsers)
		r.Get("/user/{id}", h.getUser)
		r.Post("/user", h.createUser)
		r.Patch("/user/{id}", h.updateUser)
		r.Delete("/user/{id}", h.deleteUser)

		r.Get("/comments", h.listComments)
		r.Get("/comment", h.listComments)
		r.Get("/comment/{id}", h.getComment)
		r.Post("/comment", h.createComment)
		r.Patch("/comment/{id}", h.updateComment)
		r.Delete("/comment/{id}", h.deleteComment)

		// Nothing is routed under /api/private yet; the gate still runs and a
		// request that passes it ends in a 404.
		private := chi.NewRouter()
		private.NotFound(notFoundJSON)
		r.Mount("/private", Gate(h.AccessToken)(private))
	})

	s.mux.Post("/upload", h.upload)

	s.mux.Get("/", h.indexPage)
	s.mux.Get("/destination/{id}", h.destinationPage)
	s.mux.Get("/users", h.usersPage)
	s.mux.Get("/comments", h.commentsPage)

	s.mux.NotFound(h.static)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Message: msg})
}

func notFoundJSON(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Not Found")
}

// writeError is the catch-all for anything a handler did not answer itself.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		writeMessage(w, ae.Status, ae.Message)
		return
	}
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unhandled request error")
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

// writeLookupError answers a failed id-based operation: a miss is a 404 with
// the entity's message, anything else goes to the catch-all.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	if errors.Is(err, domain.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, entity+" not found")
		return
	}
	writeError(w, r, err)
}

// pathID compares the id path parameter loosely: surrounding space is
// ignored and any integral number matches ("1", "1.0", "01"). Anything else
// matches no record.
func pathID(r *http.Request) (int64, bool) {
	n := integer(chi.URLParam(r, "id"))
	if n == nil {
		return 0, false
	}
	return *n, true
}

// static serves files from the public directory for otherwise unrouted GETs.
func (h *Handlers) static(w http.ResponseWriter, r *http.Request) {
	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && h.PublicDir != "" {
		name := filepath.Join(h.PublicDir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
		if st, err := os.Stat(name); err == nil && !st.IsDir() {
			http.ServeFile(w, r, name)
			return
		}
	}
	notFoundJSON(w, r)
}
