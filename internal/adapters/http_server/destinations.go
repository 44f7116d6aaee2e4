package httpserver

import (
	"net/http"

	"travelguide/internal/domain"
)

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Catalog.ListDestinations(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Destination not found")
		return
	}
	d, err := h.Catalog.GetDestination(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "Destination")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) createDestination(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := h.Catalog.CreateDestination(r.Context(), domain.Destination{
		Name: f.text("name"), Description: f.text("description"), Image: f.text("image"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *Handlers) updateDestination(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := domain.DestinationPatch{Name: f.text("name"), Description: f.text("description"), Image: f.text("image")}
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Destination not found")
		return
	}
	d, err := h.Catalog.UpdateDestination(r.Context(), id, p)
	if err != nil {
		writeLookupError(w, r, err, "Destination")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handlers) deleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Destination not found")
		return
	}
	if err := h.Catalog.DeleteDestination(r.Context(), id); err != nil {
		writeLookupError(w, r, err, "Destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
