package httpserver

import (
	"net/http"

	"travelguide/internal/domain"
)

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.Catalog.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, us)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	u, err := h.Catalog.GetUser(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.Catalog.CreateUser(r.Context(), domain.User{Username: f.text("username"), Email: f.text("email")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := domain.UserPatch{Username: f.text("username"), Email: f.text("email")}
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	u, err := h.Catalog.UpdateUser(r.Context(), id, p)
	if err != nil {
		writeLookupError(w, r, err, "User")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err := h.Catalog.DeleteUser(r.Context(), id); err != nil {
		writeLookupError(w, r, err, "User")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
