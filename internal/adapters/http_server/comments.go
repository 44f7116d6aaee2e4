package httpserver

import (
	"net/http"
	"strconv"

	"travelguide/internal/domain"
)

func (h *Handlers) listComments(w http.ResponseWriter, r *http.Request) {
	var q domain.CommentsQuery
	if raw := r.URL.Query().Get("destinationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, badRequest("destinationId must be a number"))
			return
		}
		q.DestinationID = &id
	}
	cs, err := h.Catalog.ListComments(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *Handlers) getComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}
	c, err := h.Catalog.GetComment(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "Comment")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) createComment(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.Catalog.CreateComment(r.Context(), domain.Comment{
		DestinationID: f.number("destinationId"), UserID: f.number("userId"), Text: f.text("text"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) updateComment(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p := domain.CommentPatch{Text: f.text("text")}
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}
	c, err := h.Catalog.UpdateComment(r.Context(), id, p)
	if err != nil {
		writeLookupError(w, r, err, "Comment")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err := h.Catalog.DeleteComment(r.Context(), id); err != nil {
		writeLookupError(w, r, err, "Comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
