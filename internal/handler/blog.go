// Package handler contains the HTTP layer: request parsing, response
// serialization, and the mapping from domain errors to status codes. All
// business rules live in the service layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/pranaykumar2/private-blog/internal/auth"
	"github.com/pranaykumar2/private-blog/internal/service"
)

// BlogHandler serves the /blogs/ routes.
//
// Caller identity is read from the request context, where the auth middleware
// placed it. On RequireAuth routes it is always present; on OptionalAuth
// routes its absence means the caller is anonymous.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// HandleList returns all blogs, id ascending.
//
// HTTP: GET /blogs/  (public; token optional, used only for is_author)
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, offset := listParams(r)

	blogs, err := h.blogs.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	callerID, authenticated := auth.UserIDFromContext(r.Context())
	writeJSON(w, http.StatusOK, newBlogListResponse(blogs, callerID, authenticated))
}

// HandleCreate saves a new blog authored by the caller.
//
// HTTP: POST /blogs/create/  (auth required)
// Body: {"title": "...", "content": "..."}; no other fields accepted.
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	var req createBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Create(r.Context(), callerID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newBlogResponse(blog, callerID, true))
}

// HandleGet returns one blog by id.
//
// HTTP: GET /blogs/{id}/ and GET /blogs/{id}/update/  (public)
func (h *BlogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	callerID, authenticated := auth.UserIDFromContext(r.Context())
	writeJSON(w, http.StatusOK, newBlogResponse(blog, callerID, authenticated))
}

// HandleUpdate modifies a blog's title and/or content.
//
// HTTP: PUT/PATCH /blogs/{id}/update/  (author only)
// Fields absent from the body are left unchanged; author and id are immutable.
func (h *BlogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	blog, err := h.blogs.Update(r.Context(), id, callerID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newBlogResponse(blog, callerID, true))
}

// HandleDelete removes a blog.
//
// HTTP: DELETE /blogs/{id}/update/  (author only)
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.blogs.Delete(r.Context(), id, callerID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListMine returns the caller's own blogs, id ascending.
//
// HTTP: GET /blogs/my-blogs/  (auth required)
func (h *BlogHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := listParams(r)

	blogs, err := h.blogs.ListByAuthor(r.Context(), callerID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newBlogListResponse(blogs, callerID, true))
}
