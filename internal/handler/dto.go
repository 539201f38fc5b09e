package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pranaykumar2/private-blog/internal/apperror"
	"github.com/pranaykumar2/private-blog/internal/model"
)

// Request and response schemas. Each operation has an explicit struct listing
// exactly the fields it accepts or returns; there is no implicit filtering.
// Decoding rejects unknown fields, so a create request carrying an "author"
// field fails instead of being silently ignored.

type createBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateBlogRequest uses pointers so "field absent" (leave unchanged) is
// distinguishable from "field empty" (rejected by validation). PUT and PATCH
// share these semantics.
type updateBlogRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type accessTokenResponse struct {
	Access string `json:"access"`
}

// authorResponse is the nested author summary inside a blog response and the
// public user detail view. The password hash has no representation here.
type authorResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type blogResponse struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Author    authorResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	IsAuthor  bool           `json:"is_author"`
}

type profileResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newBlogResponse builds the wire representation of a blog for a given
// caller. is_author is true iff the caller is authenticated and is the
// blog's author; anonymous callers always get false.
func newBlogResponse(blog *model.Blog, callerID int64, authenticated bool) blogResponse {
	resp := blogResponse{
		ID:        blog.ID,
		Title:     blog.Title,
		Content:   blog.Content,
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
		IsAuthor:  authenticated && callerID == blog.AuthorID,
	}
	if blog.Author != nil {
		resp.Author = authorResponse{
			ID:       blog.Author.ID,
			Username: blog.Author.Username,
			Email:    blog.Author.Email,
		}
	}
	return resp
}

func newBlogListResponse(blogs []model.Blog, callerID int64, authenticated bool) []blogResponse {
	resp := make([]blogResponse, 0, len(blogs))
	for i := range blogs {
		resp = append(resp, newBlogResponse(&blogs[i], callerID, authenticated))
	}
	return resp
}

func newProfileResponse(u *model.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown fields and
// trailing garbage. Errors come back as validation errors so writeError maps
// them to 400.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("", "invalid request body: "+err.Error())
	}
	if dec.More() {
		return apperror.ValidationFailed("", "request body must contain a single JSON object")
	}
	return nil
}

// pathID parses the numeric {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", "id must be a positive integer")
	}
	return id, nil
}

// listParams parses the optional limit/offset query parameters.
// Absent or malformed values fall back to 0 (no limit / no offset).
func listParams(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
