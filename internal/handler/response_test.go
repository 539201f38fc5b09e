package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranaykumar2/private-blog/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperror.ValidationFailed("title", "title is required"), http.StatusBadRequest, "validation_error"},
		{"unauthenticated", apperror.Unauthenticated("valid access token required"), http.StatusUnauthorized, "unauthenticated"},
		{"forbidden", apperror.Forbidden("only the author may modify this blog"), http.StatusForbidden, "forbidden"},
		{"not found", apperror.NotFound("blog", 42), http.StatusNotFound, "not_found"},
		{"plain error", fmt.Errorf("database exploded"), http.StatusInternalServerError, "internal_error"},
		{"wrapped app error", fmt.Errorf("service: %w", apperror.NotFound("user", 7)), http.StatusNotFound, "not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tc.err)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tc.wantType, resp.Error)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

// Raw error text from a server failure must never reach the client.
func TestWriteError_InternalErrorHidesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, fmt.Errorf("sqlite: connection lost at 10.0.0.5"))

	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestWriteJSON_ContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDecodeJSON(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title": "t", "content": "c"}`, false},
		{"unknown field", `{"title": "t", "content": "c", "author": 99}`, true},
		{"trailing garbage", `{"title": "t", "content": "c"}{"extra": true}`, true},
		{"not json", `hello`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var dst createBlogRequest
			err := decodeJSON(req, &dst)
			if tc.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "t", dst.Title)
			}
		})
	}
}
