package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// echoUserID is a terminal handler that records what identity (if any) the
// middleware placed in the context.
type echoUserID struct {
	called bool
	userID int64
	ok     bool
}

func (e *echoUserID) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.userID, e.ok = UserIDFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.GenerateAccessToken(99)

	echo := &echoUserID{}
	h := RequireAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !echo.called || !echo.ok || echo.userID != 99 {
		t.Errorf("handler saw userID=%d ok=%v, want 99 true", echo.userID, echo.ok)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ts := newTestTokenService(t)
	echo := &echoUserID{}
	h := RequireAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	if echo.called {
		t.Error("handler should not run without a token")
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.GenerateAccessToken(1)

	for _, header := range []string{"Bearer", "Bearer ", token, "Basic " + token} {
		echo := &echoUserID{}
		h := RequireAuth(ts)(echo)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rr.Code)
		}
	}
}

// Refresh tokens must not authenticate API requests.
func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	ts := newTestTokenService(t)
	refresh, _ := ts.GenerateRefreshToken(1)

	echo := &echoUserID{}
	h := RequireAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	ts := newTestTokenService(t)
	echo := &echoUserID{}
	h := OptionalAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !echo.called {
		t.Fatal("handler should run for anonymous requests")
	}
	if echo.ok {
		t.Error("anonymous request should have no user in context")
	}
}

func TestOptionalAuth_WithToken(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.GenerateAccessToken(5)

	echo := &echoUserID{}
	h := OptionalAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !echo.ok || echo.userID != 5 {
		t.Errorf("handler saw userID=%d ok=%v, want 5 true", echo.userID, echo.ok)
	}
}

func TestOptionalAuth_InvalidTokenStillPasses(t *testing.T) {
	ts := newTestTokenService(t)
	echo := &echoUserID{}
	h := OptionalAuth(ts)(echo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if echo.ok {
		t.Error("invalid token should be treated as anonymous")
	}
}
