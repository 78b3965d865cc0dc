package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(t *testing.T, keys []string, path, header string) *httptest.ResponseRecorder {
	t.Helper()
	handler := BearerAuthMiddleware(keys)(okHandler())
	req := httptest.NewRequest(http.MethodPost, path, http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_EmptyKeys_PassThrough(t *testing.T) {
	if rr := serveAuth(t, nil, "/v1/roots", ""); rr.Code != http.StatusOK {
		t.Errorf("empty keys: got %d, want %d", rr.Code, http.StatusOK)
	}
	if rr := serveAuth(t, []string{"", ""}, "/v1/roots", ""); rr.Code != http.StatusOK {
		t.Errorf("empty string keys: got %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	rr := serveAuth(t, []string{"secret"}, "/v1/roots", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeUnauthorized {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"wrong key", "Bearer wrong-key"},
		{"lowercase scheme", "bearer secret"},
		{"empty token", "Bearer "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if rr := serveAuth(t, []string{"secret"}, "/v1/plot", tc.header); rr.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthMiddleware_MultipleKeys(t *testing.T) {
	for _, key := range []string{"key1", "key2"} {
		if rr := serveAuth(t, []string{"key1", "key2"}, "/v1/roots", "Bearer "+key); rr.Code != http.StatusOK {
			t.Errorf("key %s: got %d, want %d", key, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware_ExemptPaths(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		if rr := serveAuth(t, []string{"secret"}, path, ""); rr.Code != http.StatusOK {
			t.Errorf("exempt path %s: got %d, want %d", path, rr.Code, http.StatusOK)
		}
	}
}

func TestRouter_AuthGuardsAPI(t *testing.T) {
	h := NewRouter(newTestServer(t), []string{"secret"}, zap.NewNop())

	if rr := do(t, h, http.MethodPost, "/v1/roots", unitRootsBody); rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated solve: got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/health", ""); rr.Code != http.StatusOK {
		t.Errorf("health must stay open: got %d", rr.Code)
	}
}

func TestAuthMiddleware_ChallengeHeader(t *testing.T) {
	rr := serveAuth(t, []string{"secret"}, "/v1/roots", "Bearer nope")
	if got := rr.Header().Get("WWW-Authenticate"); got == "" {
		t.Error("expected WWW-Authenticate challenge on 401")
	}
}

func TestAuthorize(t *testing.T) {
	keys := [][]byte{[]byte("a"), []byte("b")}
	tests := []struct {
		header string
		want   error
	}{
		{"", errMissingAuth},
		{"Token a", errNotBearer},
		{"Bearer c", errBadAPIKey},
		{"Bearer a", nil},
		{"Bearer b", nil},
	}
	for _, tc := range tests {
		if got := authorize(keys, tc.header); got != tc.want {
			t.Errorf("authorize(%q) = %v, want %v", tc.header, got, tc.want)
		}
	}
}
