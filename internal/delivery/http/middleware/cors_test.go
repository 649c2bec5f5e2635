package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://cfp.example.com/", " "}, next)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{name: "preflight allowed origin", method: http.MethodOptions, origin: "https://cfp.example.com", wantStatus: http.StatusNoContent, wantOrigin: "https://cfp.example.com"},
		{name: "preflight other origin", method: http.MethodOptions, origin: "https://evil.example.com", wantStatus: http.StatusNoContent},
		{name: "simple request allowed origin", method: http.MethodGet, origin: "https://cfp.example.com", wantStatus: http.StatusOK, wantOrigin: "https://cfp.example.com"},
		{name: "simple request without origin", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "simple request other origin", method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/proposals/me", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "Origin", rr.Header().Get("Vary"))
			if tt.method == http.MethodOptions && tt.wantOrigin != "" {
				assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	handler := CORS([]string{"*"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "http://test/forms/talk", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}
