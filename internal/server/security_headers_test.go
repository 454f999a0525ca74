package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hardeningHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueSameOrigin,
	HeaderXSSProtection:  HeaderValueXSSBlock,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
}

func assertHardened(t *testing.T, h http.Header, target string) {
	t.Helper()
	for name, want := range hardeningHeaders {
		assert.Equal(t, want, h.Get(name), "%s: header %s", target, name)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assertHardened(t, rec.Header(), "/")
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter(t, "k")

	tests := []struct {
		name       string
		method     string
		target     string
		apiKey     string
		wantStatus int
	}{
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
		{"state", http.MethodGet, "/api/v1/state", "k", http.StatusOK},
		{"inventory", http.MethodGet, "/api/v1/inventory", "k", http.StatusOK},
		{"cases", http.MethodGet, "/api/v1/cases", "k", http.StatusOK},
		{"unknown case", http.MethodGet, "/api/v1/cases/missing", "k", http.StatusNotFound},
		{"missing key", http.MethodGet, "/api/v1/state", "", http.StatusUnauthorized},
		{"harvest", http.MethodPost, "/api/v1/harvest", "k", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.apiKey != "" {
				req.Header.Set(HeaderAPIKey, tt.apiKey)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assertHardened(t, rec.Header(), tt.target)
		})
	}
}

func TestRouter_EventStreamSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, "")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events?types=case.revealed", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assertHardened(t, resp.Header, "/api/v1/events")
}
