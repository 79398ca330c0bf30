package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func identityEcho() (http.Handler, *string) {
	var caller string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller = CallerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}), &caller
}

func TestRequireIdentity_PassesCallerThrough(t *testing.T) {
	handler, caller := identityEcho()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(PlayerIDHeader, "alice")
	rr := httptest.NewRecorder()
	RequireIdentity(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", *caller)
}

func TestRequireIdentity_MissingHeader(t *testing.T) {
	handler, caller := identityEcho()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	rr := httptest.NewRecorder()
	RequireIdentity(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, *caller)
}

func TestRequireIdentity_OversizedHeader(t *testing.T) {
	handler, _ := identityEcho()

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(PlayerIDHeader, strings.Repeat("x", maxPlayerIDLength+1))
	rr := httptest.NewRecorder()
	RequireIdentity(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCallerFrom_UnguardedContext(t *testing.T) {
	assert.Equal(t, "", CallerFrom(context.Background()))
}
