package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"church-registry-go/internal/auth"
	admindomain "church-registry-go/internal/domain/admin"
	"church-registry-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminFinder struct {
	admins map[string]*admindomain.Admin
}

func (f *fakeAdminFinder) GetByID(_ context.Context, id string) (*admindomain.Admin, error) {
	found, ok := f.admins[id]
	if !ok {
		return nil, admindomain.ErrAdminNotFound
	}
	return found, nil
}

func setupAuthTest(t *testing.T) (*auth.JWTManager, *fakeAdminFinder, http.Handler) {
	t.Helper()

	tokens := auth.NewJWTManager("test-secret", time.Hour)
	admins := &fakeAdminFinder{admins: map[string]*admindomain.Admin{
		"admin-1": {ID: "admin-1", Email: "admin@parish.test"},
	}}

	log := logger.New(io.Discard, slog.LevelError, "json")
	middleware := NewJWTAuth(tokens, admins, log)

	protected := middleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		found, ok := AdminFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(found.ID))
	}))

	return tokens, admins, protected
}

func TestJWTAuthValidToken(t *testing.T) {
	tokens, _, protected := setupAuthTest(t)

	token, err := tokens.Generate("admin-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	protected.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "admin-1", recorder.Body.String())
}

func TestJWTAuthMissingHeader(t *testing.T) {
	_, _, protected := setupAuthTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	recorder := httptest.NewRecorder()

	protected.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized to access this route", body["error"])
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	tokens, _, protected := setupAuthTest(t)

	token, err := tokens.Generate("admin-1")
	require.NoError(t, err)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
		req.Header.Set("Authorization", header)
		recorder := httptest.NewRecorder()

		protected.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestJWTAuthForgedToken(t *testing.T) {
	_, _, protected := setupAuthTest(t)

	forged, err := auth.NewJWTManager("other-secret", time.Hour).Generate("admin-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	recorder := httptest.NewRecorder()

	protected.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// A valid token for a removed admin no longer grants access.
func TestJWTAuthDeletedAdmin(t *testing.T) {
	tokens, admins, protected := setupAuthTest(t)

	token, err := tokens.Generate("admin-1")
	require.NoError(t, err)
	delete(admins.admins, "admin-1")

	req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	protected.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
