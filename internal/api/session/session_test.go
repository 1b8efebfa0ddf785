package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emailfinder/internal/api/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	opts := session.Options{CookieName: "ef_session", TTL: time.Hour}

	var seen string
	h := session.Middleware(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.Key(r.Context())
	}))

	// a new visitor gets a cookie
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "ef_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	require.Equal(t, cookies[0].Value, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)

	// a returning visitor keeps the key
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "ef_session", Value: id})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Result().Cookies())
	require.Equal(t, id, seen)

	// a forged value is replaced
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "ef_session", Value: "../../etc"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1)
	require.NotEqual(t, "../../etc", seen)
}
