package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emailfinder/internal/api"
	"emailfinder/internal/api/handler/v1handler"
	"emailfinder/internal/api/session"
	"emailfinder/internal/auth"
	"emailfinder/internal/discovery"
	mockdiscovery "emailfinder/internal/discovery/mock"
	mockbackend "emailfinder/pkg/backend/mock"
	"emailfinder/pkg/controller"
	"emailfinder/pkg/logger"
	"emailfinder/pkg/serrors"
	"emailfinder/pkg/storage/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment, "debug")
	m.Run()
}

func newTestServer(t *testing.T, profiling bool) (*mockbackend.MockClient, *httptest.Server) {
	t.Helper()

	ctrl := gomock.NewController(t)
	be := mockbackend.NewMockClient(ctrl)
	svc := mockdiscovery.NewMockService(ctrl)
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })

	srv, err := api.NewServer(api.Deps{Deps: v1handler.Deps{
		Auth:      auth.New(be, store, auth.Options{}),
		Discovery: svc,
		Backend:   be,
		Workflows: discovery.NewRegistry(svc, discovery.WorkflowOptions{}),
	}}, api.Options{
		V1:            v1handler.Options{RequestTimeout: time.Second},
		Session:       session.Options{CookieName: "ef_session", TTL: time.Hour},
		MetricsPath:   "/metrics",
		AllowedOrigin: "*",
		Profiling:     profiling,
	})
	require.NoError(t, err)
	srv.Sweep()

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return be, ts
}

func noRedirect(t *testing.T) *http.Client {
	t.Helper()

	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func TestServer_HealthEndpoints(t *testing.T) {
	be, ts := newTestServer(t, false)

	res, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	be.EXPECT().Health(gomock.Any()).Return(serrors.KindOnly(serrors.ErrUnavailable))
	res, err = http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	res, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_Docs(t *testing.T) {
	_, ts := newTestServer(t, false)

	res, err := http.Get(ts.URL + "/specs/v1.yaml")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/yaml", res.Header.Get("Content-Type"))

	res, err = http.Get(ts.URL + "/v1/docs/")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_PagesAndSession(t *testing.T) {
	_, ts := newTestServer(t, false)

	res, err := noRedirect(t).Get(ts.URL + "/")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	require.Equal(t, "/auth/login", res.Header.Get("Location"))
	require.NotEmpty(t, res.Header.Get(controller.RequestIDHeader))
	require.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))

	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "ef_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
}

func TestServer_APIRequiresSignIn(t *testing.T) {
	_, ts := newTestServer(t, false)

	res, err := http.Get(ts.URL + "/api/v1/workflow/")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Profiling(t *testing.T) {
	_, ts := newTestServer(t, false)
	res, err := noRedirect(t).Get(ts.URL + "/debug/pprof/")
	require.NoError(t, err)
	_ = res.Body.Close()
	// falls through to the pages router
	require.NotEqual(t, http.StatusOK, res.StatusCode)

	_, ts = newTestServer(t, true)
	res, err = http.Get(ts.URL + "/debug/pprof/")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}
