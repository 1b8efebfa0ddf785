package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"emailfinder/pkg/controller"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestPprof_Mounted(t *testing.T) {
	r := chi.NewRouter()
	r.Mount("/debug/pprof", controller.Pprof())

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/goroutine?debug=1"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}
