package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/router"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
)

// newTestRouter registers the full API over services that never reach a
// store, which is enough to exercise routing itself.
func newTestRouter(t *testing.T) *router.Router {
	t.Helper()

	pool := workerpool.New(1)
	t.Cleanup(pool.Shutdown)

	users := repositories.NewUserRepository()
	invoices, err := services.NewInvoiceService(nil, nil)
	require.NoError(t, err)

	svc := &Services{
		Inventory: services.NewInventoryService(nil),
		CSV:       services.NewCSVService(nil, pool),
		Profiles:  services.NewProfileService(users),
		Invoices:  invoices,
		Auth:      services.NewAuthService(users),
	}

	r := router.New()
	require.NoError(t, RegisterAPI(r, svc))
	return r
}

// Every verb the {id} profile routes accept must also be accepted by
// the /me aliases, multipart POST included.
func TestProfileRoutesAcceptSameVerbsForMeAndID(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/users/me"},
		{http.MethodPatch, "/api/v1/users/me"},
		{http.MethodPost, "/api/v1/users/me"},
		{http.MethodGet, "/api/v1/users/7"},
		{http.MethodPatch, "/api/v1/users/7"},
		{http.MethodPost, "/api/v1/users/7"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)

		// Unauthenticated requests stop at the auth middleware; what
		// matters here is that the route exists at all.
		assert.Equalf(t, http.StatusUnauthorized, rec.Code,
			"%s %s should be routed", tc.method, tc.path)
	}
}

func TestHealthzIsRegistered(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
