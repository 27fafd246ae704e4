package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/app/services"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// The controller must refuse before touching any store when no target
// user can be resolved, so a live database is not needed here.
func newProfileController() *ProfileController {
	return NewProfileController(services.NewProfileService(repositories.NewUserRepository()))
}

func TestUpdateFailsFastWithoutAResolvableUser(t *testing.T) {
	ctl := newProfileController()

	body := strings.NewReader(`{"firstName":"Kash"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ctl.Update(rec, req)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestShowFailsFastWithoutAResolvableUser(t *testing.T) {
	ctl := newProfileController()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	ctl.Show(rec, req)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestUpdateRejectsNonNumericPathID(t *testing.T) {
	ctl := newProfileController()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/abc", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "abc")
	rec := httptest.NewRecorder()
	ctl.Update(rec, req)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestUpdateRejectsInvalidGender(t *testing.T) {
	ctl := newProfileController()

	body := strings.NewReader(`{"gender":"robot"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/1", body)
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", "1")
	rec := httptest.NewRecorder()
	ctl.Update(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
