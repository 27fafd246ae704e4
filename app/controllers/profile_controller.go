package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/services"
	"github.com/shashiranjanraj/bhandar/pkg/bind"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/middleware"
	"github.com/shashiranjanraj/bhandar/pkg/response"
	"github.com/shashiranjanraj/bhandar/pkg/session"
)

// ProfileController serves profile reads and edits.
type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// resolveUserID picks the target user: the path id when present,
// otherwise the authenticated caller (claims, then session). A zero
// return means no user could be resolved.
func resolveUserID(r *http.Request) uint {
	if raw := chi.URLParam(r, "id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			return uint(id)
		}
		return 0
	}
	if id, ok := middleware.UserIDFromCtx(r.Context()); ok {
		return id
	}
	if sess := session.FromCtx(r); sess != nil {
		if id, ok := sess.GetUint("user_id"); ok {
			return id
		}
	}
	return 0
}

// Show handles GET /users/{id}.
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	id := resolveUserID(r)
	if id == 0 {
		response.PreconditionFailed(w, "no user to load the profile for")
		return
	}

	user, err := c.profiles.Get(id)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}

// Update handles PATCH and POST /users/{id}. It accepts either a JSON
// body or a multipart form with an optional "profileImage" file. The
// target user must be resolvable before any store access happens.
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	id := resolveUserID(r)
	if id == 0 {
		response.PreconditionFailed(w, "no user to update the profile for")
		return
	}

	var (
		update models.ProfileUpdate
		errs   map[string]string
		err    error
	)

	if isMultipart(r) {
		file, header, ferr := bind.File(r, "profileImage")
		if ferr != nil {
			response.Error(w, http.StatusBadRequest, ferr.Error())
			return
		}
		if file != nil {
			defer file.Close()
		}

		update = updateFromForm(bind.FormValues(r))
		var user models.User
		user, errs, err = c.profiles.Update(id, update, file, header)
		c.respond(w, r, user, errs, err)
		return
	}

	errs, err = bind.JSON(r, &update)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, errs, err := c.profiles.Update(id, update, nil, nil)
	c.respond(w, r, user, errs, err)
}

func (c *ProfileController) respond(w http.ResponseWriter, r *http.Request, user models.User, errs map[string]string, err error) {
	if err != nil {
		logger.WithCtx(r.Context()).Error("profile update failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	// Keep the session's cached copy of the profile current.
	if sess := session.FromCtx(r); sess != nil {
		if raw, merr := json.Marshal(user); merr == nil {
			sess.Set("profile", json.RawMessage(raw))
			sess.Save(w)
		}
	}

	response.Success(w, user)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func updateFromForm(values map[string]string) models.ProfileUpdate {
	var u models.ProfileUpdate
	if v, ok := values["firstName"]; ok {
		u.FirstName = &v
	}
	if v, ok := values["lastName"]; ok {
		u.LastName = &v
	}
	if v, ok := values["contactNumber"]; ok {
		u.ContactNumber = &v
	}
	if v, ok := values["gender"]; ok {
		u.Gender = &v
	}
	return u
}
