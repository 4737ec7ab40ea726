package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"folio/internal/auth"
	"folio/internal/model"
)

const maxBodySize = 1 << 20 // 1 MiB

// readValidated reads the request body and checks it against the named payload
// schema. On failure the response is already written and ok is false.
func (d Dependencies) readValidated(w http.ResponseWriter, r *http.Request, kind string) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Could not read request body", d.Log)
		return nil, false
	}

	fieldErrs, err := d.Validator.Validate(kind, body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return nil, false
	}
	if len(fieldErrs) > 0 {
		WriteValidationErrors(w, fieldErrs, d.Log)
		return nil, false
	}
	return body, true
}

// currentProfile resolves the authenticated user's profile. Missing profile
// writes a 404 and returns ok false.
func (d Dependencies) currentProfile(w http.ResponseWriter, r *http.Request) (model.Profile, bool) {
	userID := auth.UserID(r.Context())
	profile, err := d.DB.Queries.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Profile not found", d.Log)
		} else {
			WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		}
		return model.Profile{}, false
	}
	return profile, true
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeDBError maps pgx.ErrNoRows to a 404 with the given message, everything
// else to a 500.
func (d Dependencies) writeDBError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, pgx.ErrNoRows) {
		WriteError(w, http.StatusNotFound, notFoundMsg, d.Log)
		return
	}
	d.Log.Error("database error", zap.Error(err))
	WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
}

// notify broadcasts a resource change to the owner's event channel.
func (d Dependencies) notify(userID int64, resource, action string, id int64) {
	if d.Bus == nil {
		return
	}
	_ = d.Bus.PublishUser(userID, map[string]any{
		"type":     resource + "." + action,
		"resource": resource,
		"action":   action,
		"id":       id,
	})
}
