package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"folio/internal/auth"
	"folio/internal/db"
)

type profileRequest struct {
	Name         string  `json:"name"`
	LastName     string  `json:"last_name"`
	CurrentTitle *string `json:"current_title"`
	BioSummary   *string `json:"bio_summary"`
	Location     *string `json:"location"`
	Phone        *string `json:"phone"`
	PhotoURL     *string `json:"photo_url"`
	Profile      *string `json:"profile"`
	CVURL        *string `json:"cv_url"`
}

func (p profileRequest) params() db.ProfileParams {
	return db.ProfileParams{
		Name:         p.Name,
		LastName:     p.LastName,
		CurrentTitle: p.CurrentTitle,
		BioSummary:   p.BioSummary,
		Location:     p.Location,
		Phone:        p.Phone,
		PhotoURL:     p.PhotoURL,
		Profile:      p.Profile,
		CVURL:        p.CVURL,
	}
}

func (d Dependencies) createProfile(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "profile")
	if !ok {
		return
	}
	var req profileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	userID := auth.UserID(r.Context())
	profile, err := d.DB.Queries.CreateProfile(r.Context(), userID, req.params())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			WriteError(w, http.StatusBadRequest, "Profile already exists", d.Log)
			return
		}
		d.Log.Error("create profile", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(userID, "profile", "created", profile.ID)
	writeJSON(w, http.StatusCreated, profile)
}

func (d Dependencies) myProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := d.DB.Queries.GetProfileByUserID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		d.writeDBError(w, err, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (d Dependencies) updateProfile(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "profile")
	if !ok {
		return
	}
	var req profileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	userID := auth.UserID(r.Context())
	profile, err := d.DB.Queries.UpdateProfileByUserID(r.Context(), userID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Profile not found")
		return
	}

	d.notify(userID, "profile", "updated", profile.ID)
	writeJSON(w, http.StatusOK, profile)
}

func (d Dependencies) publicProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	profile, err := d.DB.Queries.GetProfileByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Profile not found", d.Log)
			return
		}
		d.Log.Error("get public profile", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
