package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/db"
)

type socialRequest struct {
	Platform string  `json:"platform"`
	URL      string  `json:"url"`
	IconName *string `json:"icon_name"`
	Order    int     `json:"order"`
}

func (s socialRequest) params() db.SocialParams {
	return db.SocialParams{
		Platform: s.Platform,
		URL:      s.URL,
		IconName: s.IconName,
		Order:    s.Order,
	}
}

func (d Dependencies) createSocial(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "social")
	if !ok {
		return
	}
	var req socialRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	social, err := d.DB.Queries.CreateSocial(r.Context(), profile.ID, req.params())
	if err != nil {
		d.Log.Error("create social", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(profile.UserID, "social", "created", social.ID)
	writeJSON(w, http.StatusCreated, social)
}

func (d Dependencies) mySocials(w http.ResponseWriter, r *http.Request) {
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	items, err := d.DB.Queries.ListSocialsByProfile(r.Context(), profile.ID)
	if err != nil {
		d.Log.Error("list socials", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (d Dependencies) updateSocial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	body, ok := d.readValidated(w, r, "social")
	if !ok {
		return
	}
	var req socialRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	social, err := d.DB.Queries.UpdateSocial(r.Context(), id, profile.ID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Social not found")
		return
	}

	d.notify(profile.UserID, "social", "updated", social.ID)
	writeJSON(w, http.StatusOK, social)
}

func (d Dependencies) deleteSocial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	if err := d.DB.Queries.SoftDeleteSocial(r.Context(), id, profile.ID); err != nil {
		d.writeDBError(w, err, "Social not found")
		return
	}
	d.notify(profile.UserID, "social", "deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Social deleted"})
}

func (d Dependencies) publicSocials(w http.ResponseWriter, r *http.Request) {
	items, err := d.DB.Queries.ListPublicSocials(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		d.Log.Error("list public socials", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
