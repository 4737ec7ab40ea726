package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/db"
	"folio/internal/model"
)

type technologyRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	IconURL  *string `json:"icon_url"`
}

func (t technologyRequest) params() db.TechnologyParams {
	return db.TechnologyParams{
		Name:     t.Name,
		Category: model.TechnologyCategory(t.Category),
		IconURL:  t.IconURL,
	}
}

func (d Dependencies) createTechnology(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "technology")
	if !ok {
		return
	}
	var req technologyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	tech, err := d.DB.Queries.CreateTechnology(r.Context(), profile.ID, req.params())
	if err != nil {
		d.Log.Error("create technology", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(profile.UserID, "technology", "created", tech.ID)
	writeJSON(w, http.StatusCreated, tech)
}

func (d Dependencies) myTechnologies(w http.ResponseWriter, r *http.Request) {
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	items, err := d.DB.Queries.ListTechnologiesByProfile(r.Context(), profile.ID)
	if err != nil {
		d.Log.Error("list technologies", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (d Dependencies) updateTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	body, ok := d.readValidated(w, r, "technology")
	if !ok {
		return
	}
	var req technologyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	tech, err := d.DB.Queries.UpdateTechnology(r.Context(), id, profile.ID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Technology not found")
		return
	}

	d.notify(profile.UserID, "technology", "updated", tech.ID)
	writeJSON(w, http.StatusOK, tech)
}

func (d Dependencies) deleteTechnology(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	if err := d.DB.Queries.SoftDeleteTechnology(r.Context(), id, profile.ID); err != nil {
		d.writeDBError(w, err, "Technology not found")
		return
	}
	d.notify(profile.UserID, "technology", "deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Technology deleted"})
}

func (d Dependencies) publicTechnologies(w http.ResponseWriter, r *http.Request) {
	items, err := d.DB.Queries.ListPublicTechnologies(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		d.Log.Error("list public technologies", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
