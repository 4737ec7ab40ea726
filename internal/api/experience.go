package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/db"
)

type experienceRequest struct {
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

func (e experienceRequest) params() db.ExperienceParams {
	return db.ExperienceParams{
		JobTitle:    e.JobTitle,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Description: e.Description,
	}
}

// datesOrdered rejects an end date earlier than the start date. Both are ISO
// strings, so a plain comparison is enough.
func datesOrdered(e experienceRequest) bool {
	return e.EndDate == nil || *e.EndDate == "" || *e.EndDate >= e.StartDate
}

func (d Dependencies) createExperience(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "experience")
	if !ok {
		return
	}
	var req experienceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}
	if !datesOrdered(req) {
		WriteError(w, http.StatusBadRequest, "End date cannot precede start date", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	exp, err := d.DB.Queries.CreateExperience(r.Context(), profile.ID, req.params())
	if err != nil {
		d.Log.Error("create experience", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(profile.UserID, "experience", "created", exp.ID)
	writeJSON(w, http.StatusCreated, exp)
}

func (d Dependencies) myExperience(w http.ResponseWriter, r *http.Request) {
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	items, err := d.DB.Queries.ListExperienceByProfile(r.Context(), profile.ID)
	if err != nil {
		d.Log.Error("list experience", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (d Dependencies) updateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	body, ok := d.readValidated(w, r, "experience")
	if !ok {
		return
	}
	var req experienceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}
	if !datesOrdered(req) {
		WriteError(w, http.StatusBadRequest, "End date cannot precede start date", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	exp, err := d.DB.Queries.UpdateExperience(r.Context(), id, profile.ID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Work experience not found")
		return
	}

	d.notify(profile.UserID, "experience", "updated", exp.ID)
	writeJSON(w, http.StatusOK, exp)
}

func (d Dependencies) deleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	if err := d.DB.Queries.SoftDeleteExperience(r.Context(), id, profile.ID); err != nil {
		d.writeDBError(w, err, "Work experience not found")
		return
	}
	d.notify(profile.UserID, "experience", "deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Work experience deleted"})
}

func (d Dependencies) publicExperience(w http.ResponseWriter, r *http.Request) {
	items, err := d.DB.Queries.ListPublicExperience(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		d.Log.Error("list public experience", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
