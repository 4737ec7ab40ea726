package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/db"
	"folio/internal/model"
)

type projectPreviewRequest struct {
	ImageURL string  `json:"image_url"`
	Caption  *string `json:"caption"`
	Order    int     `json:"order"`
}

type projectRequest struct {
	Title            string                  `json:"title"`
	Category         string                  `json:"category"`
	Description      *string                 `json:"description"`
	ThumbnailURL     *string                 `json:"thumbnail_url"`
	LiveURL          *string                 `json:"live_url"`
	RepoURL          *string                 `json:"repo_url"`
	Featured         bool                    `json:"featured"`
	WorkExperienceID *int64                  `json:"work_experience_id"`
	TechnologyIDs    []int64                 `json:"technology_ids"`
	Previews         []projectPreviewRequest `json:"previews"`
}

func (p projectRequest) params() db.ProjectParams {
	previews := make([]db.ProjectPreviewParams, 0, len(p.Previews))
	for _, pv := range p.Previews {
		previews = append(previews, db.ProjectPreviewParams{
			ImageURL: pv.ImageURL,
			Caption:  pv.Caption,
			Order:    pv.Order,
		})
	}
	return db.ProjectParams{
		Title:            p.Title,
		Category:         model.ProjectCategory(p.Category),
		Description:      p.Description,
		ThumbnailURL:     p.ThumbnailURL,
		LiveURL:          p.LiveURL,
		RepoURL:          p.RepoURL,
		Featured:         p.Featured,
		WorkExperienceID: p.WorkExperienceID,
		TechnologyIDs:    p.TechnologyIDs,
		Previews:         previews,
	}
}

func (d Dependencies) createProject(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "project")
	if !ok {
		return
	}
	var req projectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	project, err := d.DB.Queries.CreateProject(r.Context(), profile.ID, req.params())
	if err != nil {
		d.Log.Error("create project", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(profile.UserID, "project", "created", project.ID)
	writeJSON(w, http.StatusCreated, project)
}

func (d Dependencies) myProjects(w http.ResponseWriter, r *http.Request) {
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	items, err := d.DB.Queries.ListProjectsByProfile(r.Context(), profile.ID)
	if err != nil {
		d.Log.Error("list projects", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (d Dependencies) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	body, ok := d.readValidated(w, r, "project")
	if !ok {
		return
	}
	var req projectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	project, err := d.DB.Queries.UpdateProject(r.Context(), id, profile.ID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Project not found")
		return
	}

	d.notify(profile.UserID, "project", "updated", project.ID)
	writeJSON(w, http.StatusOK, project)
}

func (d Dependencies) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	if err := d.DB.Queries.SoftDeleteProject(r.Context(), id, profile.ID); err != nil {
		d.writeDBError(w, err, "Project not found")
		return
	}
	d.notify(profile.UserID, "project", "deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Project deleted"})
}

func (d Dependencies) publicProjects(w http.ResponseWriter, r *http.Request) {
	items, err := d.DB.Queries.ListPublicProjects(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		d.Log.Error("list public projects", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
