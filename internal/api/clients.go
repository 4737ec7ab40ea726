package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"folio/internal/db"
)

type clientRequest struct {
	Name           string  `json:"name"`
	Company        *string `json:"company"`
	Feedback       *string `json:"feedback"`
	ClientPhotoURL *string `json:"client_photo_url"`
	ProjectLink    *string `json:"project_link"`
}

func (c clientRequest) params() db.ClientParams {
	return db.ClientParams{
		Name:           c.Name,
		Company:        c.Company,
		Feedback:       c.Feedback,
		ClientPhotoURL: c.ClientPhotoURL,
		ProjectLink:    c.ProjectLink,
	}
}

func (d Dependencies) createClient(w http.ResponseWriter, r *http.Request) {
	body, ok := d.readValidated(w, r, "client")
	if !ok {
		return
	}
	var req clientRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	cl, err := d.DB.Queries.CreateClient(r.Context(), profile.ID, req.params())
	if err != nil {
		d.Log.Error("create client", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}

	d.notify(profile.UserID, "client", "created", cl.ID)
	writeJSON(w, http.StatusCreated, cl)
}

func (d Dependencies) myClients(w http.ResponseWriter, r *http.Request) {
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	items, err := d.DB.Queries.ListClientsByProfile(r.Context(), profile.ID)
	if err != nil {
		d.Log.Error("list clients", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (d Dependencies) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	body, ok := d.readValidated(w, r, "client")
	if !ok {
		return
	}
	var req clientRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", d.Log)
		return
	}

	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}

	cl, err := d.DB.Queries.UpdateClient(r.Context(), id, profile.ID, req.params())
	if err != nil {
		d.writeDBError(w, err, "Client not found")
		return
	}

	d.notify(profile.UserID, "client", "updated", cl.ID)
	writeJSON(w, http.StatusOK, cl)
}

func (d Dependencies) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid id", d.Log)
		return
	}
	profile, ok := d.currentProfile(w, r)
	if !ok {
		return
	}
	if err := d.DB.Queries.SoftDeleteClient(r.Context(), id, profile.ID); err != nil {
		d.writeDBError(w, err, "Client not found")
		return
	}
	d.notify(profile.UserID, "client", "deleted", id)
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Client deleted"})
}

func (d Dependencies) publicClients(w http.ResponseWriter, r *http.Request) {
	items, err := d.DB.Queries.ListPublicClients(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		d.Log.Error("list public clients", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Internal server error", d.Log)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
