package api

import (
	"net/http"

	"folio/internal/auth"
	"folio/internal/db"
	"folio/internal/pubsub"
	"folio/internal/schema"
	"folio/internal/storage"
	"folio/internal/ws"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Dependencies struct {
	DB        *db.Pool
	Bus       *pubsub.Bus
	Hub       *ws.Hub
	Log       *zap.Logger
	JWT       *auth.JWTConfig
	Media     *storage.MediaStore
	Validator *schema.Validator
}

func Routes(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(d.Log))

	// Public surface: no token required, no token read.
	r.Group(func(r chi.Router) {
		r.Post("/auth/login", d.login)
		r.Post("/auth/register", d.register)

		r.Get("/profile/public/{username}", d.publicProfile)
		r.Get("/projects/public/{username}", d.publicProjects)
		r.Get("/technologies/public/{username}", d.publicTechnologies)
		r.Get("/experience/public/{username}", d.publicExperience)
		r.Get("/clients/public/{username}", d.publicClients)
		r.Get("/socials/public/{username}", d.publicSocials)
	})

	// Everything else requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(d.JWT.RequireAuth)

		r.Get("/auth/me", d.me)

		r.Post("/profile", d.createProfile)
		r.Get("/profile/me", d.myProfile)
		r.Put("/profile/me", d.updateProfile)

		r.Post("/technologies", d.createTechnology)
		r.Get("/technologies/me", d.myTechnologies)
		r.Put("/technologies/{id}", d.updateTechnology)
		r.Delete("/technologies/{id}", d.deleteTechnology)

		r.Post("/projects", d.createProject)
		r.Get("/projects/me", d.myProjects)
		r.Put("/projects/{id}", d.updateProject)
		r.Delete("/projects/{id}", d.deleteProject)

		r.Post("/experience", d.createExperience)
		r.Get("/experience/me", d.myExperience)
		r.Put("/experience/{id}", d.updateExperience)
		r.Delete("/experience/{id}", d.deleteExperience)

		r.Post("/clients", d.createClient)
		r.Get("/clients/me", d.myClients)
		r.Put("/clients/{id}", d.updateClient)
		r.Delete("/clients/{id}", d.deleteClient)

		r.Post("/socials", d.createSocial)
		r.Get("/socials/me", d.mySocials)
		r.Put("/socials/{id}", d.updateSocial)
		r.Delete("/socials/{id}", d.deleteSocial)

		r.Post("/images/upload", d.uploadImage)
		r.Post("/images/upload-pdf", d.uploadPDF)

		r.Get("/ws", d.events)
	})

	return r
}
