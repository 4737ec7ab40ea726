package client

import (
	"context"
	"fmt"
	"net/http"

	"folio/internal/model"
)

// TechnologyRequest is the create/update payload for a technology.
// Optional fields marshal as null when unset, matching the backend contract.
type TechnologyRequest struct {
	Name     string                   `json:"name"`
	Category model.TechnologyCategory `json:"category"`
	IconURL  *string                  `json:"icon_url"`
}

// ProjectPreviewRequest is one gallery image in a project payload.
type ProjectPreviewRequest struct {
	ImageURL string  `json:"image_url"`
	Caption  *string `json:"caption"`
	Order    int     `json:"order"`
}

// ProjectRequest is the create/update payload for a project.
type ProjectRequest struct {
	Title            string                  `json:"title"`
	Category         model.ProjectCategory   `json:"category"`
	Description      *string                 `json:"description"`
	ThumbnailURL     *string                 `json:"thumbnail_url"`
	LiveURL          *string                 `json:"live_url"`
	RepoURL          *string                 `json:"repo_url"`
	Featured         bool                    `json:"featured"`
	WorkExperienceID *int64                  `json:"work_experience_id"`
	TechnologyIDs    []int64                 `json:"technology_ids,omitempty"`
	Previews         []ProjectPreviewRequest `json:"previews,omitempty"`
}

// ExperienceRequest is the create/update payload for a work experience.
type ExperienceRequest struct {
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

// ClientRequest is the create/update payload for a client testimonial.
type ClientRequest struct {
	Name           string  `json:"name"`
	Company        *string `json:"company"`
	Feedback       *string `json:"feedback"`
	ClientPhotoURL *string `json:"client_photo_url"`
	ProjectLink    *string `json:"project_link"`
}

// SocialRequest is the create/update payload for a social link.
type SocialRequest struct {
	Platform string  `json:"platform"`
	URL      string  `json:"url"`
	IconName *string `json:"icon_name"`
	Order    int     `json:"order"`
}

// ProfileRequest is the create/update payload for the profile.
type ProfileRequest struct {
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

// crudService implements the uniform REST surface every resource exposes:
// POST /R, GET /R/me, GET /R/{id}, PUT /R/{id}, DELETE /R/{id} and the
// anonymous GET /R/public/{username}.
type crudService[T any, R any] struct {
	c    *Client
	base string
}

func (s *crudService[T, R]) Create(ctx context.Context, req R) (*T, error) {
	var out T
	if err := s.c.do(ctx, http.MethodPost, s.base, req, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMine returns the authenticated user's collection.
func (s *crudService[T, R]) ListMine(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.c.do(ctx, http.MethodGet, s.base+"/me", nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *crudService[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := s.c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", s.base, id), nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *crudService[T, R]) Update(ctx context.Context, id int64, req R) (*T, error) {
	var out T
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", s.base, id), req, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record (soft delete server-side).
func (s *crudService[T, R]) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", s.base, id), nil, nil, reqOpts{})
}

// ListPublic returns a user's public collection. No token is ever attached.
func (s *crudService[T, R]) ListPublic(ctx context.Context, username string) ([]T, error) {
	var out []T
	if err := s.c.do(ctx, http.MethodGet, s.base+"/public/"+username, nil, &out, reqOpts{public: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// TechnologiesService manages technology records.
type TechnologiesService = crudService[model.Technology, TechnologyRequest]

// ProjectsService manages project records.
type ProjectsService = crudService[model.Project, ProjectRequest]

// ExperienceService manages work-experience records.
type ExperienceService = crudService[model.WorkExperience, ExperienceRequest]

// ClientsService manages client-testimonial records.
type ClientsService = crudService[model.Client, ClientRequest]

// SocialsService manages social-link records.
type SocialsService = crudService[model.Social, SocialRequest]

func (c *Client) Technologies() *TechnologiesService {
	return &crudService[model.Technology, TechnologyRequest]{c: c, base: "/technologies"}
}

func (c *Client) Projects() *ProjectsService {
	return &crudService[model.Project, ProjectRequest]{c: c, base: "/projects"}
}

func (c *Client) Experience() *ExperienceService {
	return &crudService[model.WorkExperience, ExperienceRequest]{c: c, base: "/experience"}
}

func (c *Client) Clients() *ClientsService {
	return &crudService[model.Client, ClientRequest]{c: c, base: "/clients"}
}

func (c *Client) Socials() *SocialsService {
	return &crudService[model.Social, SocialRequest]{c: c, base: "/socials"}
}

// ProfileService manages the single profile record. The profile is keyed by
// the authenticated user rather than by id, so it does not follow crudService.
type ProfileService struct {
	c *Client
}

func (c *Client) Profile() *ProfileService { return &ProfileService{c: c} }

func (s *ProfileService) Create(ctx context.Context, req ProfileRequest) (*model.Profile, error) {
	var out model.Profile
	if err := s.c.do(ctx, http.MethodPost, "/profile", req, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the authenticated user's profile. Returns an APIError with
// Status 404 when no profile exists yet; use IsNotFound for create-if-missing.
func (s *ProfileService) Me(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	if err := s.c.do(ctx, http.MethodGet, "/profile/me", nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) UpdateMe(ctx context.Context, req ProfileRequest) (*model.Profile, error) {
	var out model.Profile
	if err := s.c.do(ctx, http.MethodPut, "/profile/me", req, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProfileService) Public(ctx context.Context, username string) (*model.Profile, error) {
	var out model.Profile
	if err := s.c.do(ctx, http.MethodGet, "/profile/public/"+username, nil, &out, reqOpts{public: true}); err != nil {
		return nil, err
	}
	return &out, nil
}
