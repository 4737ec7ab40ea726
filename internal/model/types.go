package model

// Role represents a user role
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// TechnologyCategory classifies a technology entry
type TechnologyCategory string

const (
	TechFrontend TechnologyCategory = "FRONTEND"
	TechBackend  TechnologyCategory = "BACKEND"
	TechDatabase TechnologyCategory = "DATABASE"
	TechDevOps   TechnologyCategory = "DEVOPS"
	TechMobile   TechnologyCategory = "MOBILE"
	TechTool     TechnologyCategory = "TOOL"
	TechOther    TechnologyCategory = "OTHER"
)

// TechnologyCategories lists every valid technology category.
var TechnologyCategories = []TechnologyCategory{
	TechFrontend, TechBackend, TechDatabase, TechDevOps, TechMobile, TechTool, TechOther,
}

// ProjectCategory classifies a project entry
type ProjectCategory string

const (
	ProjectWeb             ProjectCategory = "WEB"
	ProjectMobile          ProjectCategory = "MOBILE"
	ProjectDesktop         ProjectCategory = "DESKTOP"
	ProjectAPI             ProjectCategory = "API"
	ProjectDataScience     ProjectCategory = "DATA_SCIENCE"
	ProjectMachineLearning ProjectCategory = "MACHINE_LEARNING"
	ProjectBlockchain      ProjectCategory = "BLOCKCHAIN"
	ProjectIoT             ProjectCategory = "IOT"
	ProjectGame            ProjectCategory = "GAME"
	ProjectOther           ProjectCategory = "OTHER"
)

// ProjectCategories lists every valid project category.
var ProjectCategories = []ProjectCategory{
	ProjectWeb, ProjectMobile, ProjectDesktop, ProjectAPI, ProjectDataScience,
	ProjectMachineLearning, ProjectBlockchain, ProjectIoT, ProjectGame, ProjectOther,
}

// User is the authenticated account record. Password hashes never leave the db layer.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Profile is the per-user portfolio profile
type Profile struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	Name         string  `json:"name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	CurrentTitle *string `json:"current_title"`
	BioSummary   *string `json:"bio_summary"`
	Location     *string `json:"location"`
	Phone        *string `json:"phone"`
	PhotoURL     *string `json:"photo_url"`
	Profile      *string `json:"profile"`
	CVURL        *string `json:"cv_url"`
}

// Technology is a stack entry shown on the public tech grid
type Technology struct {
	ID        int64              `json:"id"`
	ProfileID int64              `json:"profile_id"`
	Name      string             `json:"name"`
	Category  TechnologyCategory `json:"category"`
	IconURL   *string            `json:"icon_url"`
}

// ProjectPreview is an ordered gallery image attached to a project
type ProjectPreview struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	ImageURL  string  `json:"image_url"`
	Caption   *string `json:"caption"`
	Order     int     `json:"order"`
}

// Project is a portfolio project
type Project struct {
	ID               int64            `json:"id"`
	ProfileID        int64            `json:"profile_id"`
	Title            string           `json:"title"`
	Category         ProjectCategory  `json:"category"`
	Description      *string          `json:"description"`
	ThumbnailURL     *string          `json:"thumbnail_url"`
	LiveURL          *string          `json:"live_url"`
	RepoURL          *string          `json:"repo_url"`
	Featured         bool             `json:"featured"`
	WorkExperienceID *int64           `json:"work_experience_id"`
	Technologies     []Technology     `json:"technologies"`
	Previews         []ProjectPreview `json:"previews"`
}

// WorkExperience is a position on the experience timeline.
// Dates are ISO strings (YYYY-MM-DD); EndDate nil means the position is current.
type WorkExperience struct {
	ID          int64   `json:"id"`
	ProfileID   int64   `json:"profile_id"`
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
}

// Client is a testimonial entry
type Client struct {
	ID             int64   `json:"id"`
	ProfileID      int64   `json:"profile_id"`
	Name           string  `json:"name"`
	Company        *string `json:"company"`
	Feedback       *string `json:"feedback"`
	ClientPhotoURL *string `json:"client_photo_url"`
	ProjectLink    *string `json:"project_link"`
}

// Social is an external profile link
type Social struct {
	ID        int64   `json:"id"`
	ProfileID int64   `json:"profile_id"`
	Platform  string  `json:"platform"`
	URL       string  `json:"url"`
	IconName  *string `json:"icon_name"`
	Order     int     `json:"order"`
}
