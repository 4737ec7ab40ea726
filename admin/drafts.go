// Package admin wires the generic controller to the folio client for each
// manageable resource, reproducing the admin dashboard's page logic without
// any rendering concerns.
package admin

import "strings"

// optional converts a form value to the wire representation: trimmed, and
// nil when empty so the backend stores NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// text coerces a nullable wire value into a controlled form value.
func text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// TechnologyDraft is the technology form state.
type TechnologyDraft struct {
	Name     string
	Category string
	IconURL  string
}

// ProjectDraft is the project form state. WorkExperienceID zero means
// unlinked.
type ProjectDraft struct {
	Title            string
	Category         string
	Description      string
	ThumbnailURL     string
	LiveURL          string
	RepoURL          string
	Featured         bool
	WorkExperienceID int64
	TechnologyIDs    []int64
}

// ExperienceDraft is the work-experience form state. Dates are ISO strings;
// an empty EndDate means a current position.
type ExperienceDraft struct {
	JobTitle    string
	Company     string
	Location    string
	StartDate   string
	EndDate     string
	Description string
}

// ClientDraft is the client-testimonial form state.
type ClientDraft struct {
	Name           string
	Company        string
	Feedback       string
	ClientPhotoURL string
	ProjectLink    string
}

// SocialDraft is the social-link form state.
type SocialDraft struct {
	Platform string
	URL      string
	IconName string
	Order    int
}

// ProfileDraft is the profile form state.
type ProfileDraft struct {
	Name         string
	LastName     string
	CurrentTitle string
	BioSummary   string
	Location     string
	Phone        string
	PhotoURL     string
	Profile      string
	CVURL        string
}
