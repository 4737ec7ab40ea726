package admin

import (
	"context"
	"strings"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

func projectCategories() []string {
	out := make([]string, len(model.ProjectCategories))
	for i, c := range model.ProjectCategories {
		out[i] = string(c)
	}
	return out
}

// NewProjectController builds the projects page controller.
func NewProjectController(api *client.Client) *controller.Controller[model.Project, ProjectDraft] {
	svc := api.Projects()
	return controller.New(controller.Config[model.Project, ProjectDraft]{
		ID: func(p model.Project) int64 { return p.ID },
		Load: func(ctx context.Context) ([]model.Project, error) {
			return svc.ListMine(ctx)
		},
		Create: func(ctx context.Context, d ProjectDraft) (*model.Project, error) {
			return svc.Create(ctx, projectPayload(d))
		},
		Update: func(ctx context.Context, id int64, d ProjectDraft) (*model.Project, error) {
			return svc.Update(ctx, id, projectPayload(d))
		},
		Delete: func(ctx context.Context, id int64) error {
			return svc.Delete(ctx, id)
		},
		NewDraft: func() ProjectDraft {
			return ProjectDraft{Category: string(model.ProjectWeb)}
		},
		DraftFrom: func(p model.Project) ProjectDraft {
			d := ProjectDraft{
				Title:        p.Title,
				Category:     string(p.Category),
				Description:  text(p.Description),
				ThumbnailURL: text(p.ThumbnailURL),
				LiveURL:      text(p.LiveURL),
				RepoURL:      text(p.RepoURL),
				Featured:     p.Featured,
			}
			if p.WorkExperienceID != nil {
				d.WorkExperienceID = *p.WorkExperienceID
			}
			for _, t := range p.Technologies {
				d.TechnologyIDs = append(d.TechnologyIDs, t.ID)
			}
			return d
		},
		Normalize: func(d ProjectDraft) ProjectDraft {
			d.Title = strings.TrimSpace(d.Title)
			d.Description = strings.TrimSpace(d.Description)
			d.ThumbnailURL = strings.TrimSpace(d.ThumbnailURL)
			d.LiveURL = strings.TrimSpace(d.LiveURL)
			d.RepoURL = strings.TrimSpace(d.RepoURL)
			return d
		},
		Rules: []controller.Rule[model.Project, ProjectDraft]{
			controller.Field[model.Project](
				"title",
				func(d ProjectDraft) string { return d.Title },
				controller.Required("title is required"),
				controller.MinLen(2, "title must be at least 2 characters"),
				controller.MaxLen(100, "title must be at most 100 characters"),
			),
			controller.UniqueName[model.Project](
				"title",
				func(d ProjectDraft) string { return d.Title },
				func(p model.Project) string { return p.Title },
				func(p model.Project) int64 { return p.ID },
				"a project with that title already exists",
			),
			controller.Field[model.Project](
				"category",
				func(d ProjectDraft) string { return d.Category },
				controller.OneOf(projectCategories(), "invalid category"),
			),
			controller.Field[model.Project](
				"description",
				func(d ProjectDraft) string { return d.Description },
				controller.MaxLen(2000, "description must be at most 2000 characters"),
			),
			controller.Field[model.Project](
				"thumbnail_url",
				func(d ProjectDraft) string { return d.ThumbnailURL },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
			controller.Field[model.Project](
				"live_url",
				func(d ProjectDraft) string { return d.LiveURL },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
			controller.Field[model.Project](
				"repo_url",
				func(d ProjectDraft) string { return d.RepoURL },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
		},
		Match: func(p model.Project, term string) bool {
			return strings.Contains(strings.ToLower(p.Title), term)
		},
		Messages: controller.Messages{
			LoadFailed:   "failed to load projects",
			SaveFailed:   "failed to save project",
			DeleteFailed: "failed to delete project",
			Created:      "project created",
			Updated:      "project updated",
			Deleted:      "project deleted",
		},
	})
}

func projectPayload(d ProjectDraft) client.ProjectRequest {
	req := client.ProjectRequest{
		Title:         strings.TrimSpace(d.Title),
		Category:      model.ProjectCategory(d.Category),
		Description:   optional(d.Description),
		ThumbnailURL:  optional(d.ThumbnailURL),
		LiveURL:       optional(d.LiveURL),
		RepoURL:       optional(d.RepoURL),
		Featured:      d.Featured,
		TechnologyIDs: d.TechnologyIDs,
	}
	if d.WorkExperienceID != 0 {
		id := d.WorkExperienceID
		req.WorkExperienceID = &id
	}
	return req
}
