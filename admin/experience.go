package admin

import (
	"context"
	"strings"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

// NewExperienceController builds the work-experience page controller.
// The default sort shows the most recent position first, newest id breaking
// ties.
func NewExperienceController(api *client.Client) *controller.Controller[model.WorkExperience, ExperienceDraft] {
	svc := api.Experience()
	return controller.New(controller.Config[model.WorkExperience, ExperienceDraft]{
		ID: func(e model.WorkExperience) int64 { return e.ID },
		Load: func(ctx context.Context) ([]model.WorkExperience, error) {
			return svc.ListMine(ctx)
		},
		Create: func(ctx context.Context, d ExperienceDraft) (*model.WorkExperience, error) {
			return svc.Create(ctx, experiencePayload(d))
		},
		Update: func(ctx context.Context, id int64, d ExperienceDraft) (*model.WorkExperience, error) {
			return svc.Update(ctx, id, experiencePayload(d))
		},
		Delete: func(ctx context.Context, id int64) error {
			return svc.Delete(ctx, id)
		},
		NewDraft: func() ExperienceDraft { return ExperienceDraft{} },
		DraftFrom: func(e model.WorkExperience) ExperienceDraft {
			return ExperienceDraft{
				JobTitle:    e.JobTitle,
				Company:     e.Company,
				Location:    text(e.Location),
				StartDate:   e.StartDate,
				EndDate:     text(e.EndDate),
				Description: text(e.Description),
			}
		},
		Normalize: func(d ExperienceDraft) ExperienceDraft {
			d.JobTitle = strings.TrimSpace(d.JobTitle)
			d.Company = strings.TrimSpace(d.Company)
			d.Location = strings.TrimSpace(d.Location)
			d.StartDate = strings.TrimSpace(d.StartDate)
			d.EndDate = strings.TrimSpace(d.EndDate)
			d.Description = strings.TrimSpace(d.Description)
			return d
		},
		Rules: []controller.Rule[model.WorkExperience, ExperienceDraft]{
			controller.Field[model.WorkExperience](
				"job_title",
				func(d ExperienceDraft) string { return d.JobTitle },
				controller.Required("job title is required"),
				controller.MaxLen(100, "job title must be at most 100 characters"),
			),
			controller.Field[model.WorkExperience](
				"company",
				func(d ExperienceDraft) string { return d.Company },
				controller.Required("company is required"),
				controller.MaxLen(100, "company must be at most 100 characters"),
			),
			controller.Field[model.WorkExperience](
				"start_date",
				func(d ExperienceDraft) string { return d.StartDate },
				controller.Required("start date is required"),
				controller.ISODate("start date must be YYYY-MM-DD"),
			),
			controller.Field[model.WorkExperience](
				"end_date",
				func(d ExperienceDraft) string { return d.EndDate },
				controller.ISODate("end date must be YYYY-MM-DD"),
			),
			controller.DateNotBefore[model.WorkExperience](
				"end_date",
				func(d ExperienceDraft) string { return d.StartDate },
				func(d ExperienceDraft) string { return d.EndDate },
				"end date cannot precede start date",
			),
		},
		Match: func(e model.WorkExperience, term string) bool {
			return strings.Contains(strings.ToLower(e.JobTitle), term) ||
				strings.Contains(strings.ToLower(e.Company), term)
		},
		Less: func(a, b model.WorkExperience) bool {
			if a.StartDate == b.StartDate {
				return a.ID > b.ID
			}
			return a.StartDate > b.StartDate
		},
		Messages: controller.Messages{
			LoadFailed:   "failed to load work experience",
			SaveFailed:   "failed to save work experience",
			DeleteFailed: "failed to delete work experience",
			Created:      "work experience created",
			Updated:      "work experience updated",
			Deleted:      "work experience deleted",
		},
	})
}

func experiencePayload(d ExperienceDraft) client.ExperienceRequest {
	return client.ExperienceRequest{
		JobTitle:    strings.TrimSpace(d.JobTitle),
		Company:     strings.TrimSpace(d.Company),
		Location:    optional(d.Location),
		StartDate:   strings.TrimSpace(d.StartDate),
		EndDate:     optional(d.EndDate),
		Description: optional(d.Description),
	}
}
