package admin

import (
	"context"
	"strings"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

func technologyCategories() []string {
	out := make([]string, len(model.TechnologyCategories))
	for i, c := range model.TechnologyCategories {
		out[i] = string(c)
	}
	return out
}

// NewTechnologyController builds the technologies page controller.
func NewTechnologyController(api *client.Client) *controller.Controller[model.Technology, TechnologyDraft] {
	svc := api.Technologies()
	return controller.New(controller.Config[model.Technology, TechnologyDraft]{
		ID: func(t model.Technology) int64 { return t.ID },
		Load: func(ctx context.Context) ([]model.Technology, error) {
			return svc.ListMine(ctx)
		},
		Create: func(ctx context.Context, d TechnologyDraft) (*model.Technology, error) {
			return svc.Create(ctx, technologyPayload(d))
		},
		Update: func(ctx context.Context, id int64, d TechnologyDraft) (*model.Technology, error) {
			return svc.Update(ctx, id, technologyPayload(d))
		},
		Delete: func(ctx context.Context, id int64) error {
			return svc.Delete(ctx, id)
		},
		NewDraft: func() TechnologyDraft {
			return TechnologyDraft{Category: string(model.TechFrontend)}
		},
		DraftFrom: func(t model.Technology) TechnologyDraft {
			return TechnologyDraft{
				Name:     t.Name,
				Category: string(t.Category),
				IconURL:  text(t.IconURL),
			}
		},
		Normalize: func(d TechnologyDraft) TechnologyDraft {
			d.Name = strings.TrimSpace(d.Name)
			d.IconURL = strings.TrimSpace(d.IconURL)
			return d
		},
		Rules: []controller.Rule[model.Technology, TechnologyDraft]{
			controller.Field[model.Technology](
				"name",
				func(d TechnologyDraft) string { return d.Name },
				controller.Required("name is required"),
				controller.MinLen(2, "name must be at least 2 characters"),
				controller.MaxLen(50, "name must be at most 50 characters"),
			),
			controller.UniqueName[model.Technology](
				"name",
				func(d TechnologyDraft) string { return d.Name },
				func(t model.Technology) string { return t.Name },
				func(t model.Technology) int64 { return t.ID },
				"a technology with that name already exists",
			),
			controller.Field[model.Technology](
				"category",
				func(d TechnologyDraft) string { return d.Category },
				controller.OneOf(technologyCategories(), "invalid category"),
			),
			controller.Field[model.Technology](
				"icon_url",
				func(d TechnologyDraft) string { return d.IconURL },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
		},
		Match: func(t model.Technology, term string) bool {
			return strings.Contains(strings.ToLower(t.Name), term)
		},
		Messages: controller.Messages{
			LoadFailed:   "failed to load technologies",
			SaveFailed:   "failed to save technology",
			DeleteFailed: "failed to delete technology",
			Created:      "technology created",
			Updated:      "technology updated",
			Deleted:      "technology deleted",
		},
	})
}

func technologyPayload(d TechnologyDraft) client.TechnologyRequest {
	return client.TechnologyRequest{
		Name:     strings.TrimSpace(d.Name),
		Category: model.TechnologyCategory(d.Category),
		IconURL:  optional(d.IconURL),
	}
}
