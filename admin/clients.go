package admin

import (
	"context"
	"strings"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

// NewClientController builds the client-testimonials page controller.
func NewClientController(api *client.Client) *controller.Controller[model.Client, ClientDraft] {
	svc := api.Clients()
	return controller.New(controller.Config[model.Client, ClientDraft]{
		ID: func(c model.Client) int64 { return c.ID },
		Load: func(ctx context.Context) ([]model.Client, error) {
			return svc.ListMine(ctx)
		},
		Create: func(ctx context.Context, d ClientDraft) (*model.Client, error) {
			return svc.Create(ctx, clientPayload(d))
		},
		Update: func(ctx context.Context, id int64, d ClientDraft) (*model.Client, error) {
			return svc.Update(ctx, id, clientPayload(d))
		},
		Delete: func(ctx context.Context, id int64) error {
			return svc.Delete(ctx, id)
		},
		NewDraft: func() ClientDraft { return ClientDraft{} },
		DraftFrom: func(c model.Client) ClientDraft {
			return ClientDraft{
				Name:           c.Name,
				Company:        text(c.Company),
				Feedback:       text(c.Feedback),
				ClientPhotoURL: text(c.ClientPhotoURL),
				ProjectLink:    text(c.ProjectLink),
			}
		},
		Normalize: func(d ClientDraft) ClientDraft {
			d.Name = strings.TrimSpace(d.Name)
			d.Company = strings.TrimSpace(d.Company)
			d.Feedback = strings.TrimSpace(d.Feedback)
			d.ClientPhotoURL = strings.TrimSpace(d.ClientPhotoURL)
			d.ProjectLink = strings.TrimSpace(d.ProjectLink)
			return d
		},
		Rules: []controller.Rule[model.Client, ClientDraft]{
			controller.Field[model.Client](
				"name",
				func(d ClientDraft) string { return d.Name },
				controller.Required("name is required"),
				controller.MinLen(2, "name must be at least 2 characters"),
				controller.MaxLen(80, "name must be at most 80 characters"),
			),
			controller.Field[model.Client](
				"feedback",
				func(d ClientDraft) string { return d.Feedback },
				controller.MaxLen(1000, "feedback must be at most 1000 characters"),
			),
			controller.Field[model.Client](
				"client_photo_url",
				func(d ClientDraft) string { return d.ClientPhotoURL },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
			controller.Field[model.Client](
				"project_link",
				func(d ClientDraft) string { return d.ProjectLink },
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
		},
		Match: func(c model.Client, term string) bool {
			if strings.Contains(strings.ToLower(c.Name), term) {
				return true
			}
			return c.Company != nil && strings.Contains(strings.ToLower(*c.Company), term)
		},
		Messages: controller.Messages{
			LoadFailed:   "failed to load clients",
			SaveFailed:   "failed to save client",
			DeleteFailed: "failed to delete client",
			Created:      "client created",
			Updated:      "client updated",
			Deleted:      "client deleted",
		},
	})
}

func clientPayload(d ClientDraft) client.ClientRequest {
	return client.ClientRequest{
		Name:           strings.TrimSpace(d.Name),
		Company:        optional(d.Company),
		Feedback:       optional(d.Feedback),
		ClientPhotoURL: optional(d.ClientPhotoURL),
		ProjectLink:    optional(d.ProjectLink),
	}
}
