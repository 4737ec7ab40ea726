package admin

import (
	"context"
	"strings"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

// NewSocialController builds the social-links page controller. Links sort by
// their display order.
func NewSocialController(api *client.Client) *controller.Controller[model.Social, SocialDraft] {
	svc := api.Socials()
	return controller.New(controller.Config[model.Social, SocialDraft]{
		ID: func(s model.Social) int64 { return s.ID },
		Load: func(ctx context.Context) ([]model.Social, error) {
			return svc.ListMine(ctx)
		},
		Create: func(ctx context.Context, d SocialDraft) (*model.Social, error) {
			return svc.Create(ctx, socialPayload(d))
		},
		Update: func(ctx context.Context, id int64, d SocialDraft) (*model.Social, error) {
			return svc.Update(ctx, id, socialPayload(d))
		},
		Delete: func(ctx context.Context, id int64) error {
			return svc.Delete(ctx, id)
		},
		NewDraft: func() SocialDraft { return SocialDraft{} },
		DraftFrom: func(s model.Social) SocialDraft {
			return SocialDraft{
				Platform: s.Platform,
				URL:      s.URL,
				IconName: text(s.IconName),
				Order:    s.Order,
			}
		},
		Normalize: func(d SocialDraft) SocialDraft {
			d.Platform = strings.TrimSpace(d.Platform)
			d.URL = strings.TrimSpace(d.URL)
			d.IconName = strings.TrimSpace(d.IconName)
			return d
		},
		Rules: []controller.Rule[model.Social, SocialDraft]{
			controller.Field[model.Social](
				"platform",
				func(d SocialDraft) string { return d.Platform },
				controller.Required("platform is required"),
				controller.MaxLen(50, "platform must be at most 50 characters"),
			),
			controller.UniqueName[model.Social](
				"platform",
				func(d SocialDraft) string { return d.Platform },
				func(s model.Social) string { return s.Platform },
				func(s model.Social) int64 { return s.ID },
				"a link for that platform already exists",
			),
			controller.Field[model.Social](
				"url",
				func(d SocialDraft) string { return d.URL },
				controller.Required("URL is required"),
				controller.MaxLen(300, "URL must be at most 300 characters"),
				controller.URL("must be a valid http(s) URL"),
			),
			controller.IntRange[model.Social](
				"order",
				func(d SocialDraft) int { return d.Order },
				0, 99,
				"order must be between 0 and 99",
			),
		},
		Match: func(s model.Social, term string) bool {
			return strings.Contains(strings.ToLower(s.Platform), term)
		},
		Less: func(a, b model.Social) bool {
			if a.Order == b.Order {
				return a.ID < b.ID
			}
			return a.Order < b.Order
		},
		Messages: controller.Messages{
			LoadFailed:   "failed to load social links",
			SaveFailed:   "failed to save social link",
			DeleteFailed: "failed to delete social link",
			Created:      "social link created",
			Updated:      "social link updated",
			Deleted:      "social link deleted",
		},
	})
}

func socialPayload(d SocialDraft) client.SocialRequest {
	return client.SocialRequest{
		Platform: strings.TrimSpace(d.Platform),
		URL:      strings.TrimSpace(d.URL),
		IconName: optional(d.IconName),
		Order:    d.Order,
	}
}
