package admin

import (
	"context"
	"strings"
	"sync"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

// ProfileForm drives the profile page. The profile is a single record per
// user, so instead of a collection controller it holds one draft and decides
// between create and update from whether a profile existed at load time: a
// 404 from the backend switches the form into create mode.
type ProfileForm struct {
	svc *client.ProfileService

	mu         sync.Mutex
	existing   *model.Profile
	draft      ProfileDraft
	validation map[string]string
	loading    bool
	saving     bool
	errMsg     string
	successMsg string
}

// NewProfileForm builds the profile form.
func NewProfileForm(api *client.Client) *ProfileForm {
	return &ProfileForm{svc: api.Profile()}
}

// Load fetches the profile. A 404 is not an error: the form starts empty in
// create mode.
func (f *ProfileForm) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.errMsg = ""
	f.successMsg = ""
	f.mu.Unlock()

	profile, err := f.svc.Me(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	switch {
	case err == nil:
		f.existing = profile
		f.draft = profileDraftFrom(profile)
	case client.IsNotFound(err):
		f.existing = nil
		f.draft = ProfileDraft{}
	default:
		f.errMsg = err.Error()
		return err
	}
	f.revalidate()
	return nil
}

// SetDraft replaces the draft and recomputes validation.
func (f *ProfileForm) SetDraft(d ProfileDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
	f.revalidate()
}

// Save creates the profile when none existed at load time, updates it
// otherwise. An invalid draft blocks the call.
func (f *ProfileForm) Save(ctx context.Context) error {
	f.mu.Lock()
	f.errMsg = ""
	f.successMsg = ""
	f.revalidate()
	for _, msg := range f.validation {
		if msg != "" {
			f.mu.Unlock()
			return controller.ErrInvalidDraft
		}
	}
	f.saving = true
	creating := f.existing == nil
	payload := profilePayload(f.draft)
	f.mu.Unlock()

	var (
		saved *model.Profile
		err   error
	)
	if creating {
		saved, err = f.svc.Create(ctx, payload)
	} else {
		saved, err = f.svc.UpdateMe(ctx, payload)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
	if err != nil {
		f.errMsg = err.Error()
		return err
	}
	f.existing = saved
	f.draft = profileDraftFrom(saved)
	if creating {
		f.successMsg = "profile created"
	} else {
		f.successMsg = "profile updated"
	}
	f.revalidate()
	return nil
}

// Exists reports whether a profile record exists server-side.
func (f *ProfileForm) Exists() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing != nil
}

// Draft returns the current form state.
func (f *ProfileForm) Draft() ProfileDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// FieldError returns the validation message for one field.
func (f *ProfileForm) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validation[field]
}

// Loading reports whether a Load is in flight.
func (f *ProfileForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Saving reports whether a Save is in flight.
func (f *ProfileForm) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saving
}

// Error returns the current error banner text.
func (f *ProfileForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Success returns the current success banner text.
func (f *ProfileForm) Success() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.successMsg
}

var profileChecks = map[string][]controller.StringCheck{
	"name": {
		controller.Required("name is required"),
		controller.MaxLen(80, "name must be at most 80 characters"),
	},
	"last_name": {
		controller.Required("last name is required"),
		controller.MaxLen(80, "last name must be at most 80 characters"),
	},
	"current_title": {controller.MaxLen(120, "title must be at most 120 characters")},
	"bio_summary":   {controller.MaxLen(2000, "bio must be at most 2000 characters")},
	"phone":         {controller.MaxLen(30, "phone must be at most 30 characters")},
	"photo_url": {
		controller.MaxLen(300, "URL must be at most 300 characters"),
		controller.URL("must be a valid http(s) URL"),
	},
	"cv_url": {
		controller.MaxLen(300, "URL must be at most 300 characters"),
		controller.URL("must be a valid http(s) URL"),
	},
}

func (f *ProfileForm) revalidate() {
	values := map[string]string{
		"name":          f.draft.Name,
		"last_name":     f.draft.LastName,
		"current_title": f.draft.CurrentTitle,
		"bio_summary":   f.draft.BioSummary,
		"phone":         f.draft.Phone,
		"photo_url":     f.draft.PhotoURL,
		"cv_url":        f.draft.CVURL,
	}
	v := make(map[string]string, len(profileChecks))
	for field, checks := range profileChecks {
		value := strings.TrimSpace(values[field])
		for _, check := range checks {
			if msg := check(value); msg != "" {
				v[field] = msg
				break
			}
		}
	}
	f.validation = v
}

func profileDraftFrom(p *model.Profile) ProfileDraft {
	return ProfileDraft{
		Name:         p.Name,
		LastName:     p.LastName,
		CurrentTitle: text(p.CurrentTitle),
		BioSummary:   text(p.BioSummary),
		Location:     text(p.Location),
		Phone:        text(p.Phone),
		PhotoURL:     text(p.PhotoURL),
		Profile:      text(p.Profile),
		CVURL:        text(p.CVURL),
	}
}

func profilePayload(d ProfileDraft) client.ProfileRequest {
	return client.ProfileRequest{
		Name:         strings.TrimSpace(d.Name),
		LastName:     strings.TrimSpace(d.LastName),
		CurrentTitle: optional(d.CurrentTitle),
		BioSummary:   optional(d.BioSummary),
		Location:     optional(d.Location),
		Phone:        optional(d.Phone),
		PhotoURL:     optional(d.PhotoURL),
		Profile:      optional(d.Profile),
		CVURL:        optional(d.CVURL),
	}
}
