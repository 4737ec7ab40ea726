package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/client"
	"folio/controller"
	"folio/internal/model"
)

// experienceServer is a minimal in-memory backend for the work-experience
// endpoints the controller drives.
type experienceServer struct {
	mu     sync.Mutex
	nextID int64
	items  []model.WorkExperience
}

func (s *experienceServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/experience/me", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.items)
	})
	mux.HandleFunc("/experience", func(w http.ResponseWriter, r *http.Request) {
		var req client.ExperienceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextID++
		item := model.WorkExperience{
			ID:          s.nextID,
			ProfileID:   1,
			JobTitle:    req.JobTitle,
			Company:     req.Company,
			Location:    req.Location,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Description: req.Description,
		}
		s.items = append(s.items, item)
		writeJSON(w, http.StatusCreated, item)
	})
	mux.HandleFunc("/experience/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/experience/"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Work experience not found"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		idx := -1
		for i := range s.items {
			if s.items[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Work experience not found"})
			return
		}
		switch r.Method {
		case http.MethodPut:
			var req client.ExperienceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid body"})
				return
			}
			item := s.items[idx]
			item.JobTitle = req.JobTitle
			item.Company = req.Company
			item.Location = req.Location
			item.StartDate = req.StartDate
			item.EndDate = req.EndDate
			item.Description = req.Description
			s.items[idx] = item
			writeJSON(w, http.StatusOK, item)
		case http.MethodDelete:
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"detail": "Work experience deleted"})
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "method not allowed"})
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newExperienceFixture(t *testing.T) (*controller.Controller[model.WorkExperience, ExperienceDraft], *experienceServer) {
	t.Helper()
	backend := &experienceServer{}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	api, err := client.New(server.URL, client.NewMemorySession())
	require.NoError(t, err)
	require.NoError(t, api.Session().Save("test-token", nil))
	return NewExperienceController(api), backend
}

func TestExperienceCreateEditDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, backend := newExperienceFixture(t)
	require.NoError(t, c.Load(ctx))
	assert.Empty(t, c.Items())

	c.OpenCreate()
	c.SetDraft(ExperienceDraft{
		JobTitle:  "  Backend Engineer ",
		Company:   "Initech",
		Location:  "",
		StartDate: "2022-03-01",
		EndDate:   "",
	})
	require.NoError(t, c.Submit(ctx))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Backend Engineer", items[0].JobTitle, "payload is trimmed before it leaves the form")
	assert.Nil(t, items[0].Location, "empty optional fields are stored as null")
	assert.Nil(t, items[0].EndDate)
	assert.Equal(t, "work experience created", c.Success())

	require.NoError(t, c.OpenEdit(items[0]))
	assert.Equal(t, "Backend Engineer", c.Draft().JobTitle)
	c.UpdateDraft(func(d *ExperienceDraft) { d.EndDate = "2024-06-30" })
	require.NoError(t, c.Submit(ctx))

	items = c.Items()
	require.Len(t, items, 1)
	require.NotNil(t, items[0].EndDate)
	assert.Equal(t, "2024-06-30", *items[0].EndDate)

	c.RequestDelete(items[0])
	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Empty(t, c.Items())
	backend.mu.Lock()
	assert.Empty(t, backend.items, "delete reaches the backend")
	backend.mu.Unlock()
}

func TestExperienceEndDateCannotPrecedeStart(t *testing.T) {
	ctx := context.Background()
	c, backend := newExperienceFixture(t)
	require.NoError(t, c.Load(ctx))

	c.OpenCreate()
	c.SetDraft(ExperienceDraft{
		JobTitle:  "Intern",
		Company:   "Globex",
		StartDate: "2023-05-01",
		EndDate:   "2023-01-01",
	})
	assert.Equal(t, "end date cannot precede start date", c.FieldError("end_date"))
	assert.ErrorIs(t, c.Submit(ctx), controller.ErrInvalidDraft)
	backend.mu.Lock()
	assert.Empty(t, backend.items)
	backend.mu.Unlock()

	// Fixing the start date clears the cross-field error.
	c.UpdateDraft(func(d *ExperienceDraft) { d.StartDate = "2022-05-01" })
	assert.Empty(t, c.FieldError("end_date"))
	require.NoError(t, c.Submit(ctx))
}

func TestExperienceDefaultSortNewestFirst(t *testing.T) {
	ctx := context.Background()
	c, _ := newExperienceFixture(t)
	require.NoError(t, c.Load(ctx))

	for _, start := range []string{"2019-01-01", "2023-09-01", "2021-06-15"} {
		c.OpenCreate()
		c.SetDraft(ExperienceDraft{JobTitle: "Engineer", Company: "Co " + start, StartDate: start})
		require.NoError(t, c.Submit(ctx))
	}

	view := c.View()
	require.Len(t, view, 3)
	assert.Equal(t, "2023-09-01", view[0].StartDate)
	assert.Equal(t, "2021-06-15", view[1].StartDate)
	assert.Equal(t, "2019-01-01", view[2].StartDate)
}

func TestProfileFormStartsInCreateModeOn404(t *testing.T) {
	ctx := context.Background()
	var created *model.Profile
	var mu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("/profile/me", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if created == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Profile not found"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, created)
		case http.MethodPut:
			var req client.ProfileRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			created.Name = req.Name
			created.LastName = req.LastName
			created.CurrentTitle = req.CurrentTitle
			writeJSON(w, http.StatusOK, created)
		}
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		var req client.ProfileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		defer mu.Unlock()
		created = &model.Profile{
			ID: 1, UserID: 1,
			Name:         req.Name,
			LastName:     req.LastName,
			Email:        "ada@example.com",
			CurrentTitle: req.CurrentTitle,
		}
		writeJSON(w, http.StatusCreated, created)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	api, err := client.New(server.URL, client.NewMemorySession())
	require.NoError(t, err)
	require.NoError(t, api.Session().Save("test-token", nil))

	f := NewProfileForm(api)
	require.NoError(t, f.Load(ctx), "a missing profile is not a load error")
	assert.False(t, f.Exists())

	// Required fields block the save.
	require.ErrorIs(t, f.Save(ctx), controller.ErrInvalidDraft)
	assert.Equal(t, "name is required", f.FieldError("name"))

	f.SetDraft(ProfileDraft{Name: "Ada", LastName: "Lovelace", CurrentTitle: "Engineer"})
	require.NoError(t, f.Save(ctx))
	assert.True(t, f.Exists())
	assert.Equal(t, "profile created", f.Success())

	// Subsequent saves go through update.
	d := f.Draft()
	d.CurrentTitle = "Principal Engineer"
	f.SetDraft(d)
	require.NoError(t, f.Save(ctx))
	assert.Equal(t, "profile updated", f.Success())
	assert.Equal(t, "Principal Engineer", f.Draft().CurrentTitle)
}

func TestTechnologyControllerRejectsDuplicateNames(t *testing.T) {
	ctx := context.Background()
	mux := http.NewServeMux()
	mux.HandleFunc("/technologies/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []model.Technology{
			{ID: 1, ProfileID: 1, Name: "PostgreSQL", Category: model.TechDatabase},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	api, err := client.New(server.URL, client.NewMemorySession())
	require.NoError(t, err)
	require.NoError(t, api.Session().Save("test-token", nil))

	c := NewTechnologyController(api)
	require.NoError(t, c.Load(ctx))

	c.OpenCreate()
	c.UpdateDraft(func(d *TechnologyDraft) {
		d.Name = "postgresql"
		d.Category = string(model.TechDatabase)
	})
	assert.NotEmpty(t, c.FieldError("name"), "names are unique case-insensitively")
	assert.ErrorIs(t, c.Submit(ctx), controller.ErrInvalidDraft)
}
