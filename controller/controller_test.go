package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64
	Name string
	URL  string
}

type widgetDraft struct {
	Name string
	URL  string
}

// fakeBackend counts calls and serves canned results.
type fakeBackend struct {
	mu         sync.Mutex
	items      []widget
	nextID     int64
	createErr  error
	updateErr  error
	deleteErr  error
	createHits int
	updateHits int
	deleteHits int
}

func (b *fakeBackend) load(ctx context.Context) ([]widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]widget, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *fakeBackend) create(ctx context.Context, d widgetDraft) (*widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createHits++
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.nextID++
	w := widget{ID: b.nextID, Name: d.Name, URL: d.URL}
	return &w, nil
}

func (b *fakeBackend) update(ctx context.Context, id int64, d widgetDraft) (*widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updateHits++
	if b.updateErr != nil {
		return nil, b.updateErr
	}
	w := widget{ID: id, Name: d.Name, URL: d.URL}
	return &w, nil
}

func (b *fakeBackend) delete(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteHits++
	return b.deleteErr
}

func widgetConfig(b *fakeBackend) Config[widget, widgetDraft] {
	return Config[widget, widgetDraft]{
		ID:        func(w widget) int64 { return w.ID },
		Load:      b.load,
		Create:    b.create,
		Update:    b.update,
		Delete:    b.delete,
		NewDraft:  func() widgetDraft { return widgetDraft{} },
		DraftFrom: func(w widget) widgetDraft { return widgetDraft{Name: w.Name, URL: w.URL} },
		Normalize: func(d widgetDraft) widgetDraft {
			d.Name = strings.TrimSpace(d.Name)
			d.URL = strings.TrimSpace(d.URL)
			return d
		},
		Rules: []Rule[widget, widgetDraft]{
			Field[widget, widgetDraft]("name", func(d widgetDraft) string { return d.Name },
				Required("name is required"), MinLen(2, "name too short"), MaxLen(50, "name too long")),
			Field[widget, widgetDraft]("url", func(d widgetDraft) string { return d.URL },
				URL("must be an http(s) url")),
			UniqueName[widget, widgetDraft]("name",
				func(d widgetDraft) string { return d.Name },
				func(w widget) string { return w.Name },
				func(w widget) int64 { return w.ID },
				"name already exists"),
		},
		Match: func(w widget, term string) bool {
			return strings.Contains(strings.ToLower(w.Name), term)
		},
		PageSize: 3,
	}
}

func seeded(n int) []widget {
	items := make([]widget, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, widget{ID: int64(i), Name: fmt.Sprintf("widget-%02d", i)})
	}
	return items
}

func TestLoadReplacesCollection(t *testing.T) {
	b := &fakeBackend{items: seeded(4), nextID: 4}
	c := New(widgetConfig(b))

	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Items(), 4)
	assert.False(t, c.Loading())
}

func TestLoadLastRequestWins(t *testing.T) {
	release := make(chan struct{})
	inFlight := make(chan struct{})
	var calls int
	var mu sync.Mutex

	cfg := widgetConfig(&fakeBackend{})
	cfg.Load = func(ctx context.Context) ([]widget, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(inFlight)
			<-release // stall the first request until the second commits
			return []widget{{ID: 99, Name: "stale"}}, nil
		}
		return []widget{{ID: 1, Name: "fresh"}}, nil
	}
	c := New(cfg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Load(context.Background())
	}()
	<-inFlight

	require.NoError(t, c.Load(context.Background()))
	close(release)
	<-done

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].Name, "stale response must not overwrite the newer one")
}

func TestOpenEditRequiresCollectionMembership(t *testing.T) {
	b := &fakeBackend{items: seeded(2), nextID: 2}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	assert.ErrorIs(t, c.OpenEdit(widget{ID: 42, Name: "ghost"}), ErrNotInCollection)

	require.NoError(t, c.OpenEdit(c.Items()[0]))
	assert.Equal(t, DialogEditing, c.Dialog().Mode)
	assert.Equal(t, int64(1), c.Dialog().EditingID)
	assert.Equal(t, "widget-01", c.Draft().Name)
}

func TestSubmitInvalidDraftMakesNoNetworkCall(t *testing.T) {
	b := &fakeBackend{}
	c := New(widgetConfig(b))
	c.OpenCreate()
	c.SetDraft(widgetDraft{Name: ""})

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Zero(t, b.createHits, "invalid draft must not reach the backend")
	assert.Equal(t, DialogCreating, c.Dialog().Mode, "dialog stays open")
	assert.NotEmpty(t, c.ValidationMessage())
	assert.NotEmpty(t, c.FieldError("name"))
}

func TestSubmitWithoutDialog(t *testing.T) {
	c := New(widgetConfig(&fakeBackend{}))
	assert.ErrorIs(t, c.Submit(context.Background()), ErrNoDialog)
}

func TestSubmitCreatePrependsServerRecord(t *testing.T) {
	b := &fakeBackend{items: seeded(2), nextID: 2}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	c.OpenCreate()
	c.SetDraft(widgetDraft{Name: "  brand new  "})
	require.NoError(t, c.Submit(context.Background()))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "brand new", items[0].Name, "created item is prepended, normalized by the server payload")
	assert.Equal(t, int64(3), items[0].ID, "collection holds the server record, not the draft")
	assert.Equal(t, DialogClosed, c.Dialog().Mode)
	assert.NotEmpty(t, c.Success())
}

func TestSubmitUpdateReplacesById(t *testing.T) {
	b := &fakeBackend{items: seeded(3), nextID: 3}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.OpenEdit(c.Items()[1])) // ID 2
	c.UpdateDraft(func(d *widgetDraft) { d.Name = "renamed" })
	require.NoError(t, c.Submit(context.Background()))

	items := c.Items()
	require.Len(t, items, 3, "update must not change the collection size")
	assert.Equal(t, "renamed", items[1].Name)
	assert.Equal(t, int64(2), items[1].ID)
}

type fakeAPIError struct{ msg string }

func (e *fakeAPIError) Error() string      { return "api error (status 500): " + e.msg }
func (e *fakeAPIError) APIMessage() string { return e.msg }

func TestSubmitFailureKeepsDialogOpen(t *testing.T) {
	b := &fakeBackend{createErr: &fakeAPIError{msg: "storage unavailable"}}
	c := New(widgetConfig(b))
	c.OpenCreate()
	c.SetDraft(widgetDraft{Name: "valid name"})

	err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, DialogCreating, c.Dialog().Mode)
	assert.Equal(t, "storage unavailable", c.Error(), "banner shows the normalized message, not Error()")
	assert.Empty(t, c.Items())
}

func TestDeleteTwoStepFlow(t *testing.T) {
	b := &fakeBackend{items: seeded(3), nextID: 3}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))
	target := c.Items()[1]

	// Nothing leaves the collection before confirmation.
	c.RequestDelete(target)
	require.NotNil(t, c.ConfirmTarget())
	assert.Equal(t, target.ID, c.ConfirmTarget().ID)
	assert.Len(t, c.Items(), 3)
	assert.Zero(t, b.deleteHits)

	c.CancelDelete()
	assert.Nil(t, c.ConfirmTarget())
	assert.Len(t, c.Items(), 3)

	c.RequestDelete(target)
	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, 1, b.deleteHits)
	assert.Len(t, c.Items(), 2)
	for _, it := range c.Items() {
		assert.NotEqual(t, target.ID, it.ID)
	}
	assert.Nil(t, c.ConfirmTarget(), "confirm dialog closes after the delete")
}

func TestDeleteFailureKeepsItem(t *testing.T) {
	b := &fakeBackend{items: seeded(2), nextID: 2, deleteErr: errors.New("boom")}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	c.RequestDelete(c.Items()[0])
	require.Error(t, c.ConfirmDelete(context.Background()))
	assert.Len(t, c.Items(), 2, "item leaves the collection only after the backend confirms")
	assert.Nil(t, c.ConfirmTarget(), "confirm dialog closes regardless of outcome")
	assert.NotEmpty(t, c.Error())
}

func TestConfirmDeleteWithoutTargetIsNoop(t *testing.T) {
	b := &fakeBackend{items: seeded(1), nextID: 1}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Zero(t, b.deleteHits)
	assert.Len(t, c.Items(), 1)
}

func TestViewFilterSortPaginate(t *testing.T) {
	b := &fakeBackend{items: seeded(7), nextID: 7}
	c := New(widgetConfig(b)) // page size 3
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, 7, c.FilteredCount())
	assert.Len(t, c.View(), 3)

	c.SetPage(2)
	assert.Len(t, c.View(), 1, "last page holds the remainder")

	c.SetPage(5)
	assert.Empty(t, c.View(), "page past the end yields an empty view")

	// Filter change resets pagination.
	c.SetPage(2)
	c.SetFilter("widget-0")
	assert.Equal(t, 0, c.Page())
	assert.Equal(t, 7, c.FilteredCount())
	c.SetFilter("widget-07")
	assert.Equal(t, 1, c.FilteredCount())
	require.Len(t, c.View(), 1)
	assert.Equal(t, "widget-07", c.View()[0].Name)

	// No match.
	c.SetFilter("zzz")
	assert.Zero(t, c.FilteredCount())
	assert.Empty(t, c.View())

	// Sort applies before pagination.
	c.SetFilter("")
	c.SetSort(func(a, bb widget) bool { return a.ID > bb.ID })
	view := c.View()
	require.Len(t, view, 3)
	assert.Equal(t, int64(7), view[0].ID)
}

func TestSetSameFilterKeepsPage(t *testing.T) {
	b := &fakeBackend{items: seeded(7), nextID: 7}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	c.SetFilter("widget")
	c.SetPage(1)
	c.SetFilter("widget") // unchanged term
	assert.Equal(t, 1, c.Page())
}

func TestDeleteClampsPage(t *testing.T) {
	b := &fakeBackend{items: seeded(4), nextID: 4}
	c := New(widgetConfig(b)) // page size 3: pages 0 and 1
	require.NoError(t, c.Load(context.Background()))

	c.SetPage(1)
	require.Len(t, c.View(), 1)

	c.RequestDelete(c.Items()[3])
	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, 0, c.Page(), "page clamps back when the last page empties")
	assert.Len(t, c.View(), 3)
}

func TestUniqueNameExcludesEditedItem(t *testing.T) {
	b := &fakeBackend{items: []widget{{ID: 1, Name: "React"}, {ID: 2, Name: "Vue"}}, nextID: 2}
	c := New(widgetConfig(b))
	require.NoError(t, c.Load(context.Background()))

	// Creating with a case-insensitive collision fails.
	c.OpenCreate()
	c.SetDraft(widgetDraft{Name: "  react "})
	assert.Equal(t, "name already exists", c.FieldError("name"))

	// Editing an item keeps its own name valid.
	c.CloseDialog()
	require.NoError(t, c.OpenEdit(c.Items()[0]))
	c.UpdateDraft(func(d *widgetDraft) { d.Name = "REACT" })
	assert.Empty(t, c.FieldError("name"))

	// But colliding with a different item still fails.
	c.UpdateDraft(func(d *widgetDraft) { d.Name = "vue" })
	assert.Equal(t, "name already exists", c.FieldError("name"))
}

func TestCloseDialogClearsDraftAndValidation(t *testing.T) {
	c := New(widgetConfig(&fakeBackend{}))
	c.OpenCreate()
	c.SetDraft(widgetDraft{Name: "x"})
	assert.NotEmpty(t, c.FieldError("name")) // min length

	c.CloseDialog()
	assert.Equal(t, DialogClosed, c.Dialog().Mode)
	assert.Empty(t, c.Draft().Name)
	assert.Empty(t, c.Validation())
}
