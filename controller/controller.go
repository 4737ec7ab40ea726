// Package controller implements the resource interaction lifecycle shared by
// every admin view: an authoritative in-memory collection, a dialog-driven
// create/edit draft with field validation, two-step deletion, and a derived
// filter/sort/paginate view.
//
// A Controller is safe for concurrent use; backend calls run outside the
// lock so slow responses never freeze readers.
package controller

import (
	"context"
	"errors"
)

// ErrInvalidDraft is returned by Submit when validation fails. No backend
// call is made in that case.
var ErrInvalidDraft = errors.New("draft has validation errors")

// ErrNoDialog is returned by Submit when no create/edit dialog is open.
var ErrNoDialog = errors.New("no dialog open")

// ErrNotInCollection is returned by OpenEdit for an item the controller does
// not currently hold.
var ErrNotInCollection = errors.New("item not in collection")

// DialogMode tags the create/edit dialog state.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreating
	DialogEditing
)

// Dialog is the tagged dialog state. EditingID is meaningful only in
// DialogEditing mode, eliminating the open-with-no-target combination.
type Dialog struct {
	Mode      DialogMode
	EditingID int64
}

// Rule validates one draft field. It sees the whole draft (for cross-field
// rules), the current collection (for uniqueness) and the id being edited
// (zero when creating). An empty result means the field is valid.
type Rule[T, D any] struct {
	Field string
	Check func(draft D, items []T, editingID int64) string
}

// Config wires a Controller to one resource type. T is the server record, D
// the mutable form draft.
type Config[T, D any] struct {
	// ID extracts the backend-assigned identifier.
	ID func(T) int64

	// Backend operations. Load replaces the collection wholesale; Create and
	// Update return the canonical server record; Delete confirms removal.
	Load   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, draft D) (*T, error)
	Update func(ctx context.Context, id int64, draft D) (*T, error)
	Delete func(ctx context.Context, id int64) error

	// NewDraft produces the empty-create defaults; DraftFrom copies an
	// existing record into a draft, coercing nil optionals to empty strings.
	NewDraft  func() D
	DraftFrom func(T) D

	// Normalize builds the submit payload from the draft (trimming, empty
	// optional to nil). Optional.
	Normalize func(D) D

	Rules []Rule[T, D]

	// Match is the filter predicate against a lowercased search term.
	// Optional; nil disables text filtering.
	Match func(item T, term string) bool

	// Less is the default sort order. Optional; nil preserves server order.
	Less func(a, b T) bool

	// PageSize defaults to 6 when zero.
	PageSize int

	// Messages override the default status banners. Zero values fall back
	// to generic English text.
	Messages Messages
}

// Messages are the user-visible status strings a controller emits.
type Messages struct {
	LoadFailed    string
	SaveFailed    string
	DeleteFailed  string
	Created       string
	Updated       string
	Deleted       string
	FixValidation string
}

func (m Messages) withDefaults() Messages {
	def := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	}
	return Messages{
		LoadFailed:    def(m.LoadFailed, "failed to load items"),
		SaveFailed:    def(m.SaveFailed, "failed to save item"),
		DeleteFailed:  def(m.DeleteFailed, "failed to delete item"),
		Created:       def(m.Created, "item created"),
		Updated:       def(m.Updated, "item updated"),
		Deleted:       def(m.Deleted, "item deleted"),
		FixValidation: def(m.FixValidation, "fix the highlighted fields before saving"),
	}
}

// messenger lets the controller surface an APIError's message instead of the
// wrapped Error() text. Satisfied by client.APIError.
type messenger interface {
	APIMessage() string
}

func errText(err error, fallback string) string {
	var m messenger
	if errors.As(err, &m) && m.APIMessage() != "" {
		return m.APIMessage()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// New builds a controller. The zero collection is empty until Load runs.
func New[T, D any](cfg Config[T, D]) *Controller[T, D] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}
	cfg.Messages = cfg.Messages.withDefaults()
	c := &Controller[T, D]{
		cfg:      cfg,
		deleting: make(map[int64]bool),
		pageSize: cfg.PageSize,
		less:     cfg.Less,
	}
	return c
}
