package controller

import (
	"context"
	"sync"
)

// Controller mediates between one resource collection, its backend service
// and transient dialog state. See package doc for the lifecycle.
type Controller[T any, D any] struct {
	cfg Config[T, D]

	mu       sync.Mutex
	items    []T
	loading  bool
	saving   bool
	deleting map[int64]bool

	dialog     Dialog
	draft      D
	validation map[string]string

	errMsg        string
	successMsg    string
	validationMsg string

	filterText string
	less       func(a, b T) bool
	page       int
	pageSize   int

	// loadSeq implements last-request-wins: only the newest Load commits.
	loadSeq uint64

	confirmOpen   bool
	confirmTarget *T
}

// Load replaces the collection with the server's current state. Overlapping
// calls are resolved last-request-wins via a generation token; a stale
// response never overwrites a newer one.
func (c *Controller[T, D]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.successMsg = ""
	c.loadSeq++
	gen := c.loadSeq
	c.mu.Unlock()

	items, err := c.cfg.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadSeq {
		// A newer Load is in flight or already committed.
		return err
	}
	c.loading = false
	if err != nil {
		c.errMsg = errText(err, c.cfg.Messages.LoadFailed)
		return err
	}
	c.items = items
	c.clampPage()
	return nil
}

// OpenCreate opens the dialog with empty defaults.
func (c *Controller[T, D]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = Dialog{Mode: DialogCreating}
	c.draft = c.cfg.NewDraft()
	c.resetDialogStatus()
	c.revalidate()
}

// OpenEdit opens the dialog with a copy of item. The item must currently be
// in the collection.
func (c *Controller[T, D]) OpenEdit(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.cfg.ID(item)
	if c.indexOf(id) < 0 {
		return ErrNotInCollection
	}
	c.dialog = Dialog{Mode: DialogEditing, EditingID: id}
	c.draft = c.cfg.DraftFrom(item)
	c.resetDialogStatus()
	c.revalidate()
	return nil
}

// CloseDialog discards the draft. Ignored while a save is in flight.
func (c *Controller[T, D]) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return
	}
	c.dialog = Dialog{Mode: DialogClosed}
	var zero D
	c.draft = zero
	c.validation = nil
}

// SetDraft replaces the working draft and recomputes every field's
// validation, including cross-field rules.
func (c *Controller[T, D]) SetDraft(d D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
	c.revalidate()
}

// UpdateDraft mutates the draft in place and recomputes validation.
func (c *Controller[T, D]) UpdateDraft(fn func(*D)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.draft)
	c.revalidate()
}

// ValidateAll recomputes every rule and reports submit eligibility.
func (c *Controller[T, D]) ValidateAll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revalidate()
	return c.valid()
}

// Submit sends the draft to the backend. With an invalid draft it records a
// warning, makes no network call and returns ErrInvalidDraft. On success the
// dialog closes and the collection absorbs the server's canonical record; on
// failure the dialog stays open with the error surfaced.
func (c *Controller[T, D]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.dialog.Mode == DialogClosed {
		c.mu.Unlock()
		return ErrNoDialog
	}
	c.errMsg = ""
	c.successMsg = ""
	c.validationMsg = ""
	c.revalidate()
	if !c.valid() {
		c.validationMsg = c.cfg.Messages.FixValidation
		c.mu.Unlock()
		return ErrInvalidDraft
	}
	c.saving = true
	mode := c.dialog
	payload := c.draft
	if c.cfg.Normalize != nil {
		payload = c.cfg.Normalize(payload)
	}
	c.mu.Unlock()

	var (
		result *T
		err    error
	)
	if mode.Mode == DialogEditing {
		result, err = c.cfg.Update(ctx, mode.EditingID, payload)
	} else {
		result, err = c.cfg.Create(ctx, payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	if err != nil {
		c.errMsg = errText(err, c.cfg.Messages.SaveFailed)
		return err
	}

	if mode.Mode == DialogEditing {
		if i := c.indexOf(c.cfg.ID(*result)); i >= 0 {
			c.items[i] = *result
		}
		c.successMsg = c.cfg.Messages.Updated
	} else {
		c.items = append([]T{*result}, c.items...)
		c.successMsg = c.cfg.Messages.Created
	}
	c.dialog = Dialog{Mode: DialogClosed}
	var zero D
	c.draft = zero
	c.validation = nil
	return nil
}

// RequestDelete opens the confirmation dialog for item. Nothing is deleted
// until ConfirmDelete.
func (c *Controller[T, D]) RequestDelete(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := item
	c.confirmTarget = &t
	c.confirmOpen = true
}

// CancelDelete closes the confirmation dialog. Ignored while the current
// target's delete is in flight.
func (c *Controller[T, D]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmTarget != nil && c.deleting[c.cfg.ID(*c.confirmTarget)] {
		return
	}
	c.confirmOpen = false
	c.confirmTarget = nil
}

// ConfirmDelete performs the delete for the confirmed target. The item
// leaves the collection only after the backend confirms; the confirmation
// dialog closes regardless of outcome. Deletes of different items may run
// concurrently.
func (c *Controller[T, D]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.confirmTarget == nil {
		c.mu.Unlock()
		return nil
	}
	id := c.cfg.ID(*c.confirmTarget)
	c.deleting[id] = true
	c.errMsg = ""
	c.successMsg = ""
	c.mu.Unlock()

	err := c.cfg.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deleting, id)
	c.confirmOpen = false
	c.confirmTarget = nil
	if err != nil {
		c.errMsg = errText(err, c.cfg.Messages.DeleteFailed)
		return err
	}
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.successMsg = c.cfg.Messages.Deleted
	c.clampPage()
	return nil
}

// locked helpers

func (c *Controller[T, D]) indexOf(id int64) int {
	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Controller[T, D]) revalidate() {
	if c.dialog.Mode == DialogClosed {
		c.validation = nil
		return
	}
	v := make(map[string]string, len(c.cfg.Rules))
	for _, r := range c.cfg.Rules {
		if v[r.Field] != "" {
			continue // first failing rule per field wins
		}
		v[r.Field] = r.Check(c.draft, c.items, c.dialog.EditingID)
	}
	c.validation = v
}

func (c *Controller[T, D]) valid() bool {
	for _, msg := range c.validation {
		if msg != "" {
			return false
		}
	}
	return true
}

func (c *Controller[T, D]) resetDialogStatus() {
	c.errMsg = ""
	c.successMsg = ""
	c.validationMsg = ""
}
