package controller

// Items returns a copy of the authoritative collection.
func (c *Controller[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// SetItems seeds the collection directly, e.g. from server-rendered state.
func (c *Controller[T, D]) SetItems(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.page = 0
}

// Loading reports whether a Load is in flight.
func (c *Controller[T, D]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Saving reports whether a Submit is in flight.
func (c *Controller[T, D]) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Deleting reports whether the item with id has a delete in flight.
func (c *Controller[T, D]) Deleting(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[id]
}

// Dialog returns the current create/edit dialog state.
func (c *Controller[T, D]) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// Draft returns the current form draft. Meaningful only while the dialog is
// open.
func (c *Controller[T, D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// FieldError returns the validation message for one field; empty means
// valid.
func (c *Controller[T, D]) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validation[field]
}

// Validation returns a copy of the per-field validation state.
func (c *Controller[T, D]) Validation() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.validation))
	for k, v := range c.validation {
		out[k] = v
	}
	return out
}

// Error returns the current error banner text, empty when none.
func (c *Controller[T, D]) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Success returns the current success banner text, empty when none.
func (c *Controller[T, D]) Success() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.successMsg
}

// ValidationMessage returns the submit-blocked summary banner, empty when
// none.
func (c *Controller[T, D]) ValidationMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validationMsg
}

// ConfirmTarget returns the pending delete target, nil when the confirm
// dialog is closed.
func (c *Controller[T, D]) ConfirmTarget() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.confirmOpen || c.confirmTarget == nil {
		return nil
	}
	t := *c.confirmTarget
	return &t
}
