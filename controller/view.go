package controller

import (
	"sort"
	"strings"
)

// View returns the derived page: filter, then sort, then paginate, in that
// fixed order. The slice is a copy; mutating it does not touch the
// collection.
func (c *Controller[T, D]) View() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.filtered()
	if c.less != nil {
		sort.SliceStable(filtered, func(i, j int) bool { return c.less(filtered[i], filtered[j]) })
	}
	start := c.page * c.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// FilteredCount returns how many items match the current filter, across all
// pages.
func (c *Controller[T, D]) FilteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filtered())
}

// SetFilter updates the search term. Any change resets to page 0 so the page
// index can never point past the new filtered length.
func (c *Controller[T, D]) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text == c.filterText {
		return
	}
	c.filterText = text
	c.page = 0
}

// SetSort replaces the active sort order and resets to page 0.
func (c *Controller[T, D]) SetSort(less func(a, b T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.less = less
	c.page = 0
}

// SetPage moves to page n (clamped at 0).
func (c *Controller[T, D]) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	c.page = n
}

// SetPageSize changes the page size and resets to page 0.
func (c *Controller[T, D]) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.page = 0
}

// Page returns the current page index.
func (c *Controller[T, D]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// filtered applies the text filter. Callers hold the lock.
func (c *Controller[T, D]) filtered() []T {
	term := strings.ToLower(strings.TrimSpace(c.filterText))
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if term == "" || c.cfg.Match == nil || c.cfg.Match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// clampPage pulls the page index back in range after the collection shrinks.
// Callers hold the lock.
func (c *Controller[T, D]) clampPage() {
	n := len(c.filtered())
	maxPage := 0
	if n > 0 {
		maxPage = (n - 1) / c.pageSize
	}
	if c.page > maxPage {
		c.page = maxPage
	}
}
