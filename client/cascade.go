package client

import (
	"sync"

	"github.com/silsila-idreesia/portal/listing"
)

// Cascade models a dependent select, e.g. the mehfil picker under a zone
// picker: its options are restricted to those belonging to the chosen
// parent, it stays disabled until a parent is chosen, and its selection is
// cleared whenever the parent changes. Identifier comparison tolerates the
// string and numeric forms different endpoints produce.
type Cascade[T any] struct {
	mu sync.Mutex

	parentID func(T) any
	parent   any
	selected any
}

// NewCascade creates a cascade whose options expose their parent id
// through parentID.
func NewCascade[T any](parentID func(T) any) *Cascade[T] {
	return &Cascade[T]{parentID: parentID}
}

// SetParent chooses a parent, clearing the dependent selection when the
// parent actually changed. A nil or empty id clears the parent.
func (c *Cascade[T]) SetParent(id any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if listing.SameID(c.parent, id) {
		return
	}

	c.parent = id
	c.selected = nil
}

// Parent returns the chosen parent id, or nil.
func (c *Cascade[T]) Parent() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.parent
}

// SetSelected chooses a dependent option. Selections are ignored while no
// parent is chosen.
func (c *Cascade[T]) SetSelected(id any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if listing.NormalizeID(c.parent) == "" {
		return
	}

	c.selected = id
}

// Selected returns the dependent selection, or nil.
func (c *Cascade[T]) Selected() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.selected
}

// Enabled reports whether the dependent select may be interacted with,
// which requires a chosen parent.
func (c *Cascade[T]) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return listing.NormalizeID(c.parent) != ""
}

// Options returns the subset of all options belonging to the chosen
// parent. Without a parent the list is empty.
func (c *Cascade[T]) Options(all []T) []T {
	c.mu.Lock()
	parent := c.parent
	c.mu.Unlock()

	options := []T{}

	if listing.NormalizeID(parent) == "" {
		return options
	}

	for _, option := range all {
		if listing.SameID(c.parentID(option), parent) {
			options = append(options, option)
		}
	}

	return options
}
