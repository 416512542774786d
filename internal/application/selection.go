package application

import (
	"fmt"

	"onepage/internal/domain"
	"onepage/internal/ports"
)

// Unset marks the selection before the first computed pass; no section
// or linker carries the selected marker yet.
const Unset = -1

// Selection owns the "currently selected section" state and keeps the
// navigation rail, the section list and the location fragment
// consistent with it. It is the sole writer of the selected markers.
type Selection struct {
	page     *domain.Page
	loc      ports.Location
	selected int
}

// NewSelection returns a controller over page with no section selected.
func NewSelection(page *domain.Page, loc ports.Location) *Selection {
	return &Selection{page: page, loc: loc, selected: Unset}
}

// Current returns the selected section index, or Unset.
func (s *Selection) Current() int { return s.selected }

// Select clears the previous selection's marker on both the linker and
// section collections and applies it to index. Idempotent: exactly one
// linker and one section are marked after any call.
func (s *Selection) Select(index int) error {
	if index < 0 || index >= s.page.Len() {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, index, s.page.Len())
	}
	if s.selected != Unset {
		s.page.Sections[s.selected].Selected = false
		s.page.Linkers[s.selected].Selected = false
	}
	s.page.Sections[index].Selected = true
	s.page.Linkers[index].Selected = true
	s.selected = index
	return nil
}

// SetFragment mirrors the active section's identifier into the
// location. The anchor is masked for the duration of the write so a
// fragment watcher cannot resolve the target and perform its own jump
// while the fragment changes; replacement is preferred over direct
// assignment to avoid growing history.
func (s *Selection) SetFragment(id string) error {
	if s.page.Anchor(id) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, id)
	}
	restore := s.page.MaskAnchor(id)
	defer restore()

	if s.loc.CanReplace() {
		return s.loc.Replace(id)
	}
	return s.loc.Assign(id)
}
