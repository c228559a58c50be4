package listquery

import (
	"fmt"
	"strings"
)

// Selection is an ordered set of selected row IDs.
type Selection struct {
	ids   []string
	index map[string]int
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{index: make(map[string]int)}
	for _, id := range ids {
		s.Select(id)
	}
	return s
}

func (s *Selection) Select(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *Selection) Deselect(id string) {
	pos, ok := s.index[id]
	if !ok {
		return
	}
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
}

// Toggle flips a single row checkbox.
func (s *Selection) Toggle(id string) {
	if s.IsSelected(id) {
		s.Deselect(id)
		return
	}
	s.Select(id)
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.index[id]
	return ok
}

// AllSelected drives the header checkbox: true only when there are visible
// rows and every one of them is selected.
func (s *Selection) AllSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.IsSelected(id) {
			return false
		}
	}
	return true
}

// ToggleAll is the header checkbox click: clears the visible rows when all
// are selected, otherwise selects all of them.
func (s *Selection) ToggleAll(visible []string) {
	if s.AllSelected(visible) {
		for _, id := range visible {
			s.Deselect(id)
		}
		return
	}
	for _, id := range visible {
		s.Select(id)
	}
}

// IDs returns selected IDs in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// NormalizeIDs trims and dedupes ids keeping first-seen order, and enforces
// 1..limit entries.
func NormalizeIDs(ids []string, limit int) ([]string, error) {
	sel := NewSelection()
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			sel.Select(id)
		}
	}

	switch {
	case sel.Len() == 0:
		return nil, ErrNoSelection
	case sel.Len() > limit:
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyItems, sel.Len(), limit)
	}
	return sel.IDs(), nil
}
