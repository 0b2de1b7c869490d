package compare

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrSelectionFull is returned when adding past MaxVehicles.
	ErrSelectionFull = errors.New("comparison is full")
	// ErrDuplicate is returned when a car is already selected.
	ErrDuplicate = errors.New("car already selected")
)

// Selection is the ordered set of car ids picked for comparison.
type Selection struct {
	ids []string
}

// NewSelection seeds a selection, skipping blanks and duplicates. Ids past
// MaxVehicles are an error.
func NewSelection(ids ...string) (*Selection, error) {
	s := &Selection{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := s.Add(id); err != nil && !errors.Is(err, ErrDuplicate) {
			return nil, err
		}
	}
	return s, nil
}

// ParseSelection splits a comma separated id list, as used by ?ids=.
func ParseSelection(raw string) (*Selection, error) {
	return NewSelection(strings.Split(raw, ",")...)
}

// Add appends id.
func (s *Selection) Add(id string) error {
	if slices.Contains(s.ids, id) {
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	if len(s.ids) >= MaxVehicles {
		return fmt.Errorf("%w: at most %d cars", ErrSelectionFull, MaxVehicles)
	}
	s.ids = append(s.ids, id)
	return nil
}

// Remove drops id and reports whether it was selected.
func (s *Selection) Remove(id string) bool {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return false
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return true
}

// Toggle removes id when selected and adds it otherwise.
func (s *Selection) Toggle(id string) error {
	if s.Remove(id) {
		return nil
	}
	return s.Add(id)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Len is the number of selected cars.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}
