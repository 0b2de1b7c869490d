package search

import (
	"cmp"
	"slices"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// SortField represents a field that can be sorted on.
type SortField string

const (
	SortByRelevance SortField = "relevance"
	SortByPrice     SortField = "price"
	SortByYear      SortField = "year"
	SortByMileage   SortField = "mileage"
)

// SortDirection represents sort order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort is the active ordering. Relevance carries no direction.
type Sort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// DefaultSort is relevance, which keeps catalog order.
func DefaultSort() Sort {
	return Sort{Field: SortByRelevance}
}

// DefaultDirection is the direction a field starts with when first picked:
// cheapest first, newest first, and mileage descending.
func DefaultDirection(field SortField) SortDirection {
	switch field {
	case SortByPrice:
		return SortAsc
	case SortByYear, SortByMileage:
		return SortDesc
	}
	return ""
}

// ParseSortField maps a string onto a field, falling back to relevance.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByPrice, SortByYear, SortByMileage:
		return SortField(s)
	}
	return SortByRelevance
}

// SortFor returns the sort for field in its default direction.
func SortFor(field SortField) Sort {
	field = ParseSortField(string(field))
	return Sort{Field: field, Direction: DefaultDirection(field)}
}

// Normalize fills in the default direction and strips it from relevance.
func (s Sort) Normalize() Sort {
	field := ParseSortField(string(s.Field))
	if field == SortByRelevance {
		return DefaultSort()
	}
	dir := s.Direction
	if dir != SortAsc && dir != SortDesc {
		dir = DefaultDirection(field)
	}
	return Sort{Field: field, Direction: dir}
}

// Toggle picks field. Picking a new field applies its default direction,
// picking the active field again flips it.
func (s Sort) Toggle(field SortField) Sort {
	cur := s.Normalize()
	field = ParseSortField(string(field))
	if field == SortByRelevance {
		return DefaultSort()
	}
	if cur.Field != field {
		return SortFor(field)
	}
	if cur.Direction == SortAsc {
		return Sort{Field: field, Direction: SortDesc}
	}
	return Sort{Field: field, Direction: SortAsc}
}

// String returns the sort as "field:direction", or "relevance".
func (s Sort) String() string {
	n := s.Normalize()
	if n.Field == SortByRelevance {
		return string(n.Field)
	}
	return string(n.Field) + ":" + string(n.Direction)
}

// SortCars returns a stably ordered copy of cars. Relevance keeps the input
// order. The input slice is never modified.
func SortCars(cars []dal.Car, s Sort) []dal.Car {
	out := slices.Clone(cars)
	if out == nil {
		out = []dal.Car{}
	}
	s = s.Normalize()

	var key func(dal.Car) int
	switch s.Field {
	case SortByPrice:
		key = func(c dal.Car) int { return c.Price }
	case SortByYear:
		key = func(c dal.Car) int { return c.Year }
	case SortByMileage:
		key = func(c dal.Car) int { return c.Mileage }
	default:
		return out
	}

	desc := s.Direction == SortDesc
	slices.SortStableFunc(out, func(a, b dal.Car) int {
		if desc {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return out
}
