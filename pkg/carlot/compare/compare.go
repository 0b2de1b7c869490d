// Package compare builds the side-by-side comparison table for a handful of
// selected listings and picks a winner per attribute.
package compare

import (
	"errors"
	"fmt"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// MaxVehicles is the largest comparison supported.
const MaxVehicles = 4

// ErrSelectionSize is returned for an empty or oversized comparison.
var ErrSelectionSize = errors.New("compare needs between 1 and 4 vehicles")

// RuleKind names how a row picks its winner.
type RuleKind string

const (
	// RuleMin: the lowest key wins.
	RuleMin RuleKind = "min"
	// RuleMax: the highest key wins.
	RuleMax RuleKind = "max"
	// RuleConditionOverride: a new car beats every used car; among several
	// new cars, or among used cars only, the lowest key wins.
	RuleConditionOverride RuleKind = "conditionOverride"
	// RuleFirstNew: the first new car wins, otherwise nothing.
	RuleFirstNew RuleKind = "firstNew"
	// RuleNone: informational row.
	RuleNone RuleKind = "none"
)

// Attribute is one row of the comparison table.
type Attribute struct {
	Name  string
	Rule  RuleKind
	Value func(dal.Car) Value
	// Key is the numeric key for RuleMin, RuleMax and RuleConditionOverride.
	Key func(dal.Car) int
}

// Spec is one computed row: the values aligned with the input cars and the
// winning position.
type Spec struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
	Winner Winner  `json:"winner"`
}

// Registry holds the ordered attribute rows.
type Registry struct {
	attrs []Attribute
}

// NewRegistry creates a registry with the given rows.
func NewRegistry(attrs ...Attribute) *Registry {
	r := &Registry{}
	for _, a := range attrs {
		r.Register(a)
	}
	return r
}

// Register appends a row, replacing an existing row with the same name.
func (r *Registry) Register(a Attribute) {
	for i := range r.attrs {
		if r.attrs[i].Name == a.Name {
			r.attrs[i] = a
			return
		}
	}
	r.attrs = append(r.attrs, a)
}

// Names lists the rows in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.attrs))
	for i, a := range r.attrs {
		out[i] = a.Name
	}
	return out
}

// Compare recomputes the full table for cars.
func (r *Registry) Compare(cars []dal.Car) ([]Spec, error) {
	if len(cars) == 0 || len(cars) > MaxVehicles {
		return nil, fmt.Errorf("%w: got %d", ErrSelectionSize, len(cars))
	}

	specs := make([]Spec, 0, len(r.attrs))
	for _, a := range r.attrs {
		values := make([]Value, len(cars))
		for i := range cars {
			values[i] = a.Value(cars[i])
		}
		specs = append(specs, Spec{
			Name:   a.Name,
			Values: values,
			Winner: a.winner(cars),
		})
	}
	return specs, nil
}

func (a Attribute) winner(cars []dal.Car) Winner {
	if len(cars) < 2 {
		return NoWinner
	}
	all := make([]int, len(cars))
	for i := range cars {
		all[i] = i
	}

	switch a.Rule {
	case RuleMin:
		return extreme(cars, all, a.Key, less)
	case RuleMax:
		return extreme(cars, all, a.Key, greater)
	case RuleConditionOverride:
		var fresh []int
		for i := range cars {
			if cars[i].IsNew() {
				fresh = append(fresh, i)
			}
		}
		switch len(fresh) {
		case 0:
			return extreme(cars, all, a.Key, less)
		case 1:
			return WinnerAt(fresh[0])
		default:
			return extreme(cars, fresh, a.Key, less)
		}
	case RuleFirstNew:
		for i := range cars {
			if cars[i].IsNew() {
				return WinnerAt(i)
			}
		}
	}
	return NoWinner
}

func less(a, b int) bool    { return a < b }
func greater(a, b int) bool { return a > b }

// extreme picks the best key among candidates. A tie for best is no winner.
func extreme(cars []dal.Car, candidates []int, key func(dal.Car) int, better func(a, b int) bool) Winner {
	if key == nil || len(candidates) == 0 {
		return NoWinner
	}
	best := candidates[0]
	tied := false
	for _, i := range candidates[1:] {
		k, bk := key(cars[i]), key(cars[best])
		switch {
		case better(k, bk):
			best, tied = i, false
		case k == bk:
			tied = true
		}
	}
	if tied {
		return NoWinner
	}
	return WinnerAt(best)
}
