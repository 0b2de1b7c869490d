package search

import (
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

type check func(dal.Car) bool

// Matcher is a filter compiled into a conjunction of independent checks.
// The price range always applies; other facets contribute a check only when
// set. Integer comparisons run first and the keyword scan last.
type Matcher struct {
	checks []check
}

// Compile normalizes f and builds its checks.
func Compile(f Filter) Matcher {
	n := f.Normalize()
	var checks []check

	if n.Condition != ConditionAll {
		want := dal.Condition(n.Condition)
		checks = append(checks, func(c dal.Car) bool { return c.Condition == want })
	}
	lo, hi := n.PriceRange.Min(), n.PriceRange.Max()
	checks = append(checks, func(c dal.Car) bool { return c.Price >= lo && c.Price <= hi })
	if n.Year != 0 {
		year := n.Year
		checks = append(checks, func(c dal.Car) bool { return c.Year == year })
	}
	if n.YearRange != "" {
		// Normalize already dropped tokens that do not parse.
		yr, _ := ParseYearRange(n.YearRange)
		checks = append(checks, func(c dal.Car) bool { return yr.Contains(c.Year) })
	}
	if n.Make != "" {
		checks = append(checks, equalFoldCheck(n.Make, func(c dal.Car) string { return c.Make }))
	}
	if n.Model != "" {
		checks = append(checks, equalFoldCheck(n.Model, func(c dal.Car) string { return c.Model }))
	}
	if n.FuelType != "" {
		checks = append(checks, equalFoldCheck(n.FuelType, func(c dal.Car) string { return c.FuelType }))
	}
	if n.Transmission != "" {
		checks = append(checks, equalFoldCheck(n.Transmission, func(c dal.Car) string { return c.Transmission }))
	}
	if n.Keyword != "" {
		needle := strings.ToLower(n.Keyword)
		checks = append(checks, func(c dal.Car) bool { return keywordMatch(c, needle) })
	}

	return Matcher{checks: checks}
}

// Match reports whether car passes every check.
func (m Matcher) Match(car dal.Car) bool {
	for _, ok := range m.checks {
		if !ok(car) {
			return false
		}
	}
	return true
}

// Filter returns the matching cars in input order. The result is never nil.
func (m Matcher) Filter(cars []dal.Car) []dal.Car {
	out := make([]dal.Car, 0, len(cars))
	for i := range cars {
		if m.Match(cars[i]) {
			out = append(out, cars[i])
		}
	}
	return out
}

// Matches reports whether car satisfies f.
func Matches(f Filter, car dal.Car) bool {
	return Compile(f).Match(car)
}

// FilterCars returns the cars that satisfy f, in input order.
func FilterCars(cars []dal.Car, f Filter) []dal.Car {
	return Compile(f).Filter(cars)
}

func equalFoldCheck(want string, field func(dal.Car) string) check {
	return func(c dal.Car) bool {
		return strings.EqualFold(field(c), want)
	}
}

// keywordMatch is a case-insensitive substring test against make, model,
// category and fuel type. needle must already be lower case.
func keywordMatch(c dal.Car, needle string) bool {
	for _, hay := range [...]string{c.Make, c.Model, c.Category, c.FuelType} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
