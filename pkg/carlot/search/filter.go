// Package search holds the storefront search core: the filter model, its
// query-string codec, the match predicate, sorting and pagination.
package search

import (
	"strconv"
	"strings"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Default price bounds. A filter carrying exactly these is unrestricted on price.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000
)

// Condition restricts listings by sale condition.
type Condition string

const (
	ConditionAll  Condition = "all"
	ConditionNew  Condition = Condition(dal.ConditionNew)
	ConditionUsed Condition = Condition(dal.ConditionUsed)
)

// PriceRange is an inclusive [Min, Max] price window.
type PriceRange [2]int

// Min is the lower bound.
func (r PriceRange) Min() int { return r[0] }

// Max is the upper bound.
func (r PriceRange) Max() int { return r[1] }

// IsDefault reports whether the range is the unrestricted default.
func (r PriceRange) IsDefault() bool {
	return r == PriceRange{DefaultMinPrice, DefaultMaxPrice}
}

// Filter is the user's search intent. The zero value is not valid, use
// NewFilter. Year and YearRange are mutually exclusive, and Model always
// belongs to Make; the setters keep both rules.
type Filter struct {
	Make         string     `json:"make,omitempty"`
	Model        string     `json:"model,omitempty"`
	PriceRange   PriceRange `json:"priceRange"`
	Condition    Condition  `json:"condition"`
	Keyword      string     `json:"keyword,omitempty"`
	FuelType     string     `json:"fuelType,omitempty"`
	Year         int        `json:"year,omitempty"`
	YearRange    string     `json:"yearRange,omitempty"`
	Transmission string     `json:"transmission,omitempty"`
}

// NewFilter returns a filter with every facet unrestricted.
func NewFilter() Filter {
	return Filter{
		PriceRange: PriceRange{DefaultMinPrice, DefaultMaxPrice},
		Condition:  ConditionAll,
	}
}

// SetMake changes the make and clears the model in the same update.
func (f *Filter) SetMake(makeName string) {
	if makeName == dal.AllMakes {
		makeName = ""
	}
	f.Make = makeName
	f.Model = ""
}

// SetModel sets the model within the current make.
func (f *Filter) SetModel(model string) {
	f.Model = model
}

// SetPriceRange sets the price window, swapping inverted bounds and clamping
// negatives to zero.
func (f *Filter) SetPriceRange(low, high int) {
	f.PriceRange = normalizePrice(low, high)
}

// SetCondition sets the condition facet. Unknown values mean ConditionAll.
func (f *Filter) SetCondition(c Condition) {
	f.Condition = normalizeCondition(c)
}

// SetKeyword sets the free-text query.
func (f *Filter) SetKeyword(keyword string) {
	f.Keyword = strings.TrimSpace(keyword)
}

// SetFuelType sets the fuel type facet.
func (f *Filter) SetFuelType(fuel string) {
	f.FuelType = strings.TrimSpace(fuel)
}

// SetTransmission sets the transmission facet.
func (f *Filter) SetTransmission(transmission string) {
	f.Transmission = strings.TrimSpace(transmission)
}

// SetYear selects a single model year and clears any year range.
func (f *Filter) SetYear(year int) {
	if year <= 0 {
		year = 0
	}
	f.Year = year
	if year != 0 {
		f.YearRange = ""
	}
}

// SetYearRange selects a year range token and clears the single year.
// Unparseable tokens leave the range unset.
func (f *Filter) SetYearRange(token string) {
	token = strings.TrimSpace(token)
	if _, err := ParseYearRange(token); err != nil {
		token = ""
	}
	f.YearRange = token
	if token != "" {
		f.Year = 0
	}
}

// Reset restores every facet to its default.
func (f *Filter) Reset() {
	*f = NewFilter()
}

// IsZero reports whether no facet is restricted.
func (f Filter) IsZero() bool {
	return f.Normalize() == NewFilter()
}

// ActiveFacets counts the restricted facets, price range counting once.
func (f Filter) ActiveFacets() int {
	n := f.Normalize()
	count := 0
	for _, set := range []bool{
		n.Make != "",
		n.Model != "",
		!n.PriceRange.IsDefault(),
		n.Condition != ConditionAll,
		n.Keyword != "",
		n.FuelType != "",
		n.Year != 0,
		n.YearRange != "",
		n.Transmission != "",
	} {
		if set {
			count++
		}
	}
	return count
}

// Normalize returns the nearest valid filter. It never fails: bad values are
// clamped, swapped or reset to their default.
func (f Filter) Normalize() Filter {
	out := f
	out.Make = strings.TrimSpace(out.Make)
	if out.Make == dal.AllMakes {
		out.Make = ""
	}
	out.Model = strings.TrimSpace(out.Model)
	out.PriceRange = normalizePrice(out.PriceRange[0], out.PriceRange[1])
	out.Condition = normalizeCondition(out.Condition)
	out.Keyword = strings.TrimSpace(out.Keyword)
	out.FuelType = strings.TrimSpace(out.FuelType)
	out.Transmission = strings.TrimSpace(out.Transmission)
	if out.Year < 0 {
		out.Year = 0
	}
	out.YearRange = strings.TrimSpace(out.YearRange)
	if _, err := ParseYearRange(out.YearRange); err != nil {
		out.YearRange = ""
	}
	if out.Year != 0 {
		out.YearRange = ""
	}
	return out
}

func normalizePrice(low, high int) PriceRange {
	if low < 0 {
		low = 0
	}
	if high < 0 {
		high = 0
	}
	if low > high {
		low, high = high, low
	}
	return PriceRange{low, high}
}

func normalizeCondition(c Condition) Condition {
	switch Condition(strings.ToLower(string(c))) {
	case ConditionNew:
		return ConditionNew
	case ConditionUsed:
		return ConditionUsed
	}
	return ConditionAll
}

// Reconcile drops facets the vocabulary does not know: an unknown make is
// cleared, and a model outside the make's list is cleared. Known values are
// rewritten in their canonical spelling.
func Reconcile(f Filter, vocab *dal.Vocabulary) Filter {
	out := f.Normalize()
	if vocab == nil {
		return out
	}
	if out.Make == "" {
		out.Model = ""
		return out
	}
	canonical, ok := vocab.CanonicalMake(out.Make)
	if !ok {
		out.Make, out.Model = "", ""
		return out
	}
	out.Make = canonical
	if out.Model == "" {
		return out
	}
	for _, m := range vocab.Models(canonical) {
		if strings.EqualFold(m, out.Model) {
			out.Model = m
			return out
		}
	}
	out.Model = ""
	return out
}

// String renders the filter as its canonical query string.
func (f Filter) String() string {
	return Encode(f, DefaultSort(), 1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
