package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query-string keys.
const (
	KeyMake         = "make"
	KeyModel        = "model"
	KeyMinPrice     = "minPrice"
	KeyMaxPrice     = "maxPrice"
	KeyCondition    = "condition"
	KeyKeyword      = "keyword"
	KeyFuelType     = "fuelType"
	KeyYear         = "year"
	KeyYearRange    = "yearRange"
	KeyTransmission = "transmission"
	KeySort         = "sort"
	KeyDirection    = "direction"
	KeyPage         = "page"
)

// Encode serializes the search state into a query string. Only values that
// differ from their default are written, always in the same key order, so
// encoding the same state twice yields identical bytes.
func Encode(f Filter, s Sort, page int) string {
	n := f.Normalize()
	s = s.Normalize()

	var b strings.Builder
	add := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	if n.Make != "" {
		add(KeyMake, n.Make)
	}
	if n.Model != "" {
		add(KeyModel, n.Model)
	}
	if !n.PriceRange.IsDefault() {
		add(KeyMinPrice, itoa(n.PriceRange.Min()))
		add(KeyMaxPrice, itoa(n.PriceRange.Max()))
	}
	if n.Condition != ConditionAll {
		add(KeyCondition, string(n.Condition))
	}
	if n.Keyword != "" {
		add(KeyKeyword, n.Keyword)
	}
	if n.FuelType != "" {
		add(KeyFuelType, n.FuelType)
	}
	if n.Year != 0 {
		add(KeyYear, itoa(n.Year))
	}
	if n.YearRange != "" {
		add(KeyYearRange, n.YearRange)
	}
	if n.Transmission != "" {
		add(KeyTransmission, n.Transmission)
	}
	if s.Field != SortByRelevance {
		add(KeySort, string(s.Field))
		if s.Direction != DefaultDirection(s.Field) {
			add(KeyDirection, string(s.Direction))
		}
	}
	if page > 1 {
		add(KeyPage, itoa(page))
	}
	return b.String()
}

// Decode parses a query string produced by Encode, or typed by hand. It never
// fails: malformed or out-of-range values fall back to their defaults.
func Decode(query string) (Filter, Sort, int) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		// ParseQuery keeps every pair it could read before the bad one.
		values = salvageQuery(query)
	}
	return DecodeValues(values)
}

// DecodeValues is Decode over already parsed values.
func DecodeValues(values url.Values) (Filter, Sort, int) {
	f := NewFilter()
	f.Make = values.Get(KeyMake)
	f.Model = values.Get(KeyModel)
	f.PriceRange = PriceRange{
		intOr(values.Get(KeyMinPrice), DefaultMinPrice),
		intOr(values.Get(KeyMaxPrice), DefaultMaxPrice),
	}
	f.Condition = Condition(values.Get(KeyCondition))
	f.Keyword = values.Get(KeyKeyword)
	f.FuelType = values.Get(KeyFuelType)
	f.Year = intOr(values.Get(KeyYear), 0)
	f.YearRange = values.Get(KeyYearRange)
	f.Transmission = values.Get(KeyTransmission)

	s := Sort{
		Field:     SortField(values.Get(KeySort)),
		Direction: SortDirection(values.Get(KeyDirection)),
	}

	page := intOr(values.Get(KeyPage), 1)
	if page < 1 {
		page = 1
	}
	return f.Normalize(), s.Normalize(), page
}

func intOr(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return fallback
		}
		return int(f)
	}
	return n
}

func salvageQuery(query string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(strings.TrimPrefix(query, "?"), "&") {
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil || k == "" {
			continue
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		values.Add(k, v)
	}
	return values
}
