package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// YearRange is an inclusive model-year window. A zero bound is open.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether year falls inside the window.
func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}

var errYearRange = errors.New("invalid year range")

// ParseYearRange understands "2015-2019", "Pre-2015" and "2020+". The empty
// token is the unrestricted range.
func ParseYearRange(token string) (YearRange, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return YearRange{}, nil
	}

	if rest, ok := cutPrefixFold(token, "pre-"); ok {
		year, err := parseYear(rest)
		if err != nil {
			return YearRange{}, err
		}
		return YearRange{To: year - 1}, nil
	}

	if rest, ok := strings.CutSuffix(token, "+"); ok {
		year, err := parseYear(rest)
		if err != nil {
			return YearRange{}, err
		}
		return YearRange{From: year}, nil
	}

	fromStr, toStr, ok := strings.Cut(token, "-")
	if !ok {
		return YearRange{}, fmt.Errorf("%w: %q", errYearRange, token)
	}
	from, err := parseYear(fromStr)
	if err != nil {
		return YearRange{}, err
	}
	to, err := parseYear(toStr)
	if err != nil {
		return YearRange{}, err
	}
	if from > to {
		return YearRange{}, fmt.Errorf("%w: %q starts after it ends", errYearRange, token)
	}
	return YearRange{From: from, To: to}, nil
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: bad year %q", errYearRange, s)
	}
	return year, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
