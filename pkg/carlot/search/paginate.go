package search

import (
	"encoding/json"
	"slices"
)

// DefaultPageSize is the number of listings on one results page.
const DefaultPageSize = 9

// Page describes one slice of a result set. TotalPages is derived from
// TotalItems and PageSize and is never stored.
type Page struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// TotalPages is ceil(TotalItems / PageSize).
func (p Page) TotalPages() int {
	if p.PageSize <= 0 || p.TotalItems <= 0 {
		return 0
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// MarshalJSON adds the derived totalPages.
func (p Page) MarshalJSON() ([]byte, error) {
	type plain Page
	return json.Marshal(struct {
		plain
		TotalPages int `json:"totalPages"`
	}{plain(p), p.TotalPages()})
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the requested page of items. An out-of-range page is
// clamped, never rejected. A non-positive pageSize means DefaultPageSize.
func Paginate[T any](items []T, pageSize, page int) ([]T, Page) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	p := Page{PageSize: pageSize, TotalItems: len(items)}
	p.CurrentPage = ClampPage(page, p.TotalPages())

	start := (p.CurrentPage - 1) * pageSize
	if start >= len(items) {
		return []T{}, p
	}
	end := min(start+pageSize, len(items))
	return slices.Clone(items[start:end]), p
}

// PageToken is one entry of a pager: a page number or an ellipsis.
type PageToken struct {
	Number   int
	Ellipsis bool
}

// Ellipsis is the marker for a collapsed run of pages.
var Ellipsis = PageToken{Ellipsis: true}

// String renders the token for plain-text pagers.
func (t PageToken) String() string {
	if t.Ellipsis {
		return "..."
	}
	return itoa(t.Number)
}

// MarshalJSON encodes numbers as numbers and the ellipsis as "...".
func (t PageToken) MarshalJSON() ([]byte, error) {
	if t.Ellipsis {
		return json.Marshal("...")
	}
	return json.Marshal(t.Number)
}

// DisplaySequence returns the page links to show for current of total:
// the first and last page, current and its neighbours. A gap of exactly one
// page shows that page, a wider gap collapses into one ellipsis.
func DisplaySequence(current, total int) []PageToken {
	if total < 1 {
		return []PageToken{}
	}
	current = ClampPage(current, total)

	anchors := []int{1, current - 1, current, current + 1, total}
	slices.Sort(anchors)
	anchors = slices.Compact(anchors)

	out := make([]PageToken, 0, len(anchors)+2)
	prev := 0
	for _, n := range anchors {
		if n < 1 || n > total {
			continue
		}
		if prev > 0 {
			switch gap := n - prev; {
			case gap == 2:
				out = append(out, PageToken{Number: prev + 1})
			case gap > 2:
				out = append(out, Ellipsis)
			}
		}
		out = append(out, PageToken{Number: n})
		prev = n
	}
	return out
}
