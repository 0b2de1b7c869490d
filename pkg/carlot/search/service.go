package search

import (
	"context"
	"fmt"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

// Source is the data layer the search core reads from.
type Source interface {
	Cars(ctx context.Context) ([]dal.Car, error)
	FeaturedCars(ctx context.Context) ([]dal.Car, error)
	CarByID(ctx context.Context, id string) (dal.Car, error)
}

// Query is a complete search request: filter, ordering and the page wanted.
type Query struct {
	Filter   Filter `json:"filter"`
	Sort     Sort   `json:"sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// NewQuery returns the default query: everything, relevance order, page 1.
func NewQuery() Query {
	return Query{Filter: NewFilter(), Sort: DefaultSort(), Page: 1}
}

// ParseQuery decodes a query string into a Query.
func ParseQuery(raw string) Query {
	f, s, page := Decode(raw)
	return Query{Filter: f, Sort: s, Page: page}
}

// Normalize applies the filter, sort and page defaults.
func (q Query) Normalize() Query {
	out := q
	out.Filter = q.Filter.Normalize()
	out.Sort = q.Sort.Normalize()
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize < 0 {
		out.PageSize = 0
	}
	return out
}

// Encode returns the canonical query string.
func (q Query) Encode() string {
	return Encode(q.Filter, q.Sort, q.Page)
}

// Result is one page of search results.
type Result struct {
	Items      []dal.Car `json:"items"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
}

// Empty reports whether the search matched nothing.
func (r Result) Empty() bool {
	return r.Total == 0
}

// Pages is the pager sequence for this result.
func (r Result) Pages() []PageToken {
	return DisplaySequence(r.Page, r.TotalPages)
}

// Service answers catalog queries by running match, sort and paginate over
// the source.
type Service struct {
	src      Source
	pageSize int
}

// NewService creates a service. A non-positive pageSize means DefaultPageSize.
func NewService(src Source, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{src: src, pageSize: pageSize}
}

// PageSize is the page size used when a query does not set one.
func (s *Service) PageSize() int {
	return s.pageSize
}

// SearchCars filters, orders and pages the catalog. Zero matches is a valid,
// empty result; only a source failure returns an error.
func (s *Service) SearchCars(ctx context.Context, q Query) (Result, error) {
	q = q.Normalize()
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = s.pageSize
	}

	cars, err := s.src.Cars(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("search cars: %w", err)
	}

	matched := FilterCars(cars, q.Filter)
	ordered := SortCars(matched, q.Sort)
	items, page := Paginate(ordered, pageSize, q.Page)

	return Result{
		Items:      items,
		Total:      page.TotalItems,
		TotalPages: page.TotalPages(),
		Page:       page.CurrentPage,
		PageSize:   page.PageSize,
	}, nil
}

// FeaturedCars returns the featured listings.
func (s *Service) FeaturedCars(ctx context.Context) ([]dal.Car, error) {
	cars, err := s.src.FeaturedCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("featured cars: %w", err)
	}
	return cars, nil
}

// CarByID returns one listing.
func (s *Service) CarByID(ctx context.Context, id string) (dal.Car, error) {
	return s.src.CarByID(ctx, id)
}

// CarsByID resolves ids in order. The first failure aborts the lookup.
func (s *Service) CarsByID(ctx context.Context, ids []string) ([]dal.Car, error) {
	out := make([]dal.Car, 0, len(ids))
	for _, id := range ids {
		car, err := s.src.CarByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, car)
	}
	return out, nil
}

// Facets lists the distinct values available for the filter controls.
func (s *Service) Facets(ctx context.Context) (Facets, error) {
	cars, err := s.src.Cars(ctx)
	if err != nil {
		return Facets{}, fmt.Errorf("facets: %w", err)
	}
	return CollectFacets(cars), nil
}
