// Package browse keeps the state of one storefront search session: the
// current query, the last committed result and a generation counter that
// keeps slow, superseded fetches from overwriting newer results.
package browse

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

// Searcher runs a catalog query.
type Searcher interface {
	SearchCars(ctx context.Context, q search.Query) (search.Result, error)
}

// Status is the render state of the results area.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoading     Status = "loading"
	StatusReady       Status = "ready"
	StatusEmpty       Status = "empty"
	StatusUnavailable Status = "unavailable"
)

// ErrStale is returned when a fetch finished after a newer one was issued.
// Its result was dropped.
var ErrStale = errors.New("superseded by a newer search")

// State is a snapshot of the session.
type State struct {
	Status     Status
	Query      search.Query
	Result     search.Result
	Err        error
	Generation uint64
}

// Session is the single source of truth for the search query. The URL is
// derived from it and only read back by Restore.
type Session struct {
	searcher Searcher
	log      *zap.Logger

	mu    sync.Mutex
	query search.Query
	gen   uint64
	state State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession starts a session on the default query.
func NewSession(searcher Searcher, opts ...Option) *Session {
	s := &Session{
		searcher: searcher,
		log:      zap.NewNop(),
		query:    search.NewQuery(),
	}
	s.state = State{Status: StatusIdle, Query: s.query}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the query from a URL query string. It does not fetch, but
// it supersedes any fetch still in flight.
func (s *Session) Restore(raw string) {
	q := search.ParseQuery(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	q.PageSize = s.query.PageSize
	s.query = q
	s.gen++
	s.state = State{Status: StatusIdle, Query: q, Generation: s.gen}
}

// Query returns the current query.
func (s *Session) Query() search.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// URL is the canonical query string of the current query.
func (s *Session) URL() string {
	return s.Query().Encode()
}

// State returns the last committed state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPageSize changes the page size and returns to page 1.
func (s *Session) SetPageSize(ctx context.Context, size int) (State, error) {
	return s.apply(ctx, func(q *search.Query) {
		q.PageSize = size
		q.Page = 1
	})
}

// UpdateFilter mutates the filter and returns to page 1.
func (s *Session) UpdateFilter(ctx context.Context, mutate func(*search.Filter)) (State, error) {
	return s.apply(ctx, func(q *search.Query) {
		mutate(&q.Filter)
		q.Page = 1
	})
}

// SortBy toggles the sort field and returns to page 1.
func (s *Session) SortBy(ctx context.Context, field search.SortField) (State, error) {
	return s.apply(ctx, func(q *search.Query) {
		q.Sort = q.Sort.Toggle(field)
		q.Page = 1
	})
}

// GoToPage moves to page. Out-of-range pages are clamped by the search.
func (s *Session) GoToPage(ctx context.Context, page int) (State, error) {
	return s.apply(ctx, func(q *search.Query) {
		q.Page = page
	})
}

// ClearAll resets filter, sort and page.
func (s *Session) ClearAll(ctx context.Context) (State, error) {
	return s.apply(ctx, func(q *search.Query) {
		size := q.PageSize
		*q = search.NewQuery()
		q.PageSize = size
	})
}

// Refresh fetches the current query unchanged.
func (s *Session) Refresh(ctx context.Context) (State, error) {
	return s.apply(ctx, func(*search.Query) {})
}

// Retry re-issues the current query after a failure.
func (s *Session) Retry(ctx context.Context) (State, error) {
	return s.Refresh(ctx)
}

// apply mutates the query, then fetches it. Only the fetch holding the
// latest generation may commit; an older one returns ErrStale together with
// the state that is current at that moment.
func (s *Session) apply(ctx context.Context, mutate func(*search.Query)) (State, error) {
	s.mu.Lock()
	q := s.query
	mutate(&q)
	q = q.Normalize()
	s.query = q
	s.gen++
	gen := s.gen
	s.state.Status = StatusLoading
	s.state.Query = q
	s.state.Generation = gen
	s.mu.Unlock()

	res, err := s.searcher.SearchCars(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug("dropping stale search result",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", s.gen),
			zap.String("query", q.Encode()),
		)
		return s.state, ErrStale
	}

	next := State{Query: q, Generation: gen}
	switch {
	case err != nil:
		next.Status = StatusUnavailable
		next.Err = err
		s.log.Warn("search failed", zap.String("query", q.Encode()), zap.Error(err))
	default:
		next.Status = StatusReady
		if res.Empty() {
			next.Status = StatusEmpty
		}
		next.Result = res
		// Keep the URL on the page actually shown after clamping.
		s.query.Page = res.Page
		next.Query.Page = res.Page
	}
	s.state = next
	return next, err
}
