package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

// gatedSearcher runs real searches but can hold specific queries until
// released, to replay a slow response arriving after a fast one.
type gatedSearcher struct {
	inner   *search.Service
	started chan string

	mu    sync.Mutex
	gates map[string]chan struct{}
}

func (g *gatedSearcher) SearchCars(ctx context.Context, q search.Query) (search.Result, error) {
	key := q.Encode()
	g.mu.Lock()
	gate := g.gates[key]
	g.mu.Unlock()

	if g.started != nil {
		g.started <- key
	}
	if gate != nil {
		<-gate
	}
	return g.inner.SearchCars(ctx, q)
}

func (g *gatedSearcher) hold(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[key] = ch
	return ch
}

func newTestCatalog(t *testing.T) *dal.Catalog {
	t.Helper()
	ds, err := dal.CarsDataset()
	require.NoError(t, err)
	return dal.NewCatalog(ds)
}

func newGated(t *testing.T) (*gatedSearcher, *dal.Catalog) {
	catalog := newTestCatalog(t)
	return &gatedSearcher{
		inner:   search.NewService(catalog, 4),
		started: make(chan string, 8),
		gates:   make(map[string]chan struct{}),
	}, catalog
}

func resultIDs(st State) []string {
	out := make([]string, len(st.Result.Items))
	for i, c := range st.Result.Items {
		out[i] = c.ID
	}
	return out
}

func TestSessionStaleResponseIsDropped(t *testing.T) {
	g, _ := newGated(t)
	s := NewSession(g)
	ctx := context.Background()

	release := g.hold("make=Tesla")

	type outcome struct {
		state State
		err   error
	}
	slow := make(chan outcome, 1)
	go func() {
		st, err := s.UpdateFilter(ctx, func(f *search.Filter) { f.SetMake("Tesla") })
		slow <- outcome{st, err}
	}()
	require.Equal(t, "make=Tesla", <-g.started)

	fast, err := s.UpdateFilter(ctx, func(f *search.Filter) { f.SetCondition(search.ConditionUsed) })
	<-g.started
	require.NoError(t, err)
	assert.Equal(t, StatusReady, fast.Status)
	assert.Equal(t, []string{"car-3"}, resultIDs(fast))

	close(release)
	select {
	case out := <-slow:
		assert.ErrorIs(t, out.err, ErrStale)
		assert.Equal(t, fast.Generation, out.state.Generation)
	case <-time.After(2 * time.Second):
		t.Fatal("slow search never returned")
	}

	final := s.State()
	assert.Equal(t, fast.Generation, final.Generation)
	assert.Equal(t, []string{"car-3"}, resultIDs(final))
	assert.Equal(t, "make=Tesla&condition=used", s.URL())
}

func TestSessionRestoreSupersedesInflightSearch(t *testing.T) {
	g, _ := newGated(t)
	s := NewSession(g)

	release := g.hold("make=Tesla")
	errc := make(chan error, 1)
	go func() {
		_, err := s.UpdateFilter(context.Background(), func(f *search.Filter) { f.SetMake("Tesla") })
		errc <- err
	}()
	require.Equal(t, "make=Tesla", <-g.started)

	s.Restore("?make=Ford&page=2")
	close(release)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("search never returned")
	}

	assert.Equal(t, "make=Ford&page=2", s.URL())
	st := s.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, uint64(2), st.Generation)
	assert.Empty(t, st.Result.Items)
}

func TestSessionStatuses(t *testing.T) {
	catalog := newTestCatalog(t)
	s := NewSession(search.NewService(catalog, 4))
	ctx := context.Background()

	assert.Equal(t, StatusIdle, s.State().Status)

	st, err := s.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, 12, st.Result.Total)

	st, err = s.UpdateFilter(ctx, func(f *search.Filter) { f.SetKeyword("hovercraft") })
	require.NoError(t, err)
	assert.Equal(t, StatusEmpty, st.Status)
	assert.Empty(t, st.Result.Items)

	catalog.SetFailing(true)
	st, err = s.ClearAll(ctx)
	assert.ErrorIs(t, err, dal.ErrUnavailable)
	assert.Equal(t, StatusUnavailable, st.Status)
	assert.Equal(t, "", s.URL())

	catalog.SetFailing(false)
	st, err = s.Retry(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, 12, st.Result.Total)
}

func TestSessionPagingAndSorting(t *testing.T) {
	catalog := newTestCatalog(t)
	s := NewSession(search.NewService(catalog, 4))
	ctx := context.Background()

	st, err := s.GoToPage(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Result.Page)
	assert.Equal(t, "page=3", s.URL())

	st, err = s.SortBy(ctx, search.SortByPrice)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Result.Page, "sorting returns to the first page")
	assert.Equal(t, "car-9", st.Result.Items[0].ID)
	assert.Equal(t, "sort=price", s.URL())

	st, err = s.SortBy(ctx, search.SortByPrice)
	require.NoError(t, err)
	assert.Equal(t, "car-12", st.Result.Items[0].ID)
	assert.Equal(t, "sort=price&direction=desc", s.URL())

	st, err = s.GoToPage(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Result.Page)
	assert.Equal(t, "sort=price&direction=desc&page=3", s.URL(), "URL follows the clamped page")

	st, err = s.UpdateFilter(ctx, func(f *search.Filter) { f.SetFuelType("Electric") })
	require.NoError(t, err)
	assert.Equal(t, 1, st.Result.Page, "filter changes return to the first page")
	assert.Equal(t, 3, st.Result.Total)
}

func TestSessionRestore(t *testing.T) {
	catalog := newTestCatalog(t)
	s := NewSession(search.NewService(catalog, 4))

	s.Restore("?make=Tesla&minPrice=50000&maxPrice=40000&page=0&sort=year")
	q := s.Query()
	assert.Equal(t, "Tesla", q.Filter.Make)
	assert.Equal(t, search.PriceRange{40000, 50000}, q.Filter.PriceRange)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "make=Tesla&minPrice=40000&maxPrice=50000&sort=year", s.URL())
	assert.Equal(t, StatusIdle, s.State().Status, "restore does not fetch")

	st, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"car-3"}, resultIDs(st))
}

func TestSessionSetPageSize(t *testing.T) {
	catalog := newTestCatalog(t)
	s := NewSession(search.NewService(catalog, 4))

	st, err := s.SetPageSize(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, st.Result.Items, 5)
	assert.Equal(t, 3, st.Result.TotalPages)
}
