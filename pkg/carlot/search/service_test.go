package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

func newTestService(t *testing.T, opts ...dal.Option) (*Service, *dal.Catalog) {
	t.Helper()
	catalog := dal.NewCatalog(&dal.Dataset{Cars: sampleCars()}, opts...)
	return NewService(catalog, 3), catalog
}

func TestServiceSearchCars(t *testing.T) {
	svc, _ := newTestService(t)

	q := NewQuery()
	q.Filter.SetCondition(ConditionUsed)
	q.Sort = SortFor(SortByPrice)
	q.Page = 2

	res, err := svc.SearchCars(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.PageSize)
	assert.Equal(t, []string{"car-4", "car-3"}, ids(res.Items))
	assert.False(t, res.Empty())
	assert.Equal(t, tokens(1, 2), res.Pages())
}

func TestServiceSearchCarsClampsAndEmpties(t *testing.T) {
	svc, _ := newTestService(t)

	q := NewQuery()
	q.Page = 50
	res, err := svc.SearchCars(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page)
	assert.Equal(t, []string{"car-9"}, ids(res.Items))

	q = NewQuery()
	q.Filter.SetMake("Lada")
	res, err = svc.SearchCars(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 0, res.TotalPages)
}

func TestServiceSearchCarsPageSizeOverride(t *testing.T) {
	svc, _ := newTestService(t)

	q := NewQuery()
	q.PageSize = 10
	res, err := svc.SearchCars(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, res.Items, 7)
	assert.Equal(t, 1, res.TotalPages)
}

func TestServiceUnavailable(t *testing.T) {
	svc, catalog := newTestService(t)
	catalog.SetFailing(true)

	_, err := svc.SearchCars(context.Background(), NewQuery())
	assert.ErrorIs(t, err, dal.ErrUnavailable)

	_, err = svc.Facets(context.Background())
	assert.ErrorIs(t, err, dal.ErrUnavailable)
}

func TestServiceCarsByID(t *testing.T) {
	svc, _ := newTestService(t)

	cars, err := svc.CarsByID(context.Background(), []string{"car-5", "car-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"car-5", "car-1"}, ids(cars))

	_, err = svc.CarsByID(context.Background(), []string{"car-1", "car-404"})
	assert.ErrorIs(t, err, dal.ErrNotFound)
}

func TestCollectFacets(t *testing.T) {
	f := CollectFacets(sampleCars())

	assert.Equal(t, []string{"Ford", "Honda", "Tesla", "Toyota"}, f.Makes)
	assert.Equal(t, []string{"Electric", "Gasoline"}, f.FuelTypes)
	assert.Equal(t, []string{"Automatic", "Manual"}, f.Transmissions)
	assert.Equal(t, []int{2023, 2022, 2021, 2020, 2018, 2014}, f.Years)
	assert.Equal(t, PriceRange{11900, 52990}, f.PriceRange)

	empty := CollectFacets(nil)
	assert.Empty(t, empty.Makes)
	assert.Equal(t, PriceRange{}, empty.PriceRange)
}
