package dal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no listing has the requested id.
	ErrNotFound = errors.New("car not found")
	// ErrUnavailable is returned when the catalog cannot serve a query.
	ErrUnavailable = errors.New("catalog unavailable")
)

// Catalog is the in-memory inventory. Every read waits for the configured
// latency to mimic a remote data source.
type Catalog struct {
	cars    []Car
	byID    map[string]int
	vocab   *Vocabulary
	latency time.Duration
	failing atomic.Bool
	log     *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLatency sets the artificial delay applied to every query.
func WithLatency(d time.Duration) Option {
	return func(c *Catalog) {
		if d > 0 {
			c.latency = d
		}
	}
}

// WithFailure makes every query fail with ErrUnavailable.
func WithFailure(fail bool) Option {
	return func(c *Catalog) {
		c.failing.Store(fail)
	}
}

// WithLogger attaches a logger for query tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCatalog indexes the dataset.
func NewCatalog(ds *Dataset, opts ...Option) *Catalog {
	c := &Catalog{
		cars:  make([]Car, len(ds.Cars)),
		byID:  make(map[string]int, len(ds.Cars)),
		vocab: ds.Vocabulary,
		log:   zap.NewNop(),
	}
	copy(c.cars, ds.Cars)
	for i := range c.cars {
		c.byID[c.cars[i].ID] = i
	}
	if c.vocab == nil {
		c.vocab = NewVocabulary(nil)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetFailing toggles the simulated outage.
func (c *Catalog) SetFailing(fail bool) {
	c.failing.Store(fail)
}

// Vocabulary returns the make/model table shipped with the dataset.
func (c *Catalog) Vocabulary() *Vocabulary {
	return c.vocab
}

// Len is the number of listings.
func (c *Catalog) Len() int {
	return len(c.cars)
}

// Cars returns a copy of every listing in catalog order.
func (c *Catalog) Cars(ctx context.Context) ([]Car, error) {
	if err := c.wait(ctx, "cars"); err != nil {
		return nil, err
	}
	cp := make([]Car, len(c.cars))
	copy(cp, c.cars)
	return cp, nil
}

// FeaturedCars returns the featured listings in catalog order.
func (c *Catalog) FeaturedCars(ctx context.Context) ([]Car, error) {
	if err := c.wait(ctx, "featured"); err != nil {
		return nil, err
	}
	out := make([]Car, 0, len(c.cars))
	for i := range c.cars {
		if c.cars[i].Featured {
			out = append(out, c.cars[i])
		}
	}
	return out, nil
}

// CarByID looks a listing up by id.
func (c *Catalog) CarByID(ctx context.Context, id string) (Car, error) {
	if err := c.wait(ctx, "by_id"); err != nil {
		return Car{}, err
	}
	i, ok := c.byID[id]
	if !ok {
		return Car{}, fmt.Errorf("car %q: %w", id, ErrNotFound)
	}
	return c.cars[i], nil
}

func (c *Catalog) wait(ctx context.Context, op string) error {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			c.log.Debug("catalog query cancelled", zap.String("op", op), zap.Error(ctx.Err()))
			return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	if c.failing.Load() {
		c.log.Debug("catalog query failed", zap.String("op", op))
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return nil
}
