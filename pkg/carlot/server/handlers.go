package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/compare"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

// CarsResponse is the body of GET /cars.
type CarsResponse struct {
	// Status is "ready" or "empty"; a failed catalog is a 503 instead.
	Status string        `json:"status"`
	Query  string        `json:"query"`
	Filter search.Filter `json:"filter"`
	Sort   search.Sort   `json:"sort"`
	search.Result
	Pages []search.PageToken `json:"pages"`
}

// CompareResponse is the body of GET /compare.
type CompareResponse struct {
	Cars  []dal.Car      `json:"cars"`
	Specs []compare.Spec `json:"specs"`
}

// ModelsResponse is the body of GET /makes/{make}/models.
type ModelsResponse struct {
	Make   string   `json:"make"`
	Models []string `json:"models"`
}

// GetCars defines a GET handler to search cars. Malformed parameters are
// normalized, never rejected.
func (h *httpServer) GetCars(w http.ResponseWriter, r *http.Request) {
	filter, sort, page := search.DecodeValues(r.URL.Query())
	filter = search.Reconcile(filter, h.vocab)
	q := search.Query{Filter: filter, Sort: sort, Page: page}

	var res search.Result
	err := h.timed("search", func() error {
		var err error
		res, err = h.search.SearchCars(r.Context(), q)
		return err
	})
	if err != nil {
		h.metrics.searches.WithLabelValues("unavailable").Inc()
		h.catalogError(w, r, "search failed", err)
		return
	}

	status := "ready"
	if res.Empty() {
		status = "empty"
	}
	h.metrics.searches.WithLabelValues(status).Inc()
	h.metrics.searchResults.Observe(float64(res.Total))

	// Echo the page actually served, after clamping.
	q.Page = res.Page
	writeJSON(w, http.StatusOK, CarsResponse{
		Status: status,
		Query:  q.Encode(),
		Filter: q.Filter,
		Sort:   q.Sort,
		Result: res,
		Pages:  res.Pages(),
	})
}

// GetFeaturedCars returns the featured listings.
func (h *httpServer) GetFeaturedCars(w http.ResponseWriter, r *http.Request) {
	var cars []dal.Car
	err := h.timed("featured", func() error {
		var err error
		cars, err = h.search.FeaturedCars(r.Context())
		return err
	})
	if err != nil {
		h.catalogError(w, r, "featured cars failed", err)
		return
	}
	if cars == nil {
		cars = []dal.Car{}
	}
	writeJSON(w, http.StatusOK, cars)
}

// GetCar returns a single listing.
func (h *httpServer) GetCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var car dal.Car
	err := h.timed("by_id", func() error {
		var err error
		car, err = h.search.CarByID(r.Context(), id)
		return err
	})
	if err != nil {
		h.catalogError(w, r, "car lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// GetComparison compares the cars listed in ?ids=a,b,c.
func (h *httpServer) GetComparison(w http.ResponseWriter, r *http.Request) {
	sel, err := compare.ParseSelection(r.URL.Query().Get("ids"))
	if err != nil {
		h.metrics.compares.WithLabelValues("bad_request").Inc()
		badRequest(w, err.Error(), r.URL.Path)
		return
	}
	if sel.Len() == 0 {
		h.metrics.compares.WithLabelValues("bad_request").Inc()
		badRequest(w, compare.ErrSelectionSize.Error(), r.URL.Path)
		return
	}

	var cars []dal.Car
	err = h.timed("by_id", func() error {
		var err error
		cars, err = h.search.CarsByID(r.Context(), sel.IDs())
		return err
	})
	if err != nil {
		h.metrics.compares.WithLabelValues("lookup_failed").Inc()
		h.catalogError(w, r, "compare lookup failed", err)
		return
	}

	specs, err := compare.Compare(cars)
	if err != nil {
		h.metrics.compares.WithLabelValues("bad_request").Inc()
		badRequest(w, err.Error(), r.URL.Path)
		return
	}
	h.metrics.compares.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, CompareResponse{Cars: cars, Specs: specs})
}

// GetMakes returns the make/model vocabulary.
func (h *httpServer) GetMakes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.vocab.Entries())
}

// GetModels returns the models offered for one make.
func (h *httpServer) GetModels(w http.ResponseWriter, r *http.Request) {
	makeName, ok := h.vocab.CanonicalMake(mux.Vars(r)["make"])
	if !ok {
		notFound(w, "unknown make", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Make: makeName, Models: h.vocab.Models(makeName)})
}

// GetFacets returns the values available to the filter controls.
func (h *httpServer) GetFacets(w http.ResponseWriter, r *http.Request) {
	var facets search.Facets
	err := h.timed("cars", func() error {
		var err error
		facets, err = h.search.Facets(r.Context())
		return err
	})
	if err != nil {
		h.catalogError(w, r, "facets failed", err)
		return
	}
	writeJSON(w, http.StatusOK, facets)
}

// Healthz reports liveness.
func (h *httpServer) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *httpServer) timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	h.metrics.fetchSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	return err
}

// catalogError maps data-layer errors onto problem responses.
func (h *httpServer) catalogError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, dal.ErrNotFound):
		notFound(w, err.Error(), r.URL.Path)
	case errors.Is(err, dal.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn(msg, zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
		unavailable(w, "catalog is unavailable, please retry", r.URL.Path)
	default:
		h.log.Error(msg, zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
		internalError(w, "internal error", r.URL.Path)
	}
}
