package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

// Options configures the HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit is requests per second per client; zero disables it.
	RateLimit float64
	RateBurst int
	Logger    *zap.Logger
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(opts Options, svc *search.Service, vocab *dal.Vocabulary) *http.Server {
	server := newHTTPServer(svc, vocab, opts.Logger)
	r := server.router()
	if opts.RateLimit > 0 {
		// Liveness checks and scrapes are never throttled.
		r.Use(newClientLimiter(opts.RateLimit, opts.RateBurst, "/healthz", "/metrics").middleware)
	}
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}
}

type httpServer struct {
	log     *zap.Logger
	search  *search.Service
	vocab   *dal.Vocabulary
	metrics *metrics
}

func newHTTPServer(svc *search.Service, vocab *dal.Vocabulary, log *zap.Logger) *httpServer {
	if log == nil {
		log = zap.NewNop()
	}
	if vocab == nil {
		vocab = dal.NewVocabulary(nil)
	}
	return &httpServer{
		log:     log,
		search:  svc,
		vocab:   vocab,
		metrics: newMetrics(),
	}
}

func (h *httpServer) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, accessLog(h.log))

	r.HandleFunc("/cars", h.GetCars).Methods(http.MethodGet)
	r.HandleFunc("/cars/featured", h.GetFeaturedCars).Methods(http.MethodGet)
	r.HandleFunc("/cars/{id}", h.GetCar).Methods(http.MethodGet)
	r.HandleFunc("/compare", h.GetComparison).Methods(http.MethodGet)
	r.HandleFunc("/makes", h.GetMakes).Methods(http.MethodGet)
	r.HandleFunc("/makes/{make}/models", h.GetModels).Methods(http.MethodGet)
	r.HandleFunc("/facets", h.GetFacets).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.Handle("/metrics", h.metrics.handler()).Methods(http.MethodGet)
	return r
}
