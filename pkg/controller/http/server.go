package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/verteidiq/assessor/pkg/service/demo"
	"github.com/verteidiq/assessor/pkg/usecase"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 64 * 1024

// DemoFeed is the source of the live demo snapshot
type DemoFeed interface {
	Snapshot() demo.Snapshot
}

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	demo    DemoFeed
	metrics prometheus.Gatherer
}

type Options func(*Server)

func WithDemoFeed(feed DemoFeed) Options {
	return func(s *Server) {
		s.demo = feed
	}
}

// WithMetrics exposes gatherer on /metrics
func WithMetrics(gatherer prometheus.Gatherer) Options {
	return func(s *Server) {
		s.metrics = gatherer
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Get("/questions", s.questionsHandler)
		r.Post("/score", s.scoreHandler)

		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", s.startAssessmentHandler)
			r.Route("/{assessmentID}", func(r chi.Router) {
				r.Get("/", s.getAssessmentHandler)
				r.Post("/advance", s.advanceAssessmentHandler)
				r.Post("/retreat", s.retreatAssessmentHandler)
				r.Post("/reset", s.resetAssessmentHandler)
			})
		})

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", s.startLeadHandler)
			r.Route("/{leadID}", func(r chi.Router) {
				r.Get("/", s.getLeadHandler)
				r.Post("/contact", s.contactLeadHandler)
				r.Post("/qualification", s.qualifyLeadHandler)
			})
		})

		r.Get("/experiments/{experimentID}/variant", s.variantHandler)

		if s.demo != nil {
			r.Get("/demo/feed", s.demoFeedHandler)
		}
	})

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
