package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type variantResponse struct {
	Session    string `json:"session"`
	Experiment string `json:"experiment"`
	Variant    string `json:"variant"`
}

// variantHandler serves ?session=<id>&variants=a,b,c. variants is optional.
func (s *Server) variantHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var variants []string
	if raw := query.Get("variants"); raw != "" {
		for _, v := range strings.Split(raw, ",") {
			variants = append(variants, strings.TrimSpace(v))
		}
	}

	assignment, err := s.uc.Experiment.Assign(r.Context(), query.Get("session"), chi.URLParam(r, "experimentID"), variants)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, variantResponse{
		Session:    assignment.SessionID,
		Experiment: assignment.ExperimentID,
		Variant:    assignment.Variant,
	})
}

func (s *Server) demoFeedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.demo.Snapshot())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
