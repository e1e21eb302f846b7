package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/verteidiq/assessor/pkg/cli/config"
	httpctrl "github.com/verteidiq/assessor/pkg/controller/http"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/repository/memory"
	"github.com/verteidiq/assessor/pkg/service/analytics"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/service/demo"
	"github.com/verteidiq/assessor/pkg/usecase"
)

type fakeFeed struct{}

func (fakeFeed) Snapshot() demo.Snapshot {
	return demo.Snapshot{Progress: 40, Ticks: 4, ThreatsDetected: 1, ThreatsBlocked: 1}
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(ctx context.Context, domain string) (*model.DomainProfile, error) {
	return nil, errors.New("resolver unreachable")
}

func newTestServer(t *testing.T, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()

	catalog, err := config.LoadCatalog("")
	gt.NoError(t, err).Required()

	reg := prometheus.NewRegistry()
	opts = append([]usecase.Option{usecase.WithEventTracker(analytics.New(reg))}, opts...)
	uc := usecase.New(memory.New(), content.New(catalog), opts...)

	return httpctrl.New(uc,
		httpctrl.WithDemoFeed(fakeFeed{}),
		httpctrl.WithMetrics(reg),
	)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type questionBody struct {
	ID      string `json:"id"`
	Options []struct {
		Value string `json:"value"`
	} `json:"options"`
}

type assessmentBody struct {
	ID       string        `json:"id"`
	Industry string        `json:"industry"`
	Step     int           `json:"step"`
	Total    int           `json:"total"`
	Progress int           `json:"progress"`
	Question *questionBody `json:"question"`
	Result   *struct {
		Tier       string `json:"overall_risk"`
		Score      int    `json:"risk_score"`
		BreachCost string `json:"estimated_breach_cost"`
	} `json:"result"`
}

type leadBody struct {
	ID            string `json:"id"`
	Step          string `json:"step"`
	Progress      int    `json:"progress"`
	Score         int    `json:"score"`
	DomainProfile any    `json:"domain_profile"`
}

// worstAnswers picks the highest weighted option of every built-in finance question
var worstAnswers = map[string]string{
	"company_size":            "enterprise",
	"security_incidents":      "major",
	"security_budget":         "none",
	"compliance_requirements": "multiple",
	"data_sensitivity":        "critical",
	"security_tools":          "basic",
	"threat_monitoring":       "none",
	"response_time":           "hours",
	"financial_regulations":   "comprehensive",
}

type errorBody struct {
	Error string `json:"error"`
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
}

func TestServer_Questions(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/questions?industry=healthcare", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	body := decode[struct {
		Industry  string         `json:"industry"`
		Questions []questionBody `json:"questions"`
	}](t, w)
	gt.Value(t, body.Industry).Equal("healthcare")
	gt.Array(t, body.Questions).Length(9)
	gt.Bool(t, bytes.Contains(w.Body.Bytes(), []byte("weight"))).False()

	w = doJSON(t, srv, http.MethodGet, "/api/questions?industry=retail", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Array(t, decode[struct {
		Questions []questionBody `json:"questions"`
	}](t, w).Questions).Length(8)
}

func TestServer_AssessmentFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/assessments", map[string]string{"industry": "finance"})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	state := decode[assessmentBody](t, w)
	gt.Value(t, state.Total).Equal(9)
	gt.Value(t, state.Question).NotNil()

	base := "/api/assessments/" + state.ID

	for state.Question != nil {
		w = doJSON(t, srv, http.MethodPost, base+"/advance", map[string]string{
			"answer": worstAnswers[state.Question.ID],
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		state = decode[assessmentBody](t, w)
	}

	gt.Value(t, state.Progress).Equal(100)
	gt.Value(t, state.Result).NotNil().Required()
	gt.Value(t, state.Result.Tier).Equal("critical")
	gt.Value(t, state.Result.Score).Equal(100)
	gt.Value(t, state.Result.BreachCost).Equal("$7.8M")

	w = doJSON(t, srv, http.MethodPost, base+"/retreat", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	state = decode[assessmentBody](t, w)
	gt.Value(t, state.Result).Nil()
	gt.Value(t, state.Step).Equal(8)

	w = doJSON(t, srv, http.MethodPost, base+"/reset", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	state = decode[assessmentBody](t, w)
	gt.Value(t, state.Step).Equal(0)
	gt.Value(t, state.Progress).Equal(0)

	w = doJSON(t, srv, http.MethodGet, base, nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[assessmentBody](t, w).ID).Equal(state.ID)
}

func TestServer_AssessmentErrors(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/assessments", map[string]string{})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	state := decode[assessmentBody](t, w)
	gt.Value(t, state.Industry).Equal("general")
	base := "/api/assessments/" + state.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"empty answer", http.MethodPost, base + "/advance", map[string]string{"answer": ""}, http.StatusBadRequest},
		{"unknown option", http.MethodPost, base + "/advance", map[string]string{"answer": "galactic"}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, base + "/advance", map[string]string{"choice": "small"}, http.StatusBadRequest},
		{"missing session", http.MethodGet, "/api/assessments/nope", nil, http.StatusNotFound},
		{"advance missing session", http.MethodPost, "/api/assessments/nope/advance", map[string]string{"answer": "small"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, srv, tt.method, tt.path, tt.body)
			gt.Value(t, w.Code).Equal(tt.status)
			gt.Value(t, decode[errorBody](t, w).Error).NotEqual("")
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, base+"/advance", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_Score(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/score", map[string]any{
		"industry": "general",
		"answers":  map[string]string{},
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)

	result := decode[struct {
		Tier  string `json:"overall_risk"`
		Score int    `json:"risk_score"`
	}](t, w)
	gt.Value(t, result.Tier).Equal("low")
	gt.Value(t, result.Score).Equal(0)
}

func TestServer_LeadFlow(t *testing.T) {
	srv := newTestServer(t, usecase.WithDomainAnalyzer(failingAnalyzer{}))

	w := doJSON(t, srv, http.MethodPost, "/api/leads", map[string]string{"domain": "acme.example.com", "industry": "healthcare"})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	lead := decode[leadBody](t, w)
	gt.Value(t, lead.Step).Equal("contact")
	gt.Value(t, lead.Progress).Equal(50)
	gt.Value(t, lead.DomainProfile).Nil()

	base := "/api/leads/" + lead.ID

	w = doJSON(t, srv, http.MethodPost, base+"/qualification", map[string]any{"company_size": "1-50", "role": "other"})
	gt.Value(t, w.Code).Equal(http.StatusConflict)

	w = doJSON(t, srv, http.MethodPost, base+"/contact", map[string]string{"email": "not-an-email"})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	gt.String(t, decode[errorBody](t, w).Error).Contains("email")

	w = doJSON(t, srv, http.MethodPost, base+"/contact", map[string]string{"email": "sec@acme.example.com"})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[leadBody](t, w).Progress).Equal(75)

	w = doJSON(t, srv, http.MethodPost, base+"/qualification", map[string]any{
		"company_size": "201-1000",
		"role":         "it-manager",
		"challenges":   []string{"compliance"},
	})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	lead = decode[leadBody](t, w)
	gt.Value(t, lead.Step).Equal("completed")
	gt.Value(t, lead.Score).Equal(100)

	w = doJSON(t, srv, http.MethodGet, "/api/leads/missing", nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)

	w = doJSON(t, srv, http.MethodPost, "/api/leads", map[string]string{"domain": "not a domain"})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestServer_Variant(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/experiments/b/variant?session=a", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[map[string]string](t, w)["variant"]).Equal("control")

	w = doJSON(t, srv, http.MethodGet, "/api/experiments/b/variant?session=a&variants=x,y", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[map[string]string](t, w)["variant"]).Equal("y")

	w = doJSON(t, srv, http.MethodGet, "/api/experiments/b/variant", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}

func TestServer_DemoFeedAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/demo/feed", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[demo.Snapshot](t, w).Progress).Equal(40)

	w = doJSON(t, srv, http.MethodGet, "/metrics", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
}
