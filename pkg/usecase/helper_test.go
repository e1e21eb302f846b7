package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/repository/memory"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/usecase"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func opt(value string, weight int) model.Option {
	return model.Option{Value: types.OptionValue(value), Label: value, Weight: weight}
}

// newTestContent has two base questions (max weight 17) and one finance
// question (max weight 10)
func newTestContent() *content.Static {
	recs := []string{"rec-1", "rec-2", "rec-3", "rec-4"}
	steps := []string{"step-1", "step-2", "step-3", "step-4"}

	return content.New(&model.Catalog{
		Base: []model.Question{
			{
				ID:       "size",
				Prompt:   "How many employees?",
				Category: types.CategoryGeneral,
				Options:  []model.Option{opt("small", 2), opt("large", 8)},
			},
			{
				ID:       "tools",
				Prompt:   "Which tools do you run?",
				Category: types.CategoryTechnical,
				Options:  []model.Option{opt("many", 1), opt("none", 9)},
			},
		},
		Industries: map[types.Industry][]model.Question{
			types.IndustryFinance: {
				{
					ID:       "regs",
					Prompt:   "Which regulations apply?",
					Category: types.CategoryCompliance,
					Industry: types.IndustryFinance,
					Options:  []model.Option{opt("strict", 1), opt("none", 10)},
				},
			},
		},
		Content: &model.CannedContent{
			Tiers: map[types.RiskTier]model.TierContent{
				types.RiskTierLow:      {BreachCost: "$850K", Recommendations: recs, NextSteps: steps},
				types.RiskTierMedium:   {BreachCost: "$2.1M", Recommendations: recs, NextSteps: steps},
				types.RiskTierHigh:     {BreachCost: "$4.2M", Recommendations: recs, NextSteps: steps},
				types.RiskTierCritical: {BreachCost: "$7.8M", Recommendations: recs, NextSteps: steps},
			},
			CategoryMessages: map[types.CategoryRating]string{
				types.CategoryRatingGood:     "{category} is fine",
				types.CategoryRatingFair:     "{category} is fair",
				types.CategoryRatingPoor:     "{category} is poor",
				types.CategoryRatingCritical: "{category} is critical",
			},
			PotentialSavings: "$3.2M+",
		},
	})
}

type recordingTracker struct {
	mu     sync.Mutex
	events []*model.Event
}

func (r *recordingTracker) Track(ctx context.Context, event *model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTracker) named(name string) []*model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

type stubAnalyzer struct {
	profile *model.DomainProfile
	err     error
	delay   time.Duration
}

func (s *stubAnalyzer) Analyze(ctx context.Context, domain string) (*model.DomainProfile, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.profile, s.err
}

type stubNotifier struct {
	leads chan *model.Lead
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{leads: make(chan *model.Lead, 4)}
}

func (s *stubNotifier) NotifyLead(ctx context.Context, lead *model.Lead) error {
	s.leads <- lead
	return nil
}

type stubReportStore struct {
	ids chan model.AssessmentID
}

func newStubReportStore() *stubReportStore {
	return &stubReportStore{ids: make(chan model.AssessmentID, 4)}
}

func (s *stubReportStore) PutReport(ctx context.Context, assessment *model.Assessment) (string, error) {
	s.ids <- assessment.ID
	return "gs://reports/" + string(assessment.ID) + ".json", nil
}

// slowRepository sleeps between reading a record and writing it back so
// that concurrent requests overlap
type slowRepository struct {
	interfaces.Repository
	delay time.Duration
}

func (r *slowRepository) Assessment() interfaces.AssessmentRepository {
	return &slowAssessments{AssessmentRepository: r.Repository.Assessment(), delay: r.delay}
}

func (r *slowRepository) Lead() interfaces.LeadRepository {
	return &slowLeads{LeadRepository: r.Repository.Lead(), delay: r.delay}
}

type slowAssessments struct {
	interfaces.AssessmentRepository
	delay time.Duration
}

func (r *slowAssessments) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	a, err := r.AssessmentRepository.Get(ctx, id)
	time.Sleep(r.delay)
	return a, err
}

func (r *slowAssessments) Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error) {
	return r.AssessmentRepository.Update(ctx, id, func(a *model.Assessment) error {
		time.Sleep(r.delay)
		return fn(a)
	})
}

type slowLeads struct {
	interfaces.LeadRepository
	delay time.Duration
}

func (r *slowLeads) Get(ctx context.Context, id model.LeadID) (*model.Lead, error) {
	lead, err := r.LeadRepository.Get(ctx, id)
	time.Sleep(r.delay)
	return lead, err
}

func (r *slowLeads) Update(ctx context.Context, id model.LeadID, fn func(*model.Lead) error) (*model.Lead, error) {
	return r.LeadRepository.Update(ctx, id, func(lead *model.Lead) error {
		time.Sleep(r.delay)
		return fn(lead)
	})
}

func newTestUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *recordingTracker) {
	t.Helper()
	return newTestUseCasesWithRepo(t, memory.New(), opts...)
}

func newTestUseCasesWithRepo(t *testing.T, repo interfaces.Repository, opts ...usecase.Option) (*usecase.UseCases, *recordingTracker) {
	t.Helper()
	tracker := &recordingTracker{}
	opts = append([]usecase.Option{
		usecase.WithEventTracker(tracker),
		usecase.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return usecase.New(repo, newTestContent(), opts...), tracker
}

// runConcurrently calls fn n times at once and returns the errors in call order
func runConcurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn()
		}(i)
	}
	wg.Wait()
	return errs
}

func expectNone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Errorf("unexpected background work: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for background work")
	}
	var zero T
	return zero
}
