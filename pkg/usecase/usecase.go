package usecase

import (
	"context"
	"time"

	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
)

// DefaultStepTimeout bounds a single lead capture backend call
const DefaultStepTimeout = 5 * time.Second

type UseCases struct {
	repo        interfaces.Repository
	content     interfaces.ContentProvider
	analyzer    interfaces.DomainAnalyzer
	notifier    interfaces.LeadNotifier
	tracker     interfaces.EventTracker
	reports     interfaces.ReportStore
	stepTimeout time.Duration
	now         func() time.Time

	Assessment *AssessmentUseCase
	Lead       *LeadUseCase
	Experiment *ExperimentUseCase
}

type Option func(*UseCases)

func WithDomainAnalyzer(analyzer interfaces.DomainAnalyzer) Option {
	return func(uc *UseCases) {
		uc.analyzer = analyzer
	}
}

func WithLeadNotifier(notifier interfaces.LeadNotifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithEventTracker(tracker interfaces.EventTracker) Option {
	return func(uc *UseCases) {
		uc.tracker = tracker
	}
}

func WithReportStore(store interfaces.ReportStore) Option {
	return func(uc *UseCases) {
		uc.reports = store
	}
}

// WithStepTimeout sets the deadline of each lead capture backend call.
// Non-positive values keep the default.
func WithStepTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		if d > 0 {
			uc.stepTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, content interfaces.ContentProvider, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:        repo,
		content:     content,
		tracker:     nopTracker{},
		stepTimeout: DefaultStepTimeout,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = &AssessmentUseCase{uc: uc}
	uc.Lead = newLeadUseCase(uc)
	uc.Experiment = &ExperimentUseCase{uc: uc}

	return uc
}

func (uc *UseCases) timestamp() time.Time {
	return uc.now().UTC()
}

type nopTracker struct{}

func (nopTracker) Track(context.Context, *model.Event) {}
