package interfaces

import (
	"context"

	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// ContentProvider serves the question catalog and canned result content
type ContentProvider interface {
	QuestionSet(industry types.Industry) *model.QuestionSet
	Content() *model.CannedContent
}

// DomainAnalyzer inspects the public DNS records of a company domain
type DomainAnalyzer interface {
	Analyze(ctx context.Context, domain string) (*model.DomainProfile, error)
}

// LeadNotifier tells the sales team about a qualified lead
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *model.Lead) error
}

// EventTracker records analytics events. Track must not block on I/O.
type EventTracker interface {
	Track(ctx context.Context, event *model.Event)
}

// ReportStore persists the result of a completed assessment and returns its location
type ReportStore interface {
	PutReport(ctx context.Context, assessment *model.Assessment) (string, error)
}

// Sampler is the randomness source of the demo simulator
type Sampler interface {
	// Float64 returns a number in [0.0, 1.0)
	Float64() float64
	// IntN returns a number in [0, n)
	IntN(n int) int
}
