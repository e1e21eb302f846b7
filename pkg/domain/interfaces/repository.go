package interfaces

import (
	"context"

	"github.com/verteidiq/assessor/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository
	Lead() LeadRepository

	Close() error
}

// AssessmentRepository stores questionnaire sessions
type AssessmentRepository interface {
	// Put creates or replaces the session
	Put(ctx context.Context, assessment *model.Assessment) error

	// Get returns the session or an error wrapping the backend's ErrNotFound
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)

	// Update applies fn to the stored session atomically and returns the saved
	// value. Nothing is written when fn fails. fn may run more than once and
	// must only change the record it is given.
	Update(ctx context.Context, id model.AssessmentID, fn func(*model.Assessment) error) (*model.Assessment, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id model.AssessmentID) error
}

// LeadRepository stores lead capture sessions
type LeadRepository interface {
	// Put creates or replaces the lead
	Put(ctx context.Context, lead *model.Lead) error

	// Get returns the lead or an error wrapping the backend's ErrNotFound
	Get(ctx context.Context, id model.LeadID) (*model.Lead, error)

	// Update applies fn to the stored lead atomically and returns the saved
	// value. Nothing is written when fn fails. fn may run more than once and
	// must only change the record it is given.
	Update(ctx context.Context, id model.LeadID, fn func(*model.Lead) error) (*model.Lead, error)

	// List returns up to limit leads, most recently created first
	List(ctx context.Context, limit int, opts ...ListLeadOption) ([]*model.Lead, error)
}
