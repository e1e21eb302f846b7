package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/repository/firestore"
	"github.com/verteidiq/assessor/pkg/repository/memory"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrAssessmentNotFound = goerr.New("assessment not found")
	ErrLeadNotFound       = goerr.New("lead not found")

	// State errors
	ErrInvalidLeadStep = goerr.New("lead is not on this step")

	// Input errors
	ErrInvalidInput = goerr.New("invalid input")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	LeadIDKey       = "lead_id"
	StepKey         = "step"
	FieldKey        = "field"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}
