package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// AssessmentID is a UUID-based identifier for an assessment session
type AssessmentID string

// NewAssessmentID generates a new UUID v4 AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// AnswerMap maps a question to the selected option value
type AnswerMap map[types.QuestionID]types.OptionValue

// Clone returns an independent copy
func (a AnswerMap) Clone() AnswerMap {
	if a == nil {
		return AnswerMap{}
	}
	return maps.Clone(a)
}

// CategoryResult is the breakdown of one question category
type CategoryResult struct {
	Percent         float64              `json:"percent"`
	Score           int                  `json:"score"`
	Rating          types.CategoryRating `json:"rating"`
	Recommendations []string             `json:"recommendations"`
}

// AssessmentResult is derived from an AnswerMap; it is never updated in place
type AssessmentResult struct {
	Tier                types.RiskTier                    `json:"overall_risk"`
	Percent             float64                           `json:"risk_score_percent"`
	Score               int                               `json:"risk_score"`
	EstimatedBreachCost string                            `json:"estimated_breach_cost"`
	PotentialSavings    string                            `json:"potential_savings"`
	Categories          map[types.Category]CategoryResult `json:"categories"`
	Recommendations     []string                          `json:"recommendations"`
	NextSteps           []string                          `json:"next_steps"`
}

// Assessment is the persisted state of one questionnaire session
type Assessment struct {
	ID          AssessmentID
	Industry    types.Industry
	Step        int
	Answers     AnswerMap
	Result      *AssessmentResult
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// NewAssessment creates an empty session for industry
func NewAssessment(industry types.Industry) *Assessment {
	return &Assessment{
		ID:       NewAssessmentID(),
		Industry: industry.Normalize(),
		Answers:  AnswerMap{},
	}
}

// Completed reports whether the session reached the results state
func (a *Assessment) Completed() bool {
	return a.Result != nil
}
