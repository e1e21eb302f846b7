package model

import "time"

// Event names emitted by the forms
const (
	EventFormStart          = "form_start"
	EventFormComplete       = "form_complete"
	EventExperimentExposure = "experiment_exposure"
)

// Form types carried in the "form" property
const (
	FormAssessment  = "assessment"
	FormLeadCapture = "lead_capture"
)

// Event is a fire-and-forget analytics record with a flat property bag
type Event struct {
	Name       string
	Properties map[string]any
	OccurredAt time.Time
}

// NewEvent creates an event stamped with the current time
func NewEvent(name string, props map[string]any) *Event {
	if props == nil {
		props = map[string]any{}
	}
	return &Event{
		Name:       name,
		Properties: props,
		OccurredAt: time.Now().UTC(),
	}
}

// Property keys shared by the use cases and the tracker
const (
	PropForm        = "form"
	PropIndustry    = "industry"
	PropRiskTier    = "risk_tier"
	PropRiskScore   = "risk_score"
	PropBreachCost  = "breach_cost"
	PropLeadScore   = "lead_score"
	PropCompanySize = "company_size"
	PropRole        = "role"
	PropExperiment  = "experiment"
	PropVariant     = "variant"
)
