package interfaces

import "github.com/verteidiq/assessor/pkg/domain/types"

// ListLeadOption is a functional option for filtering leads in List
type ListLeadOption func(*listLeadConfig)

type listLeadConfig struct {
	step *types.LeadStep
}

// WithLeadStep filters leads by form step
func WithLeadStep(step types.LeadStep) ListLeadOption {
	return func(c *listLeadConfig) {
		c.step = &step
	}
}

// BuildListLeadConfig builds a listLeadConfig from options
func BuildListLeadConfig(opts ...ListLeadOption) *listLeadConfig {
	cfg := &listLeadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Step returns the step filter value, or nil if not set
func (c *listLeadConfig) Step() *types.LeadStep {
	return c.step
}
