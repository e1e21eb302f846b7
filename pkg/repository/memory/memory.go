package memory

import (
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps sessions in process memory. State is lost on restart; it
// backs tests and single instance deployments.
type Memory struct {
	assessment *assessmentRepository
	lead       *leadRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		assessment: newAssessmentRepository(),
		lead:       newLeadRepository(),
	}
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Lead() interfaces.LeadRepository {
	return m.lead
}

func (m *Memory) Close() error {
	return nil
}
