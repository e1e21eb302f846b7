package types

import "fmt"

// LeadStep is the position of a lead in the three step capture form
type LeadStep string

const (
	// LeadStepDomain only exists while the domain is analyzed; a lead is
	// first stored at the contact step
	LeadStepDomain        LeadStep = "domain"
	LeadStepContact       LeadStep = "contact"
	LeadStepQualification LeadStep = "qualification"
	LeadStepCompleted     LeadStep = "completed"
)

// AllLeadSteps returns all steps in form order
func AllLeadSteps() []LeadStep {
	return []LeadStep{
		LeadStepDomain,
		LeadStepContact,
		LeadStepQualification,
		LeadStepCompleted,
	}
}

// IsValid checks if the step is valid
func (s LeadStep) IsValid() bool {
	switch s {
	case LeadStepDomain,
		LeadStepContact,
		LeadStepQualification,
		LeadStepCompleted:
		return true
	default:
		return false
	}
}

// Next returns the step that follows s. Completed is terminal.
func (s LeadStep) Next() LeadStep {
	switch s {
	case LeadStepDomain:
		return LeadStepContact
	case LeadStepContact:
		return LeadStepQualification
	default:
		return LeadStepCompleted
	}
}

// Progress is the progress bar percentage shown for the step
func (s LeadStep) Progress() int {
	switch s {
	case LeadStepDomain:
		return 25
	case LeadStepContact:
		return 50
	case LeadStepQualification:
		return 75
	default:
		return 100
	}
}

// String returns the string representation of the step
func (s LeadStep) String() string {
	return string(s)
}

// ParseLeadStep parses a string into a LeadStep
func ParseLeadStep(s string) (LeadStep, error) {
	step := LeadStep(s)
	if !step.IsValid() {
		return "", fmt.Errorf("invalid lead step: %s", s)
	}
	return step, nil
}

// CompanySize is the employee count bucket chosen in the qualification step
type CompanySize string

const (
	CompanySize1To50      CompanySize = "1-50"
	CompanySize51To200    CompanySize = "51-200"
	CompanySize201To1000  CompanySize = "201-1000"
	CompanySize1001To5000 CompanySize = "1001-5000"
	CompanySize5000Plus   CompanySize = "5000+"
)

var companySizeScores = map[CompanySize]int{
	CompanySize1To50:      10,
	CompanySize51To200:    25,
	CompanySize201To1000:  40,
	CompanySize1001To5000: 60,
	CompanySize5000Plus:   80,
}

// AllCompanySizes returns the buckets from smallest to largest
func AllCompanySizes() []CompanySize {
	return []CompanySize{
		CompanySize1To50,
		CompanySize51To200,
		CompanySize201To1000,
		CompanySize1001To5000,
		CompanySize5000Plus,
	}
}

// IsValid checks if the size bucket is known
func (c CompanySize) IsValid() bool {
	_, ok := companySizeScores[c]
	return ok
}

// LeadScore is the qualification points for the bucket
func (c CompanySize) LeadScore() int {
	return companySizeScores[c]
}

// String returns the string representation of the size
func (c CompanySize) String() string {
	return string(c)
}

// Role is the job function chosen in the qualification step
type Role string

const (
	RoleCISO       Role = "ciso"
	RoleITManager  Role = "it-manager"
	RoleDevOps     Role = "devops"
	RoleEngineer   Role = "engineer"
	RoleConsultant Role = "consultant"
	RoleOther      Role = "other"
)

var roleScores = map[Role]int{
	RoleCISO:       80,
	RoleITManager:  40,
	RoleDevOps:     20,
	RoleEngineer:   20,
	RoleConsultant: 20,
	RoleOther:      10,
}

// AllRoles returns the roles in form order
func AllRoles() []Role {
	return []Role{
		RoleCISO,
		RoleITManager,
		RoleDevOps,
		RoleEngineer,
		RoleConsultant,
		RoleOther,
	}
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	_, ok := roleScores[r]
	return ok
}

// LeadScore is the qualification points for the role
func (r Role) LeadScore() int {
	return roleScores[r]
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Challenge is one of the security challenges a lead can tick
type Challenge string

const (
	ChallengeCompliance      Challenge = "compliance"
	ChallengeZeroDay         Challenge = "zero-day"
	ChallengeFalsePositives  Challenge = "false-positives"
	ChallengeAutomation      Challenge = "automated-response"
	ChallengeTeamScaling     Challenge = "team-scaling"
	ChallengeDevOpsIntegrate Challenge = "devops-integration"
)

// AllChallenges returns the challenges in form order
func AllChallenges() []Challenge {
	return []Challenge{
		ChallengeCompliance,
		ChallengeZeroDay,
		ChallengeFalsePositives,
		ChallengeAutomation,
		ChallengeTeamScaling,
		ChallengeDevOpsIntegrate,
	}
}

// IsValid checks if the challenge is known
func (c Challenge) IsValid() bool {
	for _, known := range AllChallenges() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the challenge
func (c Challenge) String() string {
	return string(c)
}

var industryLeadScores = map[Industry]int{
	IndustryFinance:       30,
	IndustryHealthcare:    25,
	IndustryManufacturing: 20,
	IndustryGeneral:       10,
}

// LeadScore is the qualification points for the industry
func (i Industry) LeadScore() int {
	return industryLeadScores[i.Normalize()]
}
