package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// LeadID is a UUID-based identifier for a lead capture session
type LeadID string

// NewLeadID generates a new UUID v4 LeadID
func NewLeadID() LeadID {
	return LeadID(uuid.New().String())
}

// DomainProfile is what the domain analysis step learned about a company domain
type DomainProfile struct {
	MXHosts []string
	SPF     string // raw v=spf1 record, empty if none
	DMARC   string // raw v=DMARC1 record, empty if none
}

// HasMail reports whether the domain receives mail
func (p *DomainProfile) HasMail() bool {
	return p != nil && len(p.MXHosts) > 0
}

// HasSPF reports whether an SPF policy is published
func (p *DomainProfile) HasSPF() bool {
	return p != nil && p.SPF != ""
}

// HasDMARC reports whether a DMARC policy is published
func (p *DomainProfile) HasDMARC() bool {
	return p != nil && p.DMARC != ""
}

// Lead is a prospect moving through domain, contact and qualification steps
type Lead struct {
	ID            LeadID
	Step          types.LeadStep
	Industry      types.Industry
	Domain        string
	DomainProfile *DomainProfile // nil when analysis failed or timed out
	Email         string
	Phone         string
	CompanySize   types.CompanySize
	Role          types.Role
	Challenges    []types.Challenge
	Score         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}

// maxLeadScore caps LeadScore
const maxLeadScore = 100

// LeadScore sums the qualification points of size, role and industry, capped at 100
func LeadScore(size types.CompanySize, role types.Role, industry types.Industry) int {
	return min(size.LeadScore()+role.LeadScore()+industry.LeadScore(), maxLeadScore)
}
