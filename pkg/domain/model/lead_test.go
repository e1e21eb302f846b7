package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

func TestLeadScore(t *testing.T) {
	tests := []struct {
		name     string
		size     types.CompanySize
		role     types.Role
		industry types.Industry
		want     int
	}{
		{"small general other", types.CompanySize1To50, types.RoleOther, types.IndustryGeneral, 30},
		{"mid manufacturing devops", types.CompanySize201To1000, types.RoleDevOps, types.IndustryManufacturing, 80},
		{"capped", types.CompanySize5000Plus, types.RoleCISO, types.IndustryFinance, 100},
		{"unknown values score zero", "", "", "", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.LeadScore(tt.size, tt.role, tt.industry)).Equal(tt.want)
		})
	}
}

func TestDomainProfile(t *testing.T) {
	var nilProfile *model.DomainProfile
	gt.Bool(t, nilProfile.HasMail()).False()
	gt.Bool(t, nilProfile.HasSPF()).False()

	p := &model.DomainProfile{
		MXHosts: []string{"mx1.example.com."},
		SPF:     "v=spf1 include:_spf.example.com -all",
	}
	gt.Bool(t, p.HasMail()).True()
	gt.Bool(t, p.HasSPF()).True()
	gt.Bool(t, p.HasDMARC()).False()
}

func TestNewIDs(t *testing.T) {
	gt.Value(t, model.NewLeadID()).NotEqual(model.NewLeadID())
	gt.Value(t, model.NewAssessmentID()).NotEqual(model.NewAssessmentID())

	a := model.NewAssessment("")
	gt.Value(t, a.Industry).Equal(types.IndustryGeneral)
	gt.Bool(t, a.Completed()).False()
}
