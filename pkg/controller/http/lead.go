package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/usecase"
)

type domainProfileResponse struct {
	MXHosts  []string `json:"mx_hosts"`
	HasMail  bool     `json:"has_mail"`
	HasSPF   bool     `json:"has_spf"`
	HasDMARC bool     `json:"has_dmarc"`
}

type leadResponse struct {
	ID            string                 `json:"id"`
	Step          string                 `json:"step"`
	Progress      int                    `json:"progress"`
	Industry      string                 `json:"industry"`
	Domain        string                 `json:"domain"`
	DomainProfile *domainProfileResponse `json:"domain_profile,omitempty"`
	Email         string                 `json:"email,omitempty"`
	Phone         string                 `json:"phone,omitempty"`
	CompanySize   string                 `json:"company_size,omitempty"`
	Role          string                 `json:"role,omitempty"`
	Challenges    []string               `json:"challenges,omitempty"`
	Score         int                    `json:"score"`
	CreatedAt     time.Time              `json:"created_at"`
	CompletedAt   *time.Time             `json:"completed_at,omitempty"`
}

type startLeadRequest struct {
	Domain   string `json:"domain"`
	Industry string `json:"industry"`
}

type contactRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type qualificationRequest struct {
	CompanySize string   `json:"company_size"`
	Role        string   `json:"role"`
	Challenges  []string `json:"challenges"`
}

func toLeadResponse(state *usecase.LeadState) *leadResponse {
	lead := state.Lead
	resp := &leadResponse{
		ID:          string(lead.ID),
		Step:        lead.Step.String(),
		Progress:    state.Progress,
		Industry:    lead.Industry.String(),
		Domain:      lead.Domain,
		Email:       lead.Email,
		Phone:       lead.Phone,
		CompanySize: lead.CompanySize.String(),
		Role:        lead.Role.String(),
		Score:       lead.Score,
		CreatedAt:   lead.CreatedAt,
		CompletedAt: lead.CompletedAt,
	}
	if p := lead.DomainProfile; p != nil {
		resp.DomainProfile = &domainProfileResponse{
			MXHosts:  p.MXHosts,
			HasMail:  p.HasMail(),
			HasSPF:   p.HasSPF(),
			HasDMARC: p.HasDMARC(),
		}
	}
	for _, c := range lead.Challenges {
		resp.Challenges = append(resp.Challenges, c.String())
	}
	return resp
}

func (s *Server) startLeadHandler(w http.ResponseWriter, r *http.Request) {
	var req startLeadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.uc.Lead.Start(r.Context(), req.Domain, types.Industry(req.Industry))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toLeadResponse(state))
}

func (s *Server) getLeadHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.uc.Lead.Get(r.Context(), leadID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toLeadResponse(state))
}

func (s *Server) contactLeadHandler(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.uc.Lead.SubmitContact(r.Context(), leadID(r), req.Email, req.Phone)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toLeadResponse(state))
}

func (s *Server) qualifyLeadHandler(w http.ResponseWriter, r *http.Request) {
	var req qualificationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	input := usecase.QualificationInput{
		CompanySize: types.CompanySize(req.CompanySize),
		Role:        types.Role(req.Role),
	}
	for _, c := range req.Challenges {
		input.Challenges = append(input.Challenges, types.Challenge(c))
	}

	state, err := s.uc.Lead.SubmitQualification(r.Context(), leadID(r), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toLeadResponse(state))
}

func leadID(r *http.Request) model.LeadID {
	return model.LeadID(chi.URLParam(r, "leadID"))
}
