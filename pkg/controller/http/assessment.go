package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/usecase"
)

type optionResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type questionResponse struct {
	ID       string           `json:"id"`
	Prompt   string           `json:"prompt"`
	Category string           `json:"category"`
	Options  []optionResponse `json:"options"`
}

type questionSetResponse struct {
	Industry  string             `json:"industry"`
	Questions []questionResponse `json:"questions"`
}

type assessmentResponse struct {
	ID          string                  `json:"id"`
	Industry    string                  `json:"industry"`
	Step        int                     `json:"step"`
	Total       int                     `json:"total"`
	Progress    int                     `json:"progress"`
	Question    *questionResponse       `json:"question,omitempty"`
	Answers     map[string]string       `json:"answers"`
	Result      *model.AssessmentResult `json:"result,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
}

type startAssessmentRequest struct {
	Industry string `json:"industry"`
}

type advanceRequest struct {
	Answer string `json:"answer"`
}

type scoreRequest struct {
	Industry string            `json:"industry"`
	Answers  map[string]string `json:"answers"`
}

func toQuestionResponse(q *model.Question) *questionResponse {
	resp := &questionResponse{
		ID:       q.ID.String(),
		Prompt:   q.Prompt,
		Category: q.Category.String(),
		Options:  make([]optionResponse, len(q.Options)),
	}
	for i, opt := range q.Options {
		resp.Options[i] = optionResponse{
			Value:       opt.Value.String(),
			Label:       opt.Label,
			Description: opt.Description,
		}
	}
	return resp
}

func toAssessmentResponse(state *usecase.AssessmentState) *assessmentResponse {
	a := state.Assessment
	resp := &assessmentResponse{
		ID:          string(a.ID),
		Industry:    a.Industry.String(),
		Step:        state.Step,
		Total:       state.Total,
		Progress:    state.Progress,
		Answers:     make(map[string]string, len(a.Answers)),
		Result:      a.Result,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		CompletedAt: a.CompletedAt,
	}
	if state.Question != nil {
		resp.Question = toQuestionResponse(state.Question)
	}
	for id, value := range a.Answers {
		resp.Answers[id.String()] = value.String()
	}
	return resp
}

func (s *Server) questionsHandler(w http.ResponseWriter, r *http.Request) {
	set := s.uc.Assessment.Questions(types.Industry(r.URL.Query().Get("industry")))

	resp := questionSetResponse{
		Industry:  set.Industry.String(),
		Questions: make([]questionResponse, set.Len()),
	}
	for i := range set.Questions {
		resp.Questions[i] = *toQuestionResponse(&set.Questions[i])
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	answers := make(model.AnswerMap, len(req.Answers))
	for id, value := range req.Answers {
		answers[types.QuestionID(id)] = types.OptionValue(value)
	}

	result, err := s.uc.Assessment.Score(r.Context(), types.Industry(req.Industry), answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) startAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	var req startAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.uc.Assessment.Start(r.Context(), types.Industry(req.Industry))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAssessmentResponse(state))
}

func (s *Server) getAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.uc.Assessment.Get(r.Context(), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssessmentResponse(state))
}

func (s *Server) advanceAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.uc.Assessment.Advance(r.Context(), assessmentID(r), types.OptionValue(req.Answer))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssessmentResponse(state))
}

func (s *Server) retreatAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.uc.Assessment.Retreat(r.Context(), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssessmentResponse(state))
}

func (s *Server) resetAssessmentHandler(w http.ResponseWriter, r *http.Request) {
	state, err := s.uc.Assessment.Reset(r.Context(), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssessmentResponse(state))
}

func assessmentID(r *http.Request) model.AssessmentID {
	return model.AssessmentID(chi.URLParam(r, "assessmentID"))
}
