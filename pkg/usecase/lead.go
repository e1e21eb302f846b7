package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"github.com/verteidiq/assessor/pkg/utils/async"
	"github.com/verteidiq/assessor/pkg/utils/logging"
	"github.com/verteidiq/assessor/pkg/utils/task"
)

// LeadUseCase runs the three step lead capture form
type LeadUseCase struct {
	uc       *UseCases
	validate *validator.Validate
}

// LeadState is the view of a lead after an operation
type LeadState struct {
	Lead     *model.Lead
	Progress int
}

// QualificationInput is the payload of the last lead capture step
type QualificationInput struct {
	CompanySize types.CompanySize
	Role        types.Role
	Challenges  []types.Challenge
}

type domainInput struct {
	Domain string `json:"domain" validate:"required,fqdn"`
}

type contactInput struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

type qualificationInput struct {
	CompanySize types.CompanySize `json:"company_size" validate:"required,company_size"`
	Role        types.Role        `json:"role" validate:"required,lead_role"`
	Challenges  []types.Challenge `json:"challenges" validate:"unique,dive,challenge"`
}

func newLeadUseCase(uc *UseCases) *LeadUseCase {
	v, err := newLeadValidator()
	if err != nil {
		panic(err)
	}
	return &LeadUseCase{uc: uc, validate: v}
}

// newLeadValidator reports field errors by their json name and knows the
// enum tags of the lead form
func newLeadValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"company_size": func(fl validator.FieldLevel) bool {
			return types.CompanySize(fl.Field().String()).IsValid()
		},
		"lead_role": func(fl validator.FieldLevel) bool {
			return types.Role(fl.Field().String()).IsValid()
		},
		"challenge": func(fl validator.FieldLevel) bool {
			return types.Challenge(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, goerr.Wrap(err, "failed to register validation", goerr.V("tag", tag))
		}
	}
	return v, nil
}

// Start runs the domain step: the domain is checked and analyzed, and the
// lead moves on to the contact step. A failed or slow analysis leaves the
// lead without a profile; cancellation by the caller aborts the step.
func (l *LeadUseCase) Start(ctx context.Context, domain string, industry types.Industry) (*LeadState, error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if err := l.validate.Struct(domainInput{Domain: domain}); err != nil {
		return nil, invalidInput(err, "invalid domain step")
	}

	now := l.uc.timestamp()
	lead := &model.Lead{
		ID:        model.NewLeadID(),
		Step:      types.LeadStepDomain,
		Industry:  normalizeIndustry(industry),
		Domain:    domain,
		CreatedAt: now,
	}

	profile, err := l.analyze(ctx, domain)
	if err != nil {
		return nil, err
	}
	lead.DomainProfile = profile
	lead.Step = lead.Step.Next()
	lead.UpdatedAt = l.uc.timestamp()

	if err := l.uc.repo.Lead().Put(ctx, lead); err != nil {
		return nil, goerr.Wrap(err, "failed to save lead", goerr.V(LeadIDKey, lead.ID))
	}

	l.uc.tracker.Track(ctx, model.NewEvent(model.EventFormStart, map[string]any{
		model.PropForm:     model.FormLeadCapture,
		model.PropIndustry: lead.Industry.String(),
	}))

	return stateOfLead(lead), nil
}

// SubmitContact runs the contact step
func (l *LeadUseCase) SubmitContact(ctx context.Context, id model.LeadID, email, phone string) (*LeadState, error) {
	input := contactInput{
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}

	lead, err := l.updateAt(ctx, id, types.LeadStepContact, func(lead *model.Lead) error {
		if err := l.validate.Struct(input); err != nil {
			return invalidInput(err, "invalid contact step", goerr.V(LeadIDKey, id))
		}
		lead.Email = input.Email
		lead.Phone = input.Phone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stateOfLead(lead), nil
}

// SubmitQualification runs the last step, scores the lead and notifies sales.
// Only one of concurrent submissions for a lead succeeds.
func (l *LeadUseCase) SubmitQualification(ctx context.Context, id model.LeadID, in QualificationInput) (*LeadState, error) {
	input := qualificationInput(in)

	lead, err := l.updateAt(ctx, id, types.LeadStepQualification, func(lead *model.Lead) error {
		if err := l.validate.Struct(input); err != nil {
			return invalidInput(err, "invalid qualification step", goerr.V(LeadIDKey, id))
		}
		lead.CompanySize = input.CompanySize
		lead.Role = input.Role
		lead.Challenges = input.Challenges
		lead.Score = model.LeadScore(lead.CompanySize, lead.Role, lead.Industry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.uc.tracker.Track(ctx, model.NewEvent(model.EventFormComplete, map[string]any{
		model.PropForm:        model.FormLeadCapture,
		model.PropIndustry:    lead.Industry.String(),
		model.PropLeadScore:   lead.Score,
		model.PropCompanySize: lead.CompanySize.String(),
		model.PropRole:        lead.Role.String(),
	}))

	logging.From(ctx).Info("lead qualified",
		slog.String("lead_id", string(lead.ID)),
		slog.String("domain", lead.Domain),
		slog.Int("score", lead.Score),
	)

	l.notify(ctx, lead)

	return stateOfLead(lead), nil
}

// Get loads a lead
func (l *LeadUseCase) Get(ctx context.Context, id model.LeadID) (*LeadState, error) {
	lead, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return stateOfLead(lead), nil
}

// Recent returns the newest leads first. A non-empty step keeps only leads
// at that step. The domain step is never stored, so filtering on it is
// rejected.
func (l *LeadUseCase) Recent(ctx context.Context, limit int, step types.LeadStep) ([]*model.Lead, error) {
	if limit <= 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "limit must be positive", goerr.V("limit", limit))
	}

	var opts []interfaces.ListLeadOption
	if step != "" {
		if !step.IsValid() {
			return nil, goerr.Wrap(ErrInvalidInput, "unknown lead step", goerr.V(StepKey, step))
		}
		if step == types.LeadStepDomain {
			return nil, goerr.Wrap(ErrInvalidInput, "leads are stored from the contact step on", goerr.V(StepKey, step))
		}
		opts = append(opts, interfaces.WithLeadStep(step))
	}

	leads, err := l.uc.repo.Lead().List(ctx, limit, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list leads")
	}
	return leads, nil
}

func (l *LeadUseCase) analyze(ctx context.Context, domain string) (*model.DomainProfile, error) {
	if l.uc.analyzer == nil {
		return nil, nil
	}

	future := task.Run(ctx, l.uc.stepTimeout, func(ctx context.Context) (*model.DomainProfile, error) {
		return l.uc.analyzer.Analyze(ctx, domain)
	})

	profile, err := future.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, goerr.Wrap(ctx.Err(), "domain step aborted", goerr.V("domain", domain))
		}
		logging.From(ctx).Warn("domain analysis failed, continuing without profile",
			slog.String("domain", domain),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return profile, nil
}

func (l *LeadUseCase) notify(ctx context.Context, lead *model.Lead) {
	if l.uc.notifier == nil {
		return
	}

	snapshot := *lead
	async.Dispatch(ctx, "notify lead", func(ctx context.Context) error {
		future := task.Run(ctx, l.uc.stepTimeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, l.uc.notifier.NotifyLead(ctx, &snapshot)
		})
		if _, err := future.Await(ctx); err != nil {
			return goerr.Wrap(err, "failed to notify lead", goerr.V(LeadIDKey, snapshot.ID))
		}
		return nil
	})
}

func (l *LeadUseCase) load(ctx context.Context, id model.LeadID) (*model.Lead, error) {
	lead, err := l.uc.repo.Lead().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get lead", goerr.V(LeadIDKey, id))
	}
	return lead, nil
}

// updateAt applies fn to a lead that is on step and moves it to the next
// step in one repository update. A lead on another step is left untouched.
func (l *LeadUseCase) updateAt(ctx context.Context, id model.LeadID, step types.LeadStep, fn func(lead *model.Lead) error) (*model.Lead, error) {
	lead, err := l.uc.repo.Lead().Update(ctx, id, func(lead *model.Lead) error {
		if lead.Step != step {
			return goerr.Wrap(ErrInvalidLeadStep, fmt.Sprintf("lead is on step %s", lead.Step),
				goerr.V(LeadIDKey, id), goerr.V(StepKey, step))
		}
		if err := fn(lead); err != nil {
			return err
		}

		now := l.uc.timestamp()
		lead.Step = lead.Step.Next()
		lead.UpdatedAt = now
		if lead.Step == types.LeadStepCompleted {
			lead.CompletedAt = &now
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to update lead", goerr.V(LeadIDKey, id))
	}
	return lead, nil
}

func stateOfLead(lead *model.Lead) *LeadState {
	return &LeadState{
		Lead:     lead,
		Progress: lead.Step.Progress(),
	}
}

// invalidInput turns a validation failure into ErrInvalidInput naming the
// first offending field
func invalidInput(err error, msg string, opts ...goerr.Option) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		opts = append(opts, goerr.V(FieldKey, fe.Field()), goerr.V("rule", fe.Tag()))
		return goerr.Wrap(ErrInvalidInput, fmt.Sprintf("%s: %s is invalid", msg, fe.Field()), opts...)
	}
	return goerr.Wrap(ErrInvalidInput, msg, append(opts, goerr.V("error", err.Error()))...)
}
