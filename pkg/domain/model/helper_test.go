package model_test

import (
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

func opt(value string, weight int) model.Option {
	return model.Option{Value: types.OptionValue(value), Label: value, Weight: weight}
}

func newTestContent() *model.CannedContent {
	recs := []string{"rec-1", "rec-2", "rec-3", "rec-4", "rec-5"}
	steps := []string{"step-1", "step-2", "step-3", "step-4", "step-5"}
	return &model.CannedContent{
		Tiers: map[types.RiskTier]model.TierContent{
			types.RiskTierLow:      {BreachCost: "$850K", Recommendations: recs, NextSteps: steps},
			types.RiskTierMedium:   {BreachCost: "$2.1M", Recommendations: recs, NextSteps: steps},
			types.RiskTierHigh:     {BreachCost: "$4.2M", Recommendations: recs, NextSteps: steps},
			types.RiskTierCritical: {BreachCost: "$7.8M", Recommendations: recs, NextSteps: steps},
		},
		CategoryMessages: map[types.CategoryRating]string{
			types.CategoryRatingGood:     "Your {category} security posture is strong.",
			types.CategoryRatingFair:     "Consider improving your {category} security measures.",
			types.CategoryRatingPoor:     "Your {category} security needs immediate attention.",
			types.CategoryRatingCritical: "Critical gaps in {category} security require urgent remediation.",
		},
		PotentialSavings: "$3.2M+",
	}
}

// newExampleSet is the two question set from the scoring walkthrough
func newExampleSet() *model.QuestionSet {
	return &model.QuestionSet{
		Industry: types.IndustryGeneral,
		Questions: []model.Question{
			{
				ID:       "size",
				Prompt:   "How many employees?",
				Category: types.CategoryGeneral,
				Options:  []model.Option{opt("small", 3), opt("large", 9)},
			},
			{
				ID:       "budget",
				Prompt:   "Security budget?",
				Category: types.CategoryGeneral,
				Options:  []model.Option{opt("high", 2), opt("none", 9)},
			},
		},
	}
}

// newMixedSet spans three categories with uneven option weights
func newMixedSet() *model.QuestionSet {
	return &model.QuestionSet{
		Industry: types.IndustryGeneral,
		Questions: []model.Question{
			{
				ID:       "incidents",
				Prompt:   "Incidents in the past 12 months?",
				Category: types.CategoryGeneral,
				Options:  []model.Option{opt("none", 2), opt("minor", 4), opt("moderate", 6), opt("major", 9)},
			},
			{
				ID:       "tools",
				Prompt:   "Security tools in place?",
				Category: types.CategoryTechnical,
				Options:  []model.Option{opt("basic", 8), opt("intermediate", 5), opt("advanced", 3), opt("comprehensive", 1)},
			},
			{
				ID:       "response_time",
				Prompt:   "Incident response time?",
				Category: types.CategoryTechnical,
				Options:  []model.Option{opt("hours", 8), opt("minutes", 5), opt("seconds", 2), opt("automated", 1)},
			},
			{
				ID:       "frameworks",
				Prompt:   "Compliance frameworks?",
				Category: types.CategoryCompliance,
				Options:  []model.Option{opt("none", 3), opt("basic", 5), opt("industry", 7), opt("multiple", 9)},
			},
		},
	}
}

// extremeAnswers answers every question with its lowest (or highest) weight option
func extremeAnswers(set *model.QuestionSet, highest bool) model.AnswerMap {
	answers := model.AnswerMap{}
	for _, q := range set.Questions {
		best := q.Options[0]
		for _, o := range q.Options[1:] {
			if (highest && o.Weight > best.Weight) || (!highest && o.Weight < best.Weight) {
				best = o
			}
		}
		answers[q.ID] = best.Value
	}
	return answers
}
