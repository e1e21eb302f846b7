package model

import (
	"math"

	"github.com/verteidiq/assessor/pkg/domain/types"
)

// topItems is how many recommendations and next steps a result carries
const topItems = 3

type scoreSum struct {
	score    int
	maxScore int
}

func (s scoreSum) percent() float64 {
	if s.maxScore == 0 {
		return 0
	}
	return float64(s.score) / float64(s.maxScore) * 100
}

// Score reduces answers against set into an AssessmentResult.
//
// For every answered question the selected weight and the question's max
// weight are accumulated, overall and per category. Answers to unknown
// questions or with unknown option values are ignored. With no usable answer
// the score is 0.
func Score(set *QuestionSet, answers AnswerMap, content *CannedContent) *AssessmentResult {
	var total scoreSum
	categories := make(map[types.Category]*scoreSum)
	var order []types.Category

	for i := range set.Questions {
		q := &set.Questions[i]
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.Option(value)
		if !ok {
			continue
		}

		maxWeight := q.MaxWeight()
		total.score += opt.Weight
		total.maxScore += maxWeight

		sum, ok := categories[q.Category]
		if !ok {
			sum = &scoreSum{}
			categories[q.Category] = sum
			order = append(order, q.Category)
		}
		sum.score += opt.Weight
		sum.maxScore += maxWeight
	}

	percent := total.percent()
	tier := types.RiskTierFor(percent)
	tierContent := content.Tier(tier)

	result := &AssessmentResult{
		Tier:                tier,
		Percent:             percent,
		Score:               int(math.Round(percent)),
		EstimatedBreachCost: tierContent.BreachCost,
		Categories:          make(map[types.Category]CategoryResult, len(categories)),
		Recommendations:     firstN(tierContent.Recommendations, topItems),
		NextSteps:           firstN(tierContent.NextSteps, topItems),
	}
	if content != nil {
		result.PotentialSavings = content.PotentialSavings
	}

	for _, category := range order {
		p := categories[category].percent()
		rating := types.CategoryRatingFor(p)
		result.Categories[category] = CategoryResult{
			Percent:         p,
			Score:           int(math.Round(p)),
			Rating:          rating,
			Recommendations: []string{content.CategoryRecommendation(rating, category)},
		}
	}

	return result
}

func firstN(items []string, n int) []string {
	out := make([]string, 0, min(n, len(items)))
	return append(out, items[:min(n, len(items))]...)
}
