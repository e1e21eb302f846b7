package model

import (
	"strings"

	"github.com/verteidiq/assessor/pkg/domain/types"
)

// CategoryPlaceholder is substituted with the category name in category messages
const CategoryPlaceholder = "{category}"

// TierContent is the canned text attached to a risk tier
type TierContent struct {
	BreachCost      string
	Recommendations []string
	NextSteps       []string
}

// CannedContent holds every pre-written string the result presenter shows
type CannedContent struct {
	Tiers            map[types.RiskTier]TierContent
	CategoryMessages map[types.CategoryRating]string
	PotentialSavings string
}

// Tier returns the content for tier. Missing tiers yield empty content.
func (c *CannedContent) Tier(tier types.RiskTier) TierContent {
	if c == nil {
		return TierContent{}
	}
	return c.Tiers[tier]
}

// CategoryRecommendation renders the message for rating with category substituted
func (c *CannedContent) CategoryRecommendation(rating types.CategoryRating, category types.Category) string {
	if c == nil {
		return ""
	}
	return strings.ReplaceAll(c.CategoryMessages[rating], CategoryPlaceholder, category.String())
}
