package types

import "fmt"

// RiskTier is the qualitative bucket of an overall risk percentage
type RiskTier string

const (
	RiskTierLow      RiskTier = "low"
	RiskTierMedium   RiskTier = "medium"
	RiskTierHigh     RiskTier = "high"
	RiskTierCritical RiskTier = "critical"
)

// Upper bounds (inclusive) of the low, medium and high buckets
const (
	lowUpperBound    = 30.0
	mediumUpperBound = 50.0
	highUpperBound   = 75.0
)

// AllRiskTiers returns all tiers from least to most severe
func AllRiskTiers() []RiskTier {
	return []RiskTier{
		RiskTierLow,
		RiskTierMedium,
		RiskTierHigh,
		RiskTierCritical,
	}
}

// RiskTierFor buckets a percentage: <=30 low, <=50 medium, <=75 high, else critical
func RiskTierFor(percent float64) RiskTier {
	switch {
	case percent <= lowUpperBound:
		return RiskTierLow
	case percent <= mediumUpperBound:
		return RiskTierMedium
	case percent <= highUpperBound:
		return RiskTierHigh
	default:
		return RiskTierCritical
	}
}

// IsValid checks if the tier is valid
func (r RiskTier) IsValid() bool {
	switch r {
	case RiskTierLow,
		RiskTierMedium,
		RiskTierHigh,
		RiskTierCritical:
		return true
	default:
		return false
	}
}

// Severity orders tiers; low is 1 and critical is 4. Invalid tiers are 0.
func (r RiskTier) Severity() int {
	for i, t := range AllRiskTiers() {
		if t == r {
			return i + 1
		}
	}
	return 0
}

// String returns the string representation of the tier
func (r RiskTier) String() string {
	return string(r)
}

// ParseRiskTier parses a string into a RiskTier
func ParseRiskTier(s string) (RiskTier, error) {
	tier := RiskTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid risk tier: %s", s)
	}
	return tier, nil
}

// CategoryRating is the per-category label shown in the breakdown
type CategoryRating string

const (
	CategoryRatingGood     CategoryRating = "Good"
	CategoryRatingFair     CategoryRating = "Fair"
	CategoryRatingPoor     CategoryRating = "Poor"
	CategoryRatingCritical CategoryRating = "Critical"
)

// AllCategoryRatings returns all ratings from best to worst
func AllCategoryRatings() []CategoryRating {
	return []CategoryRating{
		CategoryRatingGood,
		CategoryRatingFair,
		CategoryRatingPoor,
		CategoryRatingCritical,
	}
}

// CategoryRatingFor uses the same thresholds as RiskTierFor
func CategoryRatingFor(percent float64) CategoryRating {
	switch RiskTierFor(percent) {
	case RiskTierLow:
		return CategoryRatingGood
	case RiskTierMedium:
		return CategoryRatingFair
	case RiskTierHigh:
		return CategoryRatingPoor
	default:
		return CategoryRatingCritical
	}
}

// String returns the string representation of the rating
func (c CategoryRating) String() string {
	return string(c)
}
