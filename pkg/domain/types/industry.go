package types

import "fmt"

// Industry selects the industry specific question extension and content variant
type Industry string

const (
	IndustryGeneral       Industry = "general"
	IndustryFinance       Industry = "finance"
	IndustryHealthcare    Industry = "healthcare"
	IndustryManufacturing Industry = "manufacturing"
)

// AllIndustries returns all known industries
func AllIndustries() []Industry {
	return []Industry{
		IndustryGeneral,
		IndustryFinance,
		IndustryHealthcare,
		IndustryManufacturing,
	}
}

// IsValid checks if the industry is known
func (i Industry) IsValid() bool {
	switch i {
	case IndustryGeneral,
		IndustryFinance,
		IndustryHealthcare,
		IndustryManufacturing:
		return true
	default:
		return false
	}
}

// Normalize treats empty as IndustryGeneral
func (i Industry) Normalize() Industry {
	if i == "" {
		return IndustryGeneral
	}
	return i
}

// String returns the string representation of the industry
func (i Industry) String() string {
	return string(i)
}

// ParseIndustry parses a query value into an Industry. Empty means general.
func ParseIndustry(s string) (Industry, error) {
	industry := Industry(s).Normalize()
	if !industry.IsValid() {
		return "", fmt.Errorf("invalid industry: %s", s)
	}
	return industry, nil
}
