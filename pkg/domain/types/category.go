package types

import "fmt"

// Category groups questions for the per-category breakdown
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryIndustry   Category = "industry"
	CategoryTechnical  Category = "technical"
	CategoryCompliance Category = "compliance"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryIndustry,
		CategoryTechnical,
		CategoryCompliance,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral,
		CategoryIndustry,
		CategoryTechnical,
		CategoryCompliance:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
