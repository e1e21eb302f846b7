package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidCatalog = goerr.New("invalid catalog")
	ErrInvalidConfig  = goerr.New("invalid configuration")
)

// Context keys for error values
const (
	CatalogPathKey = "catalog_path"
	QuestionIDKey  = "question_id"
	RiskTierKey    = "risk_tier"
	RatingKey      = "rating"
)
