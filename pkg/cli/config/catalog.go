package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

//go:embed catalog.toml
var defaultCatalog []byte

// CatalogFile is the TOML representation of the questionnaire
type CatalogFile struct {
	Questions []QuestionEntry `toml:"question"`
	Content   ContentEntry    `toml:"content"`
}

// QuestionEntry is one [[question]] table. Questions with an industry
// extend the base set for that industry only.
type QuestionEntry struct {
	ID       string        `toml:"id"`
	Prompt   string        `toml:"prompt"`
	Category string        `toml:"category"`
	Industry string        `toml:"industry"`
	Options  []OptionEntry `toml:"option"`
}

// OptionEntry is one [[question.option]] table
type OptionEntry struct {
	Value       string `toml:"value"`
	Label       string `toml:"label"`
	Description string `toml:"description"`
	Weight      int    `toml:"weight"`
}

// ContentEntry is the [content] table holding canned result text
type ContentEntry struct {
	PotentialSavings string               `toml:"potential_savings"`
	Tiers            map[string]TierEntry `toml:"tier"`
	CategoryMessages map[string]string    `toml:"category_message"`
}

// TierEntry is one [content.tier.<tier>] table
type TierEntry struct {
	BreachCost      string   `toml:"breach_cost"`
	Recommendations []string `toml:"recommendations"`
	NextSteps       []string `toml:"next_steps"`
}

// ToCatalog converts the file into the domain catalog without validating it
func (f *CatalogFile) ToCatalog() *model.Catalog {
	catalog := &model.Catalog{
		Industries: make(map[types.Industry][]model.Question),
		Content: &model.CannedContent{
			Tiers:            make(map[types.RiskTier]model.TierContent, len(f.Content.Tiers)),
			CategoryMessages: make(map[types.CategoryRating]string, len(f.Content.CategoryMessages)),
			PotentialSavings: f.Content.PotentialSavings,
		},
	}

	for _, entry := range f.Questions {
		q := model.Question{
			ID:       types.QuestionID(entry.ID),
			Prompt:   entry.Prompt,
			Category: types.Category(entry.Category),
			Industry: types.Industry(entry.Industry),
			Options:  make([]model.Option, 0, len(entry.Options)),
		}
		for _, o := range entry.Options {
			q.Options = append(q.Options, model.Option{
				Value:       types.OptionValue(o.Value),
				Label:       o.Label,
				Description: o.Description,
				Weight:      o.Weight,
			})
		}

		if q.Industry == "" {
			catalog.Base = append(catalog.Base, q)
		} else {
			catalog.Industries[q.Industry] = append(catalog.Industries[q.Industry], q)
		}
	}

	for name, tier := range f.Content.Tiers {
		catalog.Content.Tiers[types.RiskTier(name)] = model.TierContent{
			BreachCost:      tier.BreachCost,
			Recommendations: tier.Recommendations,
			NextSteps:       tier.NextSteps,
		}
	}
	for _, rating := range types.AllCategoryRatings() {
		if msg, ok := f.Content.CategoryMessages[strings.ToLower(rating.String())]; ok {
			catalog.Content.CategoryMessages[rating] = msg
		}
	}

	return catalog
}

// Validate checks the questions and that content exists for every tier and rating
func (f *CatalogFile) Validate() error {
	catalog := f.ToCatalog()
	if err := catalog.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidCatalog, err.Error())
	}

	for name := range f.Content.Tiers {
		if _, err := types.ParseRiskTier(name); err != nil {
			return goerr.Wrap(ErrInvalidCatalog, "unknown risk tier in content", goerr.V(RiskTierKey, name))
		}
	}
	for _, tier := range types.AllRiskTiers() {
		content, ok := catalog.Content.Tiers[tier]
		if !ok || content.BreachCost == "" {
			return goerr.Wrap(ErrInvalidCatalog, "breach cost is required for every risk tier", goerr.V(RiskTierKey, tier))
		}
		if len(content.Recommendations) == 0 || len(content.NextSteps) == 0 {
			return goerr.Wrap(ErrInvalidCatalog, "recommendations and next steps are required for every risk tier",
				goerr.V(RiskTierKey, tier))
		}
	}

	if len(f.Content.CategoryMessages) != len(catalog.Content.CategoryMessages) {
		return goerr.Wrap(ErrInvalidCatalog, "unknown rating in category messages")
	}
	for _, rating := range types.AllCategoryRatings() {
		if catalog.Content.CategoryMessages[rating] == "" {
			return goerr.Wrap(ErrInvalidCatalog, "category message is required for every rating", goerr.V(RatingKey, rating))
		}
	}

	return nil
}

// ParseCatalog decodes and validates catalog TOML
func ParseCatalog(data []byte) (*model.Catalog, error) {
	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidCatalog, err.Error())
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file.ToCatalog(), nil
}

// LoadCatalog loads a catalog from path, or the built-in catalog when path is empty
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		catalog, err := ParseCatalog(defaultCatalog)
		if err != nil {
			return nil, goerr.Wrap(err, "built-in catalog is broken")
		}
		return catalog, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(CatalogPathKey, path))
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V(CatalogPathKey, path))
	}
	return catalog, nil
}

// Catalog holds the --catalog flag
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to a questionnaire catalog TOML file (built-in catalog if omitted)",
			Sources:     cli.EnvVars("ASSESSOR_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog path
func (c *Catalog) Path() string {
	return c.path
}

// Configure loads the configured catalog
func (c *Catalog) Configure() (*model.Catalog, error) {
	return LoadCatalog(c.path)
}
