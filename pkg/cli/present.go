package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
)

// printResult writes a human readable report of result to w
func printResult(w io.Writer, result *model.AssessmentResult) {
	bold := color.New(color.Bold)
	tierColor := riskTierColor(result.Tier)

	fmt.Fprintf(w, "%s %s (%d/100)\n",
		bold.Sprint("Overall risk:"),
		tierColor.Sprint(strings.ToUpper(result.Tier.String())),
		result.Score,
	)
	fmt.Fprintf(w, "%s %s\n", bold.Sprint("Estimated breach cost:"), result.EstimatedBreachCost)
	if result.PotentialSavings != "" {
		fmt.Fprintf(w, "%s %s\n", bold.Sprint("Potential savings:"), result.PotentialSavings)
	}

	if len(result.Categories) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Category breakdown")
		for _, category := range types.AllCategories() {
			cr, ok := result.Categories[category]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-11s %3d  %s\n",
				category,
				cr.Score,
				ratingColor(cr.Rating).Sprintf("%-8s", cr.Rating),
			)
			for _, rec := range cr.Recommendations {
				fmt.Fprintf(w, "              %s\n", rec)
			}
		}
	}

	printList(w, "Recommendations", result.Recommendations)
	printList(w, "Next steps", result.NextSteps)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	color.New(color.Bold).Fprintln(w, title)
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

func riskTierColor(tier types.RiskTier) *color.Color {
	switch tier {
	case types.RiskTierCritical:
		return color.New(color.FgRed, color.Bold)
	case types.RiskTierHigh:
		return color.New(color.FgRed)
	case types.RiskTierMedium:
		return color.New(color.FgYellow)
	case types.RiskTierLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}

func ratingColor(rating types.CategoryRating) *color.Color {
	switch rating {
	case types.CategoryRatingCritical:
		return color.New(color.FgRed, color.Bold)
	case types.CategoryRatingPoor:
		return color.New(color.FgRed)
	case types.CategoryRatingFair:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
