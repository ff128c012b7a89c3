package greenlight

import (
	"fmt"
	"strings"

	"github.com/magicslate/slate/internal/models"
)

// Narrative renders a deterministic forecast summary for a concept
func Narrative(concept models.NewTitleConcept, result models.ForecastResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Greenlight forecast for %q.\n", concept.Name)

	names := make([]string, 0, 3)
	for i, c := range result.Comparables {
		if i == 3 {
			break
		}
		names = append(names, c.TitleName)
	}
	fmt.Fprintf(&b, "Based on %d comparable titles", result.SampleSize)
	if len(names) > 0 {
		fmt.Fprintf(&b, ", including %s", strings.Join(names, ", "))
	}
	b.WriteString(".\n")
	if result.DegradedSample {
		fmt.Fprintf(&b, "Only %d of %d requested comparables were available; treat the bands as indicative.\n", result.SampleSize, result.RequestedComparables)
	}

	fmt.Fprintf(&b, "Bear case: %.0f%% ROI on $%.1fM value.\n", result.Bear.ROI*100, result.Bear.TotalValue/1e6)
	fmt.Fprintf(&b, "Base case: %.0f%% ROI on $%.1fM value.\n", result.Base.ROI*100, result.Base.TotalValue/1e6)
	fmt.Fprintf(&b, "Bull case: %.0f%% ROI on $%.1fM value.\n", result.Bull.ROI*100, result.Bull.TotalValue/1e6)

	fmt.Fprintf(&b, "Recommendation: %s. %s\n", result.Recommendation, recommendationReason(result.Recommendation))

	for _, factor := range keyFactors(concept, result) {
		fmt.Fprintf(&b, "- %s\n", factor)
	}

	return b.String()
}

func recommendationReason(label models.RecommendationLabel) string {
	switch label {
	case models.RecommendStrongGreenlight:
		return "Base case shows excellent returns with limited downside risk."
	case models.RecommendGreenlight:
		return "Solid projected returns with manageable downside."
	case models.RecommendConditionalGreenlight:
		return "Moderate returns projected. Consider budget optimization or talent upgrades."
	case models.RecommendMarginal:
		return "Returns are positive but limited. Recommend further development or budget reduction."
	default:
		return "Projected returns do not justify investment at current budget level."
	}
}

func keyFactors(concept models.NewTitleConcept, result models.ForecastResult) []string {
	factors := []string{}

	switch {
	case concept.IPFamiliarity == models.IPSequel || concept.IPFamiliarity == models.IPFranchiseCore:
		factors = append(factors, "Strong IP foundation reduces risk.")
	case concept.IPFamiliarity == models.IPNew:
		factors = append(factors, "New IP carries higher execution risk.")
	}

	if concept.StarPowerScore >= 4 {
		factors = append(factors, "Strong talent attachment.")
	} else if concept.StarPowerScore <= 2 {
		factors = append(factors, "Limited star power may impact marketing.")
	}

	if concept.BuzzPotential >= 70 {
		factors = append(factors, "High buzz potential.")
	} else if concept.BuzzPotential <= 40 {
		factors = append(factors, "Lower buzz potential may require marketing investment.")
	}

	if result.ROIStats.Mean > 0.8 {
		factors = append(factors, fmt.Sprintf("Comparables show strong average ROI of %.0f%%.", result.ROIStats.Mean*100))
	} else if result.ROIStats.Mean < 0.3 {
		factors = append(factors, fmt.Sprintf("Comparables show modest average ROI of %.0f%%.", result.ROIStats.Mean*100))
	}

	return factors
}
