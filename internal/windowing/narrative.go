package windowing

import (
	"fmt"
	"strings"

	"github.com/magicslate/slate/internal/models"
)

// resultNarrative renders a one-line narrative for a single result against
// the leading result of its set.
func resultNarrative(r, best models.SimulationResult) string {
	if r.ScenarioName == best.ScenarioName {
		return fmt.Sprintf("%s leads the compared set with an NPV of $%.1fM.", r.ScenarioName, r.NPV/1e6)
	}
	gap := best.NPV - r.NPV
	if gap == 0 {
		return fmt.Sprintf("%s matches the leading scenario %s at $%.1fM NPV.", r.ScenarioName, best.ScenarioName, r.NPV/1e6)
	}
	if best.NPV > 0 {
		return fmt.Sprintf("%s trails %s by $%.1fM NPV (%.0f%% below).", r.ScenarioName, best.ScenarioName, gap/1e6, gap/best.NPV*100)
	}
	return fmt.Sprintf("%s trails %s by $%.1fM NPV.", r.ScenarioName, best.ScenarioName, gap/1e6)
}

// resultTags lists the window types a result monetizes, in window order,
// plus markers for cannibalized windows and the set leader.
func resultTags(r models.SimulationResult, leader bool) []string {
	tags := make([]string, 0, len(r.Windows)+2)
	seen := make(map[models.WindowType]bool, len(r.Windows))
	cannibalized := false
	for _, w := range r.Windows {
		if !seen[w.Type] {
			seen[w.Type] = true
			tags = append(tags, string(w.Type))
		}
		if w.Cannibalized {
			cannibalized = true
		}
	}
	if cannibalized {
		tags = append(tags, "cannibalized")
	}
	if leader {
		tags = append(tags, "best-npv")
	}
	return tags
}

// CompareScenarios renders a deterministic narrative over a result set.
// Results are expected in NPV order as produced by SimulateAll.
func CompareScenarios(results []models.SimulationResult) string {
	if len(results) == 0 {
		return "No scenarios to compare."
	}

	best := results[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Best scenario: %s produces the highest NPV of $%.1fM.\n", best.ScenarioName, best.NPV/1e6)

	b.WriteString("Value breakdown:\n")
	for _, w := range best.Windows {
		if w.GrossValue <= 0 {
			continue
		}
		pct := 0.0
		if best.GrossValue > 0 {
			pct = w.GrossValue / best.GrossValue * 100
		}
		note := ""
		if w.Cannibalized {
			note = " (cannibalized)"
		}
		fmt.Fprintf(&b, "- %s: $%.1fM (%.0f%%)%s\n", w.Type, w.GrossValue/1e6, pct, note)
	}

	worst := results[len(results)-1]
	if best.NPV > 0 && best.NPV != worst.NPV {
		rangePct := (best.NPV - worst.NPV) / best.NPV * 100
		fmt.Fprintf(&b, "Window strategy moves NPV by up to %.0f%% across the compared scenarios.\n", rangePct)
	}

	return b.String()
}
