package exports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/magicslate/slate/internal/models"
	"github.com/magicslate/slate/internal/portfolio"
	"github.com/magicslate/slate/internal/scorecard"
	"github.com/magicslate/slate/internal/windowing"
)

// ReportInput is everything a full markdown report can cover. Empty
// sections are omitted rather than rendered blank.
type ReportInput struct {
	GeneratedAt time.Time

	Scorecards  []models.TitleScorecard
	Simulations []models.SimulationResult
	Forecasts   []models.ForecastResult

	// TopTitles caps the per-title detail section, 0 means all.
	TopTitles int
}

// BuildReport renders the deterministic markdown report. The same input
// always produces the same document.
func BuildReport(in ReportInput) string {
	var b strings.Builder

	b.WriteString("# Slate Portfolio Report\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", in.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))

	if len(in.Scorecards) > 0 {
		writeSummarySection(&b, in.Scorecards)
		writeGroupSection(&b, "Value by Brand", in.Scorecards, portfolio.DimensionBrand)
		writeGroupSection(&b, "Value by Platform", in.Scorecards, portfolio.DimensionPlatform)
		writeTitleSection(&b, in.Scorecards, in.TopTitles)
	}

	if len(in.Simulations) > 0 {
		writeSimulationSection(&b, in.Simulations)
	}

	for _, f := range in.Forecasts {
		writeForecastSection(&b, f)
	}

	return b.String()
}

func writeSummarySection(b *strings.Builder, cards []models.TitleScorecard) {
	s := portfolio.Summarize(cards)
	brands := portfolio.GroupBy(cards, portfolio.DimensionBrand)

	b.WriteString("## Portfolio Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Titles | %d |\n", s.Count)
	fmt.Fprintf(b, "| Total value | $%.1fM |\n", s.TotalValue/1e6)
	fmt.Fprintf(b, "| Total cost | $%.1fM |\n", s.TotalCost/1e6)
	fmt.Fprintf(b, "| Total hours viewed | %.1fM |\n", s.TotalHours/1e6)
	fmt.Fprintf(b, "| Mean ROI | %.0f%% |\n", s.MeanROI*100)
	fmt.Fprintf(b, "| ROI quartiles | %.0f%% / %.0f%% / %.0f%% |\n",
		s.ROIQuartiles[0]*100, s.ROIQuartiles[1]*100, s.ROIQuartiles[2]*100)
	fmt.Fprintf(b, "| Brand concentration (HHI) | %.3f |\n", portfolio.HHI(brands))
	fmt.Fprintf(b, "| Top 3 value share | %.0f%% |\n", portfolio.TopNShare(cards, 3)*100)
	b.WriteString("\n")

	counts := make([]string, 0, len(s.ClassificationCounts))
	for _, class := range models.Classifications() {
		if n := s.ClassificationCounts[class]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s %d", class, n))
		}
	}
	if len(counts) > 0 {
		fmt.Fprintf(b, "Classification mix: %s.\n\n", strings.Join(counts, ", "))
	}
}

func writeGroupSection(b *strings.Builder, heading string, cards []models.TitleScorecard, dim portfolio.Dimension) {
	groups := portfolio.GroupBy(cards, dim)
	if len(groups) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n", heading)
	b.WriteString("| Group | Titles | Total Value | Mean ROI | Share |\n|---|---|---|---|---|\n")
	for _, g := range groups {
		fmt.Fprintf(b, "| %s | %d | $%.1fM | %.0f%% | %.0f%% |\n",
			g.Key, g.Count, g.TotalValue/1e6, g.MeanROI*100, g.ValueShare*100)
	}
	b.WriteString("\n")
}

func writeTitleSection(b *strings.Builder, cards []models.TitleScorecard, top int) {
	ranked := make([]models.TitleScorecard, len(cards))
	copy(ranked, cards)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Value.TotalValue != ranked[j].Value.TotalValue {
			return ranked[i].Value.TotalValue > ranked[j].Value.TotalValue
		}
		return ranked[i].TitleName < ranked[j].TitleName
	})
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	b.WriteString("## Title Scorecards\n\n")
	for _, card := range ranked {
		fmt.Fprintf(b, "### %s\n\n", card.TitleName)
		fmt.Fprintf(b, "%s | %s | %s | %s\n\n", card.Brand, card.Genre, card.ContentType, card.Classification)
		b.WriteString(scorecard.Narrative(card))
		b.WriteString("\n\n")
	}
}

func writeSimulationSection(b *strings.Builder, results []models.SimulationResult) {
	b.WriteString("## Windowing Scenarios\n\n")

	byTitle := make(map[string][]models.SimulationResult)
	titleIDs := make([]string, 0)
	for _, r := range results {
		if _, seen := byTitle[r.TitleID]; !seen {
			titleIDs = append(titleIDs, r.TitleID)
		}
		byTitle[r.TitleID] = append(byTitle[r.TitleID], r)
	}
	sort.Strings(titleIDs)

	for _, id := range titleIDs {
		fmt.Fprintf(b, "### Title %s\n\n", id)
		b.WriteString(windowing.CompareScenarios(byTitle[id]))
		b.WriteString("\n\n")
	}
}

func writeForecastSection(b *strings.Builder, f models.ForecastResult) {
	fmt.Fprintf(b, "## Greenlight Forecast: %s\n\n", f.ConceptName)

	if f.Narrative != "" {
		b.WriteString(f.Narrative)
		b.WriteString("\n\n")
		return
	}

	b.WriteString("| Case | Hours | Value | ROI |\n|---|---|---|---|\n")
	for _, band := range []struct {
		name string
		b    models.ForecastBand
	}{{"Bear", f.Bear}, {"Base", f.Base}, {"Bull", f.Bull}} {
		fmt.Fprintf(b, "| %s | %.1fM | $%.1fM | %.0f%% |\n",
			band.name, band.b.TotalHours/1e6, band.b.TotalValue/1e6, band.b.ROI*100)
	}
	fmt.Fprintf(b, "\nRecommendation: %s\n\n", f.Recommendation)
}
