// Package windowing simulates alternative release-window strategies for a
// title and prices each one as a discounted weekly cashflow stream.
package windowing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
	"github.com/magicslate/slate/internal/valuation"
)

// Streaming value runs off over two years with a slow exponential decay
const (
	defaultStreamingRunoffWeeks = 104
	streamingRunoffDecay        = 0.05
)

// Simulator prices windowing scenarios for a title
type Simulator struct {
	asm  *assumptions.Assumptions
	calc *valuation.Calculator
}

// NewSimulator creates a simulator bound to an assumption set
func NewSimulator(asm *assumptions.Assumptions) *Simulator {
	return &Simulator{
		asm:  asm,
		calc: valuation.NewCalculator(asm),
	}
}

// Simulate prices one scenario for a title. The scenario must belong to
// the title and carry at least one window.
func (s *Simulator) Simulate(title models.Title, series models.EngagementSeries, quality models.QualityScores, scenario models.WindowingScenario) (models.SimulationResult, error) {
	if len(scenario.Windows) == 0 {
		return models.SimulationResult{}, models.NewValidationError("scenario", "windows", "scenario must have at least one window")
	}
	if scenario.TitleID != title.ID {
		return models.SimulationResult{}, models.NewValidationError("scenario", "title_id", fmt.Sprintf("scenario targets %s, not %s", scenario.TitleID, title.ID))
	}

	streamingOffset := scenario.StreamingOffsetDays(s.asm.BaselineTheatricalDays)

	cashflows := map[int]float64{}
	contributions := make([]models.WindowContribution, 0, len(scenario.Windows))

	// Theatrical: films only, value spread evenly across the run
	theatricalValue := 0.0
	if w := scenario.Window(models.WindowTheatrical); w != nil && w.DurationDays > 0 {
		theatricalValue = s.theatricalForWindow(title, quality)
		if theatricalValue > 0 {
			contributions = append(contributions, s.spread(cashflows, *w, theatricalValue))
		}
	}

	// PVOD rides on theatrical performance and suffers when the scenario
	// streams early
	if w := scenario.Window(models.WindowPVOD); w != nil && w.DurationDays > 0 && theatricalValue > 0 {
		pvodValue := s.calc.PVODValue(theatricalValue, quality, streamingOffset)
		if pvodValue > 0 {
			contribution := s.spread(cashflows, *w, pvodValue)
			contribution.Cannibalized = streamingOffset < s.asm.StandardWindowDays
			contributions = append(contributions, contribution)
		}
	}

	// Streaming: engagement-driven value with a timing multiplier and,
	// when a licensing window exists, cannibalization
	licenseWindow := scenario.Window(models.WindowLicensing)

	acquisition, retention := s.calc.StreamingValue(series.TotalHours(), title, quality)
	streamingValue := (acquisition + retention) * streamingTimingMultiplier(streamingOffset, s.asm)
	streamingValue += s.calc.AdValue(series.TotalHours(), title.PlatformPrimary)

	cannibalized := false
	if licenseWindow != nil {
		factor := s.asm.LicenseCannibalizationFactor
		if licenseWindow.CannibalizationOverride != nil {
			factor = *licenseWindow.CannibalizationOverride
		}
		streamingValue *= 1.0 - factor
		cannibalized = true
	}

	if streamingValue > 0 {
		streamingWindow := models.Window{
			Type:            models.WindowStreaming,
			StartOffsetDays: streamingOffset,
			DurationDays:    defaultStreamingRunoffWeeks * 7,
		}
		if w := scenario.Window(models.WindowStreaming); w != nil && w.DurationDays > 0 {
			streamingWindow = *w
		}
		contribution := s.spreadDecaying(cashflows, streamingWindow, streamingValue)
		contribution.Cannibalized = cannibalized
		contributions = append(contributions, contribution)
	}

	// Licensing: lump-sum fee at window start
	if licenseWindow != nil && licenseWindow.LicenseFee > 0 {
		week := licenseWindow.StartWeek()
		cashflows[week] += licenseWindow.LicenseFee
		contributions = append(contributions, models.WindowContribution{
			Type:            models.WindowLicensing,
			StartWeek:       week,
			DurationWeeks:   licenseWindow.DurationWeeks(),
			GrossValue:      licenseWindow.LicenseFee,
			DiscountedValue: licenseWindow.LicenseFee * s.discount(week),
		})
	}

	result := models.SimulationResult{
		ID:           uuid.New().String(),
		ScenarioName: scenario.Name,
		TitleID:      title.ID,
		Windows:      contributions,
		Cashflows:    flatten(cashflows),
		DiscountRate: s.asm.DiscountRate,
		ComputedAt:   time.Now().UTC(),
	}
	for _, cf := range result.Cashflows {
		result.GrossValue += cf.Net
		result.NPV += cf.Net * s.discount(cf.Week)
	}

	return result, nil
}

// SimulateAll prices every scenario and returns results ordered by NPV
// descending, scenario name ascending on ties. Each result is annotated
// with a narrative and tags relative to the set leader. Scenario errors
// surface immediately.
func (s *Simulator) SimulateAll(title models.Title, series models.EngagementSeries, quality models.QualityScores, scenarios []models.WindowingScenario) ([]models.SimulationResult, error) {
	results := make([]models.SimulationResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := s.Simulate(title, series, quality, scenario)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].NPV != results[j].NPV {
			return results[i].NPV > results[j].NPV
		}
		return results[i].ScenarioName < results[j].ScenarioName
	})

	if len(results) > 0 {
		best := results[0]
		for i := range results {
			results[i].Narrative = resultNarrative(results[i], best)
			results[i].Tags = resultTags(results[i], i == 0)
		}
	}

	return results, nil
}

func (s *Simulator) theatricalForWindow(title models.Title, quality models.QualityScores) float64 {
	if title.ContentType != models.ContentTypeFilm || title.ProductionBudget <= 0 {
		return 0
	}

	// The scenario itself declares a theatrical run, so the title's
	// recorded release dates do not gate the estimate
	multiple := s.asm.TheatricalMultiple(title.BudgetTier)
	qualityFactor := 0.5 + quality.AverageReception()/100*1.5
	return title.ProductionBudget * multiple * qualityFactor * s.asm.TheatricalBrandMultiplier(title.Brand)
}

// spread allocates value evenly across a window's weeks
func (s *Simulator) spread(cashflows map[int]float64, w models.Window, value float64) models.WindowContribution {
	start := w.StartWeek()
	weeks := w.DurationWeeks()
	if weeks < 1 {
		weeks = 1
	}

	contribution := models.WindowContribution{
		Type:          w.Type,
		StartWeek:     start,
		DurationWeeks: weeks,
		GrossValue:    value,
	}

	weekly := value / float64(weeks)
	for week := start; week < start+weeks; week++ {
		cashflows[week] += weekly
		contribution.DiscountedValue += weekly * s.discount(week)
	}
	return contribution
}

// spreadDecaying allocates value across a window with a slow exponential
// runoff, so early weeks carry more than late ones
func (s *Simulator) spreadDecaying(cashflows map[int]float64, w models.Window, value float64) models.WindowContribution {
	start := w.StartWeek()
	weeks := w.DurationWeeks()
	if weeks < 1 {
		weeks = 1
	}

	contribution := models.WindowContribution{
		Type:          w.Type,
		StartWeek:     start,
		DurationWeeks: weeks,
	}

	for week := start; week < start+weeks; week++ {
		decay := math.Exp(-streamingRunoffDecay * float64(week-start) / 52)
		weekly := value / float64(weeks) * decay
		cashflows[week] += weekly
		contribution.GrossValue += weekly
		contribution.DiscountedValue += weekly * s.discount(week)
	}
	return contribution
}

// discount converts the annual rate to a weekly factor for the given period
func (s *Simulator) discount(week int) float64 {
	periodRate := math.Pow(1+s.asm.DiscountRate, 1/s.asm.PeriodsPerYear) - 1
	return math.Pow(1+periodRate, -float64(week))
}

// streamingTimingMultiplier rewards early streaming availability.
// Long windows lose engagement momentum.
func streamingTimingMultiplier(offsetDays int, asm *assumptions.Assumptions) float64 {
	switch {
	case offsetDays < asm.ShortWindowDays:
		return 1.0
	case offsetDays < asm.BaselineTheatricalDays:
		return 0.95
	default:
		frac := math.Min(float64(offsetDays)/365, 1.0)
		return 0.85 + (1.0-frac)*0.1
	}
}

func flatten(cashflows map[int]float64) []models.CashflowPoint {
	weeks := make([]int, 0, len(cashflows))
	for week := range cashflows {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	out := make([]models.CashflowPoint, 0, len(weeks))
	for _, week := range weeks {
		out = append(out, models.CashflowPoint{Week: week, Net: cashflows[week]})
	}
	return out
}
