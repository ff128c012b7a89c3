package greenlight

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

// Forecaster turns a concept plus a comparable universe into a banded
// forecast and a recommendation
type Forecaster struct {
	asm *assumptions.Assumptions
}

// NewForecaster creates a forecaster bound to an assumption set
func NewForecaster(asm *assumptions.Assumptions) *Forecaster {
	return &Forecaster{asm: asm}
}

// Forecast builds the bear/base/bull forecast for a concept against the
// scorecard universe. A universe smaller than the configured comparable
// set size degrades the sample and flags the result; it never errors.
// An empty universe is the only hard failure.
func (f *Forecaster) Forecast(concept models.NewTitleConcept, universe []models.TitleScorecard) (models.ForecastResult, error) {
	if concept.TotalCost() <= 0 {
		return models.ForecastResult{}, models.NewValidationError("concept", "total_cost", "must be positive to compute ROI")
	}
	if len(universe) == 0 {
		return models.ForecastResult{}, models.NewValidationError("concept", "universe", "no scorecards available as comparables")
	}

	k := f.asm.ComparableSetSize
	comps := FindComparables(concept, universe, k)

	result := models.ForecastResult{
		ID:                   uuid.New().String(),
		ConceptName:          concept.Name,
		Comparables:          comps,
		RequestedComparables: k,
		SampleSize:           len(comps),
		DegradedSample:       len(comps) < k,
		ComputedAt:           time.Now().UTC(),
	}

	result.HoursStats = describe(comps, func(c models.Comparable) float64 { return c.TotalHours })
	result.ValueStats = describe(comps, func(c models.Comparable) float64 { return c.TotalValue })
	result.ROIStats = describe(comps, func(c models.Comparable) float64 { return c.ROI })

	multiplier := ConceptMultiplier(concept)
	cost := concept.TotalCost()

	result.Base = band(result.HoursStats.Mean, result.ValueStats.Mean, multiplier, cost)
	result.Bear = band(result.HoursStats.Mean-result.HoursStats.StdDev, result.ValueStats.Mean-result.ValueStats.StdDev, multiplier, cost)
	result.Bull = band(result.HoursStats.Mean+result.HoursStats.StdDev, result.ValueStats.Mean+result.ValueStats.StdDev, multiplier, cost)

	result.Recommendation = f.Recommend(result.Base, result.Bear)
	result.Narrative = Narrative(concept, result)

	return result, nil
}

// ConceptMultiplier scales comparable performance by the concept's star
// power and buzz potential. Each factor spans 0.8 to 1.2; the multiplier
// is their mean.
func ConceptMultiplier(concept models.NewTitleConcept) float64 {
	starFactor := 0.8 + float64(concept.StarPowerScore)/5.0*0.4
	buzzFactor := 0.8 + float64(concept.BuzzPotential)/100.0*0.4
	return (starFactor + buzzFactor) / 2
}

// Recommend maps the base and bear ROI onto a greenlight label
func (f *Forecaster) Recommend(base, bear models.ForecastBand) models.RecommendationLabel {
	g := f.asm.Greenlight
	switch {
	case base.ROI > g.StrongBaseROI && bear.ROI > g.StrongBearROI:
		return models.RecommendStrongGreenlight
	case base.ROI > g.BaseROI && bear.ROI > 0:
		return models.RecommendGreenlight
	case base.ROI > g.ConditionalROI:
		return models.RecommendConditionalGreenlight
	case base.ROI > 0:
		return models.RecommendMarginal
	default:
		return models.RecommendPass
	}
}

// band builds one scenario estimate, clamped at zero hours and value
func band(hours, value, multiplier, cost float64) models.ForecastBand {
	hours = math.Max(hours*multiplier, 0)
	value = math.Max(value*multiplier, 0)

	roi := 0.0
	if cost > 0 {
		roi = (value - cost) / cost
	}
	return models.ForecastBand{
		TotalHours: hours,
		TotalValue: value,
		TotalCost:  cost,
		ROI:        roi,
	}
}

// describe computes distribution stats with the sample standard deviation.
// A single-member sample has zero spread.
func describe(comps models.ComparableSet, metric func(models.Comparable) float64) models.DistributionStats {
	if len(comps) == 0 {
		return models.DistributionStats{}
	}

	stats := models.DistributionStats{
		Min: metric(comps[0]),
		Max: metric(comps[0]),
	}

	sum := 0.0
	for _, c := range comps {
		v := metric(c)
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.Mean = sum / float64(len(comps))

	if len(comps) > 1 {
		ss := 0.0
		for _, c := range comps {
			d := metric(c) - stats.Mean
			ss += d * d
		}
		stats.StdDev = math.Sqrt(ss / float64(len(comps)-1))
	}

	return stats
}
