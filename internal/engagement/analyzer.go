// Package engagement fits decay models to per-title weekly viewing curves.
// The analyzer extracts the peak, an exponential decay rate over the
// post-peak segment, and long-tail behavior.
package engagement

import (
	"math"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

// Analyzer computes engagement curve summaries
type Analyzer struct {
	asm *assumptions.Assumptions
}

// NewAnalyzer creates an analyzer bound to an assumption set
func NewAnalyzer(asm *assumptions.Assumptions) *Analyzer {
	return &Analyzer{asm: asm}
}

// Analyze summarizes a title's weekly viewing curve.
//
// The decay rate is fit by log-linear regression of log(hours+1) against
// weeks since peak over the post-peak segment, so hours ≈ peak·e^(-rate·w).
// Series with fewer than the configured minimum of post-peak points skip
// the regression and return the default decay rate with a degraded flag.
// An all-zero series yields a zero summary without division by zero.
func (a *Analyzer) Analyze(series models.EngagementSeries) models.EngagementSummary {
	if len(series) == 0 {
		return models.EngagementSummary{
			Degraded:       true,
			DegradedReason: "no engagement observations",
		}
	}

	sorted := series.Sorted()
	totalHours := sorted.TotalHours()
	if totalHours == 0 {
		return models.EngagementSummary{}
	}

	// Peak: first week holding the maximum
	peakIdx := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].HoursViewed > sorted[peakIdx].HoursViewed {
			peakIdx = i
		}
	}
	peak := sorted[peakIdx]

	summary := models.EngagementSummary{
		TotalHours: totalHours,
		PeakHours:  peak.HoursViewed,
		PeakWeek:   peak.Week,
	}

	// Decay fit over the post-peak segment
	postPeak := sorted[peakIdx+1:]
	if len(postPeak) >= a.asm.MinPostPeakPoints {
		xs := make([]float64, len(postPeak))
		ys := make([]float64, len(postPeak))
		for i, p := range postPeak {
			xs[i] = float64(p.Week - peak.Week)
			ys[i] = math.Log(p.HoursViewed + 1) // +1 avoids log(0)
		}
		decay := -slope(xs, ys)
		if decay < 0 {
			decay = 0
		}
		summary.DecayRate = round(decay, 6)
	} else {
		summary.DecayRate = a.asm.DefaultDecayRate
		summary.Degraded = true
		summary.DegradedReason = "too few post-peak points for decay regression"
	}

	// Long-tail share: hours in the final third of the 0-indexed horizon
	// (weeks 16..23 of a 24-week window)
	tailStart := a.asm.EngagementHorizonWeeks * 2 / 3
	tailHours := 0.0
	for _, p := range sorted {
		if p.Week >= tailStart {
			tailHours += p.HoursViewed
		}
	}
	summary.LongTailShare = round(tailHours/totalHours, 4)

	// Weeks holding above the peak-share threshold
	threshold := peak.HoursViewed * a.asm.PeakThresholdShare
	for _, p := range sorted {
		if p.HoursViewed > threshold {
			summary.WeeksAboveThreshold++
		}
	}

	return summary
}
