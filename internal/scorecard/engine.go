// Package scorecard composes the engagement analyzer and value calculator
// into per-title scorecards and classifies the result.
package scorecard

import (
	"time"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/engagement"
	"github.com/magicslate/slate/internal/models"
	"github.com/magicslate/slate/internal/valuation"
)

// Engine orchestrates scorecard computation
type Engine struct {
	asm        *assumptions.Assumptions
	analyzer   *engagement.Analyzer
	calculator *valuation.Calculator
}

// NewEngine creates an engine bound to an assumption set
func NewEngine(asm *assumptions.Assumptions) *Engine {
	return &Engine{
		asm:        asm,
		analyzer:   engagement.NewAnalyzer(asm),
		calculator: valuation.NewCalculator(asm),
	}
}

// Score computes the full scorecard for one title. Titles with zero total
// cost cannot be scored: every efficiency metric divides by cost.
func (e *Engine) Score(title models.Title, series models.EngagementSeries, quality models.QualityScores) (models.TitleScorecard, error) {
	totalCost := title.TotalCost()
	if totalCost <= 0 {
		return models.TitleScorecard{}, models.NewValidationError("title", "total_cost", "must be positive to compute efficiency metrics")
	}

	summary := e.analyzer.Analyze(series)
	value := e.calculator.Breakdown(title, summary, quality)
	eff := valuation.CostEfficiency(summary.TotalHours, totalCost, value.TotalValue)

	card := models.TitleScorecard{
		TitleID:         title.ID,
		TitleName:       title.Name,
		Brand:           title.Brand,
		Genre:           title.Genre,
		PlatformPrimary: title.PlatformPrimary,
		ContentType:     title.ContentType,
		BudgetTier:      title.BudgetTier,

		ReleaseStreaming: title.ReleaseStreaming,

		Engagement: summary,

		CriticScore:   quality.CriticScore,
		AudienceScore: quality.AudienceScore,
		IMDBRating:    quality.IMDBRating,
		BuzzScore:     quality.BuzzScore,

		Value: value,

		ProductionBudget: title.ProductionBudget,
		MarketingSpend:   title.MarketingSpend,
		TotalCost:        totalCost,

		ROI:               eff.ROI,
		CostPerHourViewed: eff.CostPerHourViewed,
		ValuePerDollar:    eff.ValuePerDollar,

		ComputedAt: time.Now().UTC(),
	}
	card.Classification = e.Classify(card)

	return card, nil
}

// Classify assigns exactly one performance bucket. The checks run in
// priority order so an expensive hit is a Tentpole even when its ROI
// would also satisfy Workhorse.
func (e *Engine) Classify(card models.TitleScorecard) models.Classification {
	t := e.asm.Tentpole
	if card.TotalCost >= t.MinCost && card.Value.TotalValue >= t.MinValue {
		return models.ClassTentpole
	}

	// Threshold boundaries are inclusive: a title sitting exactly on
	// UnderperformerROI is an Underperformer, and one exactly on the
	// Niche Gem gates qualifies.
	if card.ROI <= e.asm.UnderperformerROI {
		return models.ClassUnderperformer
	}

	n := e.asm.NicheGem
	if card.TotalCost <= n.MaxCost && card.ROI >= n.MinROI && card.CostPerHourViewed <= n.MaxCostPerHour {
		return models.ClassNicheGem
	}

	w := e.asm.Workhorse
	if card.ROI >= w.MinROI && card.ROI <= w.MaxROI && card.TotalCost >= w.MinCost {
		return models.ClassWorkhorse
	}

	if card.ROI > e.asm.AcceptableMinROI {
		return models.ClassAcceptable
	}

	return models.ClassMarginal
}
