package models

import (
	"time"
)

// ContentType distinguishes films from series
type ContentType string

const (
	ContentTypeFilm   ContentType = "Film"
	ContentTypeSeries ContentType = "Series"
)

// Platform identifies the primary streaming platform for a title
type Platform string

const (
	PlatformDisneyPlus Platform = "Disney+"
	PlatformHulu       Platform = "Hulu"
)

// AdSupported reports whether the platform carries an ad-supported tier
func (p Platform) AdSupported() bool {
	return p == PlatformHulu
}

// BudgetTier buckets production budgets for theatrical multiples and comps
type BudgetTier string

const (
	BudgetTierLow    BudgetTier = "Low"
	BudgetTierMedium BudgetTier = "Medium"
	BudgetTierHigh   BudgetTier = "High"
)

// budgetTierOrder is used for tier proximity scoring
var budgetTierOrder = map[BudgetTier]int{
	BudgetTierLow:    0,
	BudgetTierMedium: 1,
	BudgetTierHigh:   2,
}

// TierDistance returns the absolute ordinal distance between two budget tiers.
// Unknown tiers are treated as Medium.
func TierDistance(a, b BudgetTier) int {
	ai, ok := budgetTierOrder[a]
	if !ok {
		ai = budgetTierOrder[BudgetTierMedium]
	}
	bi, ok := budgetTierOrder[b]
	if !ok {
		bi = budgetTierOrder[BudgetTierMedium]
	}
	d := ai - bi
	if d < 0 {
		d = -d
	}
	return d
}

// TierForBudget maps a production budget in USD to its tier
func TierForBudget(budgetUSD float64) BudgetTier {
	switch {
	case budgetUSD < 20_000_000:
		return BudgetTierLow
	case budgetUSD < 80_000_000:
		return BudgetTierMedium
	default:
		return BudgetTierHigh
	}
}

// Title is the immutable reference entity for a catalog entry.
// Created at ingestion and read-only thereafter.
type Title struct {
	ID              string      `json:"title_id" validate:"required"`
	Name            string      `json:"title_name" validate:"required"`
	Brand           string      `json:"brand"`
	Genre           string      `json:"genre"`
	PlatformPrimary Platform    `json:"platform_primary" validate:"required"`
	ContentType     ContentType `json:"content_type" validate:"required,oneof=Film Series"`

	BudgetTier       BudgetTier `json:"production_budget_tier"`
	ProductionBudget float64    `json:"production_budget" validate:"gte=0"` // USD
	MarketingSpend   float64    `json:"marketing_spend" validate:"gte=0"`   // USD

	// Release dates; nil means the window never opened for this title
	ReleaseTheatrical *time.Time `json:"release_theatrical_date,omitempty"`
	ReleasePVOD       *time.Time `json:"release_pvod_date,omitempty"`
	ReleaseStreaming  *time.Time `json:"release_streaming_date,omitempty"`

	RuntimeMinutes int `json:"runtime_minutes,omitempty"` // films
	SeasonNumber   int `json:"season_number,omitempty"`   // series
	EpisodeCount   int `json:"episode_count,omitempty"`   // series

	HasThirdPartyLicense bool `json:"has_third_party_license"`
}

// TotalCost is production plus marketing spend in USD
func (t Title) TotalCost() float64 {
	return t.ProductionBudget + t.MarketingSpend
}

// HadTheatricalRun reports whether the title opened theatrically
func (t Title) HadTheatricalRun() bool {
	return t.ContentType == ContentTypeFilm && t.ReleaseTheatrical != nil
}

// StreamingWindowDays returns the days between theatrical and streaming release.
// Returns the fallback when either date is missing.
func (t Title) StreamingWindowDays(fallback int) int {
	if t.ReleaseTheatrical == nil || t.ReleaseStreaming == nil {
		return fallback
	}
	days := int(t.ReleaseStreaming.Sub(*t.ReleaseTheatrical).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
