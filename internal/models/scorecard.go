package models

import (
	"encoding/gob"
	"time"
)

func init() {
	// Register types for gob encoding (required for BadgerHold storage)
	gob.Register(TitleScorecard{})
	gob.Register(EngagementSummary{})
	gob.Register(ValueBreakdown{})
}

// Classification buckets a title's performance. The buckets are mutually
// exclusive and exhaustive: every scorecard maps to exactly one.
type Classification string

const (
	ClassTentpole       Classification = "Tentpole"
	ClassWorkhorse      Classification = "Workhorse"
	ClassNicheGem       Classification = "Niche Gem"
	ClassAcceptable     Classification = "Acceptable"
	ClassMarginal       Classification = "Marginal"
	ClassUnderperformer Classification = "Underperformer"
)

// Classifications lists every bucket in priority order
func Classifications() []Classification {
	return []Classification{
		ClassTentpole,
		ClassWorkhorse,
		ClassNicheGem,
		ClassAcceptable,
		ClassMarginal,
		ClassUnderperformer,
	}
}

// EngagementSummary is the fitted curve shape for a title
type EngagementSummary struct {
	TotalHours          float64 `json:"total_hours_viewed"`
	PeakHours           float64 `json:"peak_hours"`
	PeakWeek            int     `json:"peak_week"`
	DecayRate           float64 `json:"decay_rate"`
	LongTailShare       float64 `json:"long_tail_share"`
	WeeksAboveThreshold int     `json:"weeks_above_threshold"`

	// Degraded marks a curve fit that fell back to the default decay rate
	// (fewer than the minimum post-peak points for regression).
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// ValueBreakdown is the per-channel revenue estimate for a title
type ValueBreakdown struct {
	AcquisitionValue float64 `json:"acquisition_value"`
	RetentionValue   float64 `json:"retention_value"`
	StreamingValue   float64 `json:"streaming_value"` // acquisition + retention
	AdValue          float64 `json:"ad_value"`
	TheatricalValue  float64 `json:"theatrical_value"`
	PVODValue        float64 `json:"pvod_value"`
	TotalValue       float64 `json:"total_value"`
}

// TitleScorecard is the derived per-title result. It is recomputed wholesale
// when inputs change and never mutated after creation.
type TitleScorecard struct {
	TitleID         string      `json:"title_id"`
	TitleName       string      `json:"title_name"`
	Brand           string      `json:"brand"`
	Genre           string      `json:"genre"`
	PlatformPrimary Platform    `json:"platform_primary"`
	ContentType     ContentType `json:"content_type"`
	BudgetTier      BudgetTier  `json:"production_budget_tier"`

	ReleaseStreaming *time.Time `json:"release_streaming_date,omitempty"`

	Engagement EngagementSummary `json:"engagement"`

	CriticScore   float64 `json:"critic_score"`
	AudienceScore float64 `json:"audience_score"`
	IMDBRating    float64 `json:"imdb_rating"`
	BuzzScore     float64 `json:"buzz_score"`

	Value ValueBreakdown `json:"value"`

	ProductionBudget float64 `json:"production_budget"`
	MarketingSpend   float64 `json:"marketing_spend"`
	TotalCost        float64 `json:"total_cost"`

	ROI               float64        `json:"roi"` // (value - cost) / cost
	CostPerHourViewed float64        `json:"cost_per_hour_viewed"`
	ValuePerDollar    float64        `json:"value_per_dollar_spent"`
	Classification    Classification `json:"classification"`

	ComputedAt time.Time `json:"computed_at"`
}
