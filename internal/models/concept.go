package models

import "time"

// IPFamiliarity describes how established a concept's IP is
type IPFamiliarity string

const (
	IPNew           IPFamiliarity = "New IP"
	IPSequel        IPFamiliarity = "Sequel"
	IPSpinOff       IPFamiliarity = "Spin-off"
	IPFranchiseCore IPFamiliarity = "Franchise Core"
)

// Established reports whether the IP carries existing franchise equity
func (f IPFamiliarity) Established() bool {
	return f == IPSequel || f == IPSpinOff || f == IPFranchiseCore
}

// NewTitleConcept is the input describing a proposed title. It is never
// persisted beyond a single forecast call.
type NewTitleConcept struct {
	Name            string        `json:"concept_name" yaml:"name" validate:"required"`
	Brand           string        `json:"brand" yaml:"brand"`
	Genre           string        `json:"genre" yaml:"genre"`
	ContentType     ContentType   `json:"content_type" yaml:"content_type" validate:"required,oneof=Film Series"`
	PlatformPrimary Platform      `json:"platform_primary" yaml:"platform"`
	IPFamiliarity   IPFamiliarity `json:"ip_familiarity" yaml:"ip_familiarity"`

	SeasonNumber int `json:"season_number,omitempty" yaml:"season_number"`
	EpisodeCount int `json:"episode_count,omitempty" yaml:"episode_count"`

	ProductionBudget float64 `json:"production_budget_estimate" yaml:"production_budget" validate:"gte=0"` // USD
	MarketingSpend   float64 `json:"marketing_spend_estimate" yaml:"marketing_spend" validate:"gte=0"`     // USD

	StarPowerScore int `json:"star_power_score" yaml:"star_power" validate:"gte=1,lte=5"`   // 1-5
	BuzzPotential  int `json:"buzz_potential_score" yaml:"buzz_potential" validate:"gte=0,lte=100"` // 0-100
}

// TotalCost is the estimated production plus marketing spend in USD
func (c NewTitleConcept) TotalCost() float64 {
	return c.ProductionBudget + c.MarketingSpend
}

// BudgetTier derives the tier for comparable matching
func (c NewTitleConcept) BudgetTier() BudgetTier {
	return TierForBudget(c.ProductionBudget)
}

// Comparable is one historical title scored against a concept
type Comparable struct {
	TitleID        string         `json:"title_id"`
	TitleName      string         `json:"title_name"`
	Brand          string         `json:"brand"`
	Genre          string         `json:"genre"`
	ContentType    ContentType    `json:"content_type"`
	Similarity     float64        `json:"similarity_score"` // 0-1
	TotalHours     float64        `json:"total_hours_viewed"`
	TotalValue     float64        `json:"total_value"`
	ROI            float64        `json:"roi"`
	Classification Classification `json:"classification"`
}

// ComparableSet is a ranked sequence of comparables. Ordering by descending
// similarity is a correctness invariant.
type ComparableSet []Comparable

// DistributionStats summarizes one metric across a comparable set
type DistributionStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ForecastBand is one bear/base/bull scenario estimate
type ForecastBand struct {
	TotalHours float64 `json:"total_hours_viewed"`
	TotalValue float64 `json:"total_value"`
	TotalCost  float64 `json:"total_cost"`
	ROI        float64 `json:"roi"`
}

// RecommendationLabel is the greenlight call derived from the base case
type RecommendationLabel string

const (
	RecommendStrongGreenlight      RecommendationLabel = "Strong Greenlight"
	RecommendGreenlight            RecommendationLabel = "Greenlight"
	RecommendConditionalGreenlight RecommendationLabel = "Conditional Greenlight"
	RecommendMarginal              RecommendationLabel = "Marginal"
	RecommendPass                  RecommendationLabel = "Pass"
)

// ForecastResult is the derived forecast for a concept
type ForecastResult struct {
	ID          string        `json:"id"`
	ConceptName string        `json:"concept_name"`
	Comparables ComparableSet `json:"comparables"`

	RequestedComparables int  `json:"requested_comparables"`
	SampleSize           int  `json:"sample_size"`
	DegradedSample       bool `json:"degraded_sample"`

	HoursStats DistributionStats `json:"hours_stats"`
	ValueStats DistributionStats `json:"value_stats"`
	ROIStats   DistributionStats `json:"roi_stats"`

	Bear ForecastBand `json:"bear"`
	Base ForecastBand `json:"base"`
	Bull ForecastBand `json:"bull"`

	Recommendation RecommendationLabel `json:"recommendation"`
	Narrative      string              `json:"narrative,omitempty"`
	ComputedAt     time.Time           `json:"computed_at"`
}
