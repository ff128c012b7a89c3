// -----------------------------------------------------------------------
// Assumptions - Immutable business parameters for all value computations
// Construct via Default() and adjust with an overrides file; every
// computation receives an explicit *Assumptions, never shared mutable state
// -----------------------------------------------------------------------

package assumptions

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/magicslate/slate/internal/models"
)

// TentpoleThreshold gates the Tentpole classification
type TentpoleThreshold struct {
	MinCost  float64 `json:"min_cost" toml:"min_cost"`
	MinValue float64 `json:"min_value" toml:"min_value"`
}

// WorkhorseThreshold gates the Workhorse classification
type WorkhorseThreshold struct {
	MinROI  float64 `json:"min_roi" toml:"min_roi"`
	MaxROI  float64 `json:"max_roi" toml:"max_roi"`
	MinCost float64 `json:"min_cost" toml:"min_cost"`
}

// NicheGemThreshold gates the Niche Gem classification
type NicheGemThreshold struct {
	MaxCost        float64 `json:"max_cost" toml:"max_cost"`
	MinROI         float64 `json:"min_roi" toml:"min_roi"`
	MaxCostPerHour float64 `json:"max_cost_per_hour" toml:"max_cost_per_hour"`
}

// GreenlightThresholds map base/bear ROI to a recommendation label
type GreenlightThresholds struct {
	StrongBaseROI  float64 `json:"strong_base_roi" toml:"strong_base_roi"`
	StrongBearROI  float64 `json:"strong_bear_roi" toml:"strong_bear_roi"`
	BaseROI        float64 `json:"base_roi" toml:"base_roi"`
	ConditionalROI float64 `json:"conditional_roi" toml:"conditional_roi"`
}

// Assumptions is the read-only parameter set threaded through every
// computation. Invalid values fail at construction via Validate.
type Assumptions struct {
	// Streaming economics
	DisneyPlusARPU float64 `json:"disney_plus_arpu" toml:"disney_plus_arpu"` // USD/month
	HuluARPU       float64 `json:"hulu_arpu" toml:"hulu_arpu"`               // USD/month
	AdARPUPerHour  float64 `json:"ad_arpu_per_hour" toml:"ad_arpu_per_hour"` // USD/hour, ad tier
	AdTierShare    float64 `json:"ad_tier_share" toml:"ad_tier_share"`       // fraction of viewers on ad tier

	// Engagement-to-value conversion
	AcquisitionPerMillionHours   float64 `json:"acquisition_per_million_hours" toml:"acquisition_per_million_hours"` // new subs per 1M hours
	AcquisitionQualityMultiplier float64 `json:"acquisition_quality_multiplier" toml:"acquisition_quality_multiplier"`
	AcquisitionBuzzThreshold     float64 `json:"acquisition_buzz_threshold" toml:"acquisition_buzz_threshold"`
	AcquisitionAudienceBonus     float64 `json:"acquisition_audience_bonus" toml:"acquisition_audience_bonus"`
	AcquisitionAudienceThreshold float64 `json:"acquisition_audience_threshold" toml:"acquisition_audience_threshold"`
	FilmAcquisitionMultiplier    float64 `json:"film_acquisition_multiplier" toml:"film_acquisition_multiplier"`

	RetentionPerMillionHours   float64 `json:"retention_per_million_hours" toml:"retention_per_million_hours"` // sub-months per 1M hours
	RetentionQualityMultiplier float64 `json:"retention_quality_multiplier" toml:"retention_quality_multiplier"`
	RetentionQualityThreshold  float64 `json:"retention_quality_threshold" toml:"retention_quality_threshold"`
	SeriesRetentionMultiplier  float64 `json:"series_retention_multiplier" toml:"series_retention_multiplier"`

	SubscriberLifetimeMonths float64 `json:"subscriber_lifetime_months" toml:"subscriber_lifetime_months"`

	// Brand multiplier tables
	AcquisitionBrandMultipliers map[string]float64 `json:"acquisition_brand_multipliers" toml:"acquisition_brand_multipliers"`
	TheatricalBrandMultipliers  map[string]float64 `json:"theatrical_brand_multipliers" toml:"theatrical_brand_multipliers"`

	// Theatrical and PVOD
	TheatricalMultipleByTier map[models.BudgetTier]float64 `json:"theatrical_multiple_by_tier" toml:"theatrical_multiple_by_tier"`
	PVODShareOfTheatrical    float64                       `json:"pvod_share_of_theatrical" toml:"pvod_share_of_theatrical"`

	// Windowing and cannibalization
	PVODCannibalizationFactor    float64 `json:"pvod_cannibalization_factor" toml:"pvod_cannibalization_factor"`
	LicenseCannibalizationFactor float64 `json:"license_cannibalization_factor" toml:"license_cannibalization_factor"`
	ShortWindowDays              int     `json:"short_window_days" toml:"short_window_days"`       // below: full PVOD cannibalization
	StandardWindowDays           int     `json:"standard_window_days" toml:"standard_window_days"` // below: half PVOD cannibalization
	BaselineTheatricalDays       int     `json:"baseline_theatrical_days" toml:"baseline_theatrical_days"`

	// Financial parameters
	DiscountRate   float64 `json:"discount_rate" toml:"discount_rate"` // annual, [0,1)
	PeriodsPerYear float64 `json:"periods_per_year" toml:"periods_per_year"`

	// Engagement curve fitting
	EngagementHorizonWeeks int     `json:"engagement_horizon_weeks" toml:"engagement_horizon_weeks"`
	MinPostPeakPoints      int     `json:"min_post_peak_points" toml:"min_post_peak_points"`
	DefaultDecayRate       float64 `json:"default_decay_rate" toml:"default_decay_rate"` // regression fallback
	PeakThresholdShare     float64 `json:"peak_threshold_share" toml:"peak_threshold_share"`

	// Quality score defaults for missing optional fields
	DefaultCriticScore   float64 `json:"default_critic_score" toml:"default_critic_score"`
	DefaultAudienceScore float64 `json:"default_audience_score" toml:"default_audience_score"`
	DefaultIMDBRating    float64 `json:"default_imdb_rating" toml:"default_imdb_rating"`
	DefaultBuzzScore     float64 `json:"default_buzz_score" toml:"default_buzz_score"`

	// Classification thresholds, applied in fixed priority order
	Tentpole          TentpoleThreshold  `json:"tentpole" toml:"tentpole"`
	Workhorse         WorkhorseThreshold `json:"workhorse" toml:"workhorse"`
	NicheGem          NicheGemThreshold  `json:"niche_gem" toml:"niche_gem"`
	UnderperformerROI float64            `json:"underperformer_max_roi" toml:"underperformer_max_roi"`
	AcceptableMinROI  float64            `json:"acceptable_min_roi" toml:"acceptable_min_roi"`

	// Greenlight forecasting
	ComparableSetSize int                  `json:"comparable_set_size" toml:"comparable_set_size"`
	Greenlight        GreenlightThresholds `json:"greenlight" toml:"greenlight"`
}

// Default returns the standard assumption set. The returned value passes
// Validate by construction.
func Default() *Assumptions {
	return &Assumptions{
		DisneyPlusARPU: 7.99,
		HuluARPU:       12.99,
		AdARPUPerHour:  0.05,
		AdTierShare:    0.30,

		AcquisitionPerMillionHours:   50,
		AcquisitionQualityMultiplier: 1.5,
		AcquisitionBuzzThreshold:     70,
		AcquisitionAudienceBonus:     1.2,
		AcquisitionAudienceThreshold: 80,
		FilmAcquisitionMultiplier:    1.2,

		RetentionPerMillionHours:   100,
		RetentionQualityMultiplier: 1.3,
		RetentionQualityThreshold:  75,
		SeriesRetentionMultiplier:  1.3,

		SubscriberLifetimeMonths: 18,

		AcquisitionBrandMultipliers: map[string]float64{
			"Marvel":    1.5,
			"Star Wars": 1.4,
			"Pixar":     1.3,
		},
		TheatricalBrandMultipliers: map[string]float64{
			"Marvel":           1.8,
			"Star Wars":        1.6,
			"Pixar":            1.4,
			"Disney Animation": 1.2,
		},

		TheatricalMultipleByTier: map[models.BudgetTier]float64{
			models.BudgetTierLow:    2.5,
			models.BudgetTierMedium: 3.0,
			models.BudgetTierHigh:   3.5,
		},
		PVODShareOfTheatrical: 0.15,

		PVODCannibalizationFactor:    0.30,
		LicenseCannibalizationFactor: 0.25,
		ShortWindowDays:              45,
		StandardWindowDays:           75,
		BaselineTheatricalDays:       90,

		DiscountRate:   0.10,
		PeriodsPerYear: 52,

		EngagementHorizonWeeks: models.EngagementHorizonWeeks,
		MinPostPeakPoints:      3,
		DefaultDecayRate:       0,
		PeakThresholdShare:     0.10,

		DefaultCriticScore:   70,
		DefaultAudienceScore: 70,
		DefaultIMDBRating:    7.0,
		DefaultBuzzScore:     50,

		Tentpole:          TentpoleThreshold{MinCost: 80_000_000, MinValue: 200_000_000},
		Workhorse:         WorkhorseThreshold{MinROI: 0.5, MaxROI: 2.0, MinCost: 10_000_000},
		NicheGem:          NicheGemThreshold{MaxCost: 20_000_000, MinROI: 1.5, MaxCostPerHour: 5.0},
		UnderperformerROI: 0.0,
		AcceptableMinROI:  0.3,

		ComparableSetSize: 5,
		Greenlight: GreenlightThresholds{
			StrongBaseROI:  1.0,
			StrongBearROI:  0.3,
			BaseROI:        0.5,
			ConditionalROI: 0.2,
		},
	}
}

// PlatformARPU returns the monthly ARPU for a platform, defaulting to the
// Disney+ rate for unknown platforms.
func (a *Assumptions) PlatformARPU(p models.Platform) float64 {
	switch p {
	case models.PlatformHulu:
		return a.HuluARPU
	default:
		return a.DisneyPlusARPU
	}
}

// AcquisitionBrandMultiplier returns the brand factor for subscriber
// acquisition, 1.0 for brands outside the table.
func (a *Assumptions) AcquisitionBrandMultiplier(brand string) float64 {
	if m, ok := a.AcquisitionBrandMultipliers[brand]; ok {
		return m
	}
	return 1.0
}

// TheatricalBrandMultiplier returns the brand factor for box office,
// 1.0 for brands outside the table.
func (a *Assumptions) TheatricalBrandMultiplier(brand string) float64 {
	if m, ok := a.TheatricalBrandMultipliers[brand]; ok {
		return m
	}
	return 1.0
}

// TheatricalMultiple returns the box-office multiple for a budget tier,
// falling back to the Medium multiple for unknown tiers.
func (a *Assumptions) TheatricalMultiple(tier models.BudgetTier) float64 {
	if m, ok := a.TheatricalMultipleByTier[tier]; ok {
		return m
	}
	return a.TheatricalMultipleByTier[models.BudgetTierMedium]
}

// Validate fails fast on out-of-range parameters. Load calls this after
// applying overrides; callers constructing Assumptions directly should
// call it before use.
func (a *Assumptions) Validate() error {
	if a.DisneyPlusARPU <= 0 {
		return models.NewConfigurationError("disney_plus_arpu", "must be positive")
	}
	if a.HuluARPU <= 0 {
		return models.NewConfigurationError("hulu_arpu", "must be positive")
	}
	if a.AdARPUPerHour < 0 {
		return models.NewConfigurationError("ad_arpu_per_hour", "must be non-negative")
	}
	if a.AdTierShare < 0 || a.AdTierShare > 1 {
		return models.NewConfigurationError("ad_tier_share", "must be in [0,1]")
	}
	if a.DiscountRate < 0 || a.DiscountRate >= 1 {
		return models.NewConfigurationError("discount_rate", "must be in [0,1)")
	}
	if a.PeriodsPerYear <= 0 {
		return models.NewConfigurationError("periods_per_year", "must be positive")
	}
	if a.PVODShareOfTheatrical < 0 || a.PVODShareOfTheatrical > 1 {
		return models.NewConfigurationError("pvod_share_of_theatrical", "must be in [0,1]")
	}
	if a.PVODCannibalizationFactor < 0 || a.PVODCannibalizationFactor > 1 {
		return models.NewConfigurationError("pvod_cannibalization_factor", "must be in [0,1]")
	}
	if a.LicenseCannibalizationFactor < 0 || a.LicenseCannibalizationFactor > 1 {
		return models.NewConfigurationError("license_cannibalization_factor", "must be in [0,1]")
	}
	if a.AcquisitionPerMillionHours < 0 {
		return models.NewConfigurationError("acquisition_per_million_hours", "must be non-negative")
	}
	if a.RetentionPerMillionHours < 0 {
		return models.NewConfigurationError("retention_per_million_hours", "must be non-negative")
	}
	if a.SubscriberLifetimeMonths <= 0 {
		return models.NewConfigurationError("subscriber_lifetime_months", "must be positive")
	}
	if a.EngagementHorizonWeeks < 3 {
		return models.NewConfigurationError("engagement_horizon_weeks", "must be at least 3")
	}
	if a.MinPostPeakPoints < 2 {
		return models.NewConfigurationError("min_post_peak_points", "must be at least 2")
	}
	if a.PeakThresholdShare < 0 || a.PeakThresholdShare > 1 {
		return models.NewConfigurationError("peak_threshold_share", "must be in [0,1]")
	}
	if a.ComparableSetSize <= 0 {
		return models.NewConfigurationError("comparable_set_size", "must be positive")
	}
	if a.Workhorse.MaxROI < a.Workhorse.MinROI {
		return models.NewConfigurationError("workhorse.max_roi", "must not be below workhorse.min_roi")
	}
	for tier, mult := range a.TheatricalMultipleByTier {
		if mult <= 0 {
			return models.NewConfigurationError(
				fmt.Sprintf("theatrical_multiple_by_tier.%s", tier), "must be positive")
		}
	}
	for brand, mult := range a.AcquisitionBrandMultipliers {
		if mult <= 0 {
			return models.NewConfigurationError(
				fmt.Sprintf("acquisition_brand_multipliers.%s", brand), "must be positive")
		}
	}
	for brand, mult := range a.TheatricalBrandMultipliers {
		if mult <= 0 {
			return models.NewConfigurationError(
				fmt.Sprintf("theatrical_brand_multipliers.%s", brand), "must be positive")
		}
	}
	return nil
}

// Fingerprint returns a stable hash of the full parameter set, used as the
// assumptions component of memoization cache keys. JSON marshaling sorts
// map keys, so equal assumption sets always hash identically.
func (a *Assumptions) Fingerprint() string {
	data, err := json.Marshal(a)
	if err != nil {
		// Assumptions contain only marshalable fields; treat failure as
		// an unreachable state rather than threading an error through
		// every cache key construction.
		return "unfingerprintable"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
