// Package valuation converts engagement, quality and title metadata into
// per-channel revenue estimates. Every coefficient comes from the
// assumptions store; no channel computation embeds constants locally.
package valuation

import (
	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

// Calculator estimates streaming, ad, theatrical and PVOD value
type Calculator struct {
	asm *assumptions.Assumptions
}

// NewCalculator creates a calculator bound to an assumption set
func NewCalculator(asm *assumptions.Assumptions) *Calculator {
	return &Calculator{asm: asm}
}

// NewSubscribers estimates subscriber acquisition from hours viewed.
// Buzzy, well-received titles on marquee brands drive disproportionate
// acquisition; films convert harder than series.
func (c *Calculator) NewSubscribers(hours float64, title models.Title, quality models.QualityScores) float64 {
	if hours <= 0 {
		return 0
	}

	base := hours / 1_000_000 * c.asm.AcquisitionPerMillionHours

	qualityFactor := 1.0
	if quality.BuzzScore > c.asm.AcquisitionBuzzThreshold {
		qualityFactor *= c.asm.AcquisitionQualityMultiplier
	}
	if quality.AudienceScore > c.asm.AcquisitionAudienceThreshold {
		qualityFactor *= c.asm.AcquisitionAudienceBonus
	}

	contentFactor := 1.0
	if title.ContentType == models.ContentTypeFilm {
		contentFactor = c.asm.FilmAcquisitionMultiplier
	}

	return base * qualityFactor * c.asm.AcquisitionBrandMultiplier(title.Brand) * contentFactor
}

// RetainedSubscriberMonths estimates churn reduction from hours viewed.
// Series hold retention better than films; quality reception compounds it.
func (c *Calculator) RetainedSubscriberMonths(hours float64, title models.Title, quality models.QualityScores) float64 {
	if hours <= 0 {
		return 0
	}

	base := hours / 1_000_000 * c.asm.RetentionPerMillionHours

	qualityFactor := 1.0
	if quality.AverageReception() > c.asm.RetentionQualityThreshold {
		qualityFactor *= c.asm.RetentionQualityMultiplier
	}

	contentFactor := 1.0
	if title.ContentType == models.ContentTypeSeries {
		contentFactor = c.asm.SeriesRetentionMultiplier
	}

	return base * qualityFactor * contentFactor
}

// StreamingValue returns the acquisition and retention value components
// for the given total hours viewed.
func (c *Calculator) StreamingValue(hours float64, title models.Title, quality models.QualityScores) (acquisition, retention float64) {
	arpu := c.asm.PlatformARPU(title.PlatformPrimary)

	subs := c.NewSubscribers(hours, title, quality)
	acquisition = subs * arpu * c.asm.SubscriberLifetimeMonths

	months := c.RetainedSubscriberMonths(hours, title, quality)
	retention = months * arpu

	return acquisition, retention
}

// AdValue estimates ad-tier revenue. Only ad-supported platforms earn it.
func (c *Calculator) AdValue(hours float64, platform models.Platform) float64 {
	if hours <= 0 || !platform.AdSupported() {
		return 0
	}
	return hours * c.asm.AdTierShare * c.asm.AdARPUPerHour
}

// TheatricalValue estimates box office for film content as budget-tier
// multiple scaled by quality and brand. Non-film content and titles that
// never opened theatrically earn nothing.
func (c *Calculator) TheatricalValue(title models.Title, quality models.QualityScores) float64 {
	if title.ContentType != models.ContentTypeFilm || title.ProductionBudget <= 0 {
		return 0
	}
	if title.ReleaseTheatrical == nil {
		return 0
	}

	multiple := c.asm.TheatricalMultiple(title.BudgetTier)

	// 0.5x - 2.0x: good films overperform, bad films underperform
	qualityFactor := 0.5 + quality.AverageReception()/100*1.5

	value := title.ProductionBudget * multiple * qualityFactor * c.asm.TheatricalBrandMultiplier(title.Brand)
	if value < 0 {
		return 0
	}
	return value
}

// PVODValue estimates premium-VOD revenue as a configured share of
// theatrical, reduced when an early streaming release cannibalizes the
// window and scaled by quality.
func (c *Calculator) PVODValue(theatricalValue float64, quality models.QualityScores, streamingWindowDays int) float64 {
	if theatricalValue <= 0 {
		return 0
	}

	base := theatricalValue * c.asm.PVODShareOfTheatrical

	windowFactor := 1.0
	switch {
	case streamingWindowDays < c.asm.ShortWindowDays:
		windowFactor = 1.0 - c.asm.PVODCannibalizationFactor
	case streamingWindowDays < c.asm.StandardWindowDays:
		windowFactor = 1.0 - c.asm.PVODCannibalizationFactor/2
	}

	// 0.7x - 1.3x quality band
	qualityFactor := 0.7 + quality.AverageReception()/100*0.6

	value := base * windowFactor * qualityFactor
	if value < 0 {
		return 0
	}
	return value
}

// LicenseCannibalization reduces streaming value when the title is also
// licensed to a third party.
func (c *Calculator) LicenseCannibalization(streamingValue float64, hasThirdPartyLicense bool) float64 {
	if !hasThirdPartyLicense {
		return streamingValue
	}
	return streamingValue * (1.0 - c.asm.LicenseCannibalizationFactor)
}

// Breakdown computes the full per-channel value breakdown for a title
func (c *Calculator) Breakdown(title models.Title, engagement models.EngagementSummary, quality models.QualityScores) models.ValueBreakdown {
	hours := engagement.TotalHours

	acquisition, retention := c.StreamingValue(hours, title, quality)
	streaming := c.LicenseCannibalization(acquisition+retention, title.HasThirdPartyLicense)

	ad := c.AdValue(hours, title.PlatformPrimary)

	theatrical := c.TheatricalValue(title, quality)

	pvod := 0.0
	if theatrical > 0 && title.ReleasePVOD != nil {
		windowDays := title.StreamingWindowDays(c.asm.BaselineTheatricalDays)
		pvod = c.PVODValue(theatrical, quality, windowDays)
	}

	return models.ValueBreakdown{
		AcquisitionValue: acquisition,
		RetentionValue:   retention,
		StreamingValue:   streaming,
		AdValue:          ad,
		TheatricalValue:  theatrical,
		PVODValue:        pvod,
		TotalValue:       streaming + ad + theatrical + pvod,
	}
}

// Efficiency holds the cost-efficiency metrics for a title
type Efficiency struct {
	CostPerHourViewed float64
	ValuePerDollar    float64
	ROI               float64
}

// CostEfficiency derives cost-per-hour, value-per-dollar and ROI.
// A zero cost is a validation failure upstream; here it yields zero ROI
// rather than a division by zero.
func CostEfficiency(totalHours, totalCost, totalValue float64) Efficiency {
	e := Efficiency{}
	if totalHours > 0 {
		e.CostPerHourViewed = totalCost / totalHours
	}
	if totalCost > 0 {
		e.ValuePerDollar = totalValue / totalCost
		e.ROI = (totalValue - totalCost) / totalCost
	}
	return e
}
