package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func plainQuality() models.QualityScores {
	return models.QualityScores{CriticScore: 60, AudienceScore: 60, IMDBRating: 6.0, BuzzScore: 50}
}

func TestNewSubscribers_AllMultipliersStack(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	title := models.Title{
		ContentType:     models.ContentTypeFilm,
		Brand:           "Marvel",
		PlatformPrimary: models.PlatformDisneyPlus,
	}
	quality := models.QualityScores{BuzzScore: 80, AudienceScore: 85, CriticScore: 70, IMDBRating: 7.5}

	// base 50 subs/1M hours, buzz x1.5, audience x1.2, Marvel x1.5, film x1.2
	got := c.NewSubscribers(1_000_000, title, quality)
	want := 50.0 * 1.5 * 1.2 * 1.5 * 1.2

	if !almostEqual(got, want, 1e-9) {
		t.Errorf("NewSubscribers = %f, want %f", got, want)
	}
}

func TestNewSubscribers_NoHoursNoSubs(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	if got := c.NewSubscribers(0, models.Title{}, plainQuality()); got != 0 {
		t.Errorf("NewSubscribers(0 hours) = %f, want 0", got)
	}
}

func TestRetainedSubscriberMonths_SeriesBeatsFilm(t *testing.T) {
	c := NewCalculator(assumptions.Default())
	quality := plainQuality()

	film := models.Title{ContentType: models.ContentTypeFilm}
	series := models.Title{ContentType: models.ContentTypeSeries}

	filmMonths := c.RetainedSubscriberMonths(2_000_000, film, quality)
	seriesMonths := c.RetainedSubscriberMonths(2_000_000, series, quality)

	if !almostEqual(seriesMonths, filmMonths*1.3, 1e-9) {
		t.Errorf("series retention %f, want %f (1.3x film %f)", seriesMonths, filmMonths*1.3, filmMonths)
	}
}

func TestRetainedSubscriberMonths_QualityMultiplier(t *testing.T) {
	c := NewCalculator(assumptions.Default())
	title := models.Title{ContentType: models.ContentTypeFilm}

	// average reception 80 crosses the 75 threshold
	good := models.QualityScores{CriticScore: 80, AudienceScore: 80}
	plain := models.QualityScores{CriticScore: 70, AudienceScore: 70}

	goodMonths := c.RetainedSubscriberMonths(1_000_000, title, good)
	plainMonths := c.RetainedSubscriberMonths(1_000_000, title, plain)

	if !almostEqual(goodMonths, plainMonths*1.3, 1e-9) {
		t.Errorf("quality retention %f, want %f", goodMonths, plainMonths*1.3)
	}
}

func TestAdValue_OnlyAdSupportedPlatforms(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	if got := c.AdValue(10_000_000, models.PlatformDisneyPlus); got != 0 {
		t.Errorf("AdValue on Disney+ = %f, want 0", got)
	}

	got := c.AdValue(10_000_000, models.PlatformHulu)
	want := 10_000_000 * 0.30 * 0.05
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("AdValue on Hulu = %f, want %f", got, want)
	}
}

func TestTheatricalValue_FilmOnly(t *testing.T) {
	c := NewCalculator(assumptions.Default())
	quality := plainQuality()

	series := models.Title{
		ContentType:       models.ContentTypeSeries,
		ProductionBudget:  100_000_000,
		ReleaseTheatrical: date("2025-05-01"),
	}
	if got := c.TheatricalValue(series, quality); got != 0 {
		t.Errorf("TheatricalValue for series = %f, want 0", got)
	}

	noRun := models.Title{ContentType: models.ContentTypeFilm, ProductionBudget: 100_000_000}
	if got := c.TheatricalValue(noRun, quality); got != 0 {
		t.Errorf("TheatricalValue without theatrical release = %f, want 0", got)
	}
}

func TestTheatricalValue_Deterministic(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	title := models.Title{
		ContentType:       models.ContentTypeFilm,
		Brand:             "Marvel",
		BudgetTier:        models.BudgetTierHigh,
		ProductionBudget:  100_000_000,
		ReleaseTheatrical: date("2025-05-01"),
	}
	quality := models.QualityScores{CriticScore: 80, AudienceScore: 90}

	// 100M x 3.5 (High tier) x (0.5 + 85/100*1.5) x 1.8 (Marvel)
	want := 100_000_000 * 3.5 * (0.5 + 0.85*1.5) * 1.8

	first := c.TheatricalValue(title, quality)
	second := c.TheatricalValue(title, quality)

	if !almostEqual(first, want, 1e-3) {
		t.Errorf("TheatricalValue = %f, want %f", first, want)
	}
	if first != second {
		t.Errorf("TheatricalValue not deterministic: %f vs %f", first, second)
	}
}

func TestPVODValue_WindowFactors(t *testing.T) {
	c := NewCalculator(assumptions.Default())
	quality := models.QualityScores{CriticScore: 50, AudienceScore: 50}

	theatrical := 100_000_000.0
	base := theatrical * 0.15 * (0.7 + 0.5*0.6)

	cases := []struct {
		name string
		days int
		want float64
	}{
		{"day and date", 30, base * 0.7},
		{"short window", 60, base * 0.85},
		{"standard window", 90, base},
	}

	for _, tc := range cases {
		got := c.PVODValue(theatrical, quality, tc.days)
		if !almostEqual(got, tc.want, 1e-3) {
			t.Errorf("%s: PVODValue = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestPVODValue_ZeroWithoutTheatrical(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	if got := c.PVODValue(0, plainQuality(), 90); got != 0 {
		t.Errorf("PVODValue with no theatrical = %f, want 0", got)
	}
}

func TestLicenseCannibalization(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	if got := c.LicenseCannibalization(100, false); got != 100 {
		t.Errorf("unlicensed streaming value = %f, want 100", got)
	}
	if got := c.LicenseCannibalization(100, true); !almostEqual(got, 75, 1e-9) {
		t.Errorf("licensed streaming value = %f, want 75", got)
	}
}

func TestBreakdown_TotalIsSumOfChannels(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	title := models.Title{
		ID:                "t-1",
		Name:              "Test Film",
		ContentType:       models.ContentTypeFilm,
		Brand:             "Pixar",
		PlatformPrimary:   models.PlatformDisneyPlus,
		BudgetTier:        models.BudgetTierHigh,
		ProductionBudget:  150_000_000,
		ReleaseTheatrical: date("2025-06-01"),
		ReleasePVOD:       date("2025-07-01"),
		ReleaseStreaming:  date("2025-09-01"),
	}
	engagement := models.EngagementSummary{TotalHours: 40_000_000}
	quality := models.QualityScores{CriticScore: 85, AudienceScore: 90, IMDBRating: 8.0, BuzzScore: 75}

	b := c.Breakdown(title, engagement, quality)

	sum := b.StreamingValue + b.AdValue + b.TheatricalValue + b.PVODValue
	if !almostEqual(b.TotalValue, sum, 1e-6) {
		t.Errorf("TotalValue = %f, want channel sum %f", b.TotalValue, sum)
	}
	if b.AdValue != 0 {
		t.Errorf("AdValue on Disney+ = %f, want 0", b.AdValue)
	}
	if b.TheatricalValue <= 0 || b.PVODValue <= 0 {
		t.Errorf("expected theatrical and PVOD value, got %f / %f", b.TheatricalValue, b.PVODValue)
	}
	if !almostEqual(b.StreamingValue, b.AcquisitionValue+b.RetentionValue, 1e-6) {
		t.Errorf("unlicensed streaming %f should equal acquisition+retention %f", b.StreamingValue, b.AcquisitionValue+b.RetentionValue)
	}
}

func TestBreakdown_LicenseReducesStreaming(t *testing.T) {
	c := NewCalculator(assumptions.Default())

	title := models.Title{
		ID:              "t-2",
		ContentType:     models.ContentTypeSeries,
		PlatformPrimary: models.PlatformHulu,
	}
	engagement := models.EngagementSummary{TotalHours: 20_000_000}
	quality := plainQuality()

	clean := c.Breakdown(title, engagement, quality)

	title.HasThirdPartyLicense = true
	licensed := c.Breakdown(title, engagement, quality)

	want := clean.StreamingValue * 0.75
	if !almostEqual(licensed.StreamingValue, want, 1e-6) {
		t.Errorf("licensed streaming = %f, want %f", licensed.StreamingValue, want)
	}
	if licensed.AdValue != clean.AdValue {
		t.Errorf("ad value should be unaffected by licensing")
	}
}

func TestCostEfficiency(t *testing.T) {
	e := CostEfficiency(10_000_000, 50_000_000, 125_000_000)

	if !almostEqual(e.CostPerHourViewed, 5.0, 1e-9) {
		t.Errorf("CostPerHourViewed = %f, want 5", e.CostPerHourViewed)
	}
	if !almostEqual(e.ValuePerDollar, 2.5, 1e-9) {
		t.Errorf("ValuePerDollar = %f, want 2.5", e.ValuePerDollar)
	}
	if !almostEqual(e.ROI, 1.5, 1e-9) {
		t.Errorf("ROI = %f, want 1.5", e.ROI)
	}
}

func TestCostEfficiency_ZeroDenominators(t *testing.T) {
	e := CostEfficiency(0, 0, 100)

	if e.CostPerHourViewed != 0 || e.ValuePerDollar != 0 || e.ROI != 0 {
		t.Errorf("zero denominators should yield zero metrics, got %+v", e)
	}
}
