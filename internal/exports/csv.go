package exports

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
	"github.com/magicslate/slate/internal/portfolio"
)

// Workbook writes the analytics CSV set into a directory: the scorecard
// table, one aggregate file per portfolio dimension, the classification
// distribution, and the assumption set the numbers were computed under.
type Workbook struct {
	dir string
}

func NewWorkbook(dir string) *Workbook {
	return &Workbook{dir: dir}
}

// Write emits every CSV and returns the paths written, in a fixed order.
func (wb *Workbook) Write(cards []models.TitleScorecard, asm *assumptions.Assumptions) ([]string, error) {
	if err := os.MkdirAll(wb.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"scorecards.csv", func(w io.Writer) error { return WriteScorecardsCSV(w, cards) }},
		{"portfolio_by_brand.csv", wb.groupWriter(cards, portfolio.DimensionBrand)},
		{"portfolio_by_genre.csv", wb.groupWriter(cards, portfolio.DimensionGenre)},
		{"portfolio_by_platform.csv", wb.groupWriter(cards, portfolio.DimensionPlatform)},
		{"classification.csv", wb.groupWriter(cards, portfolio.DimensionClassification)},
		{"assumptions.csv", func(w io.Writer) error { return WriteAssumptionsCSV(w, asm) }},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(wb.dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (wb *Workbook) groupWriter(cards []models.TitleScorecard, dim portfolio.Dimension) func(io.Writer) error {
	return func(w io.Writer) error {
		return WriteGroupsCSV(w, string(dim), portfolio.GroupBy(cards, dim))
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteScorecardsCSV writes one row per scorecard. Monetary columns are
// in USD, shares and ROI as fractions.
func WriteScorecardsCSV(w io.Writer, cards []models.TitleScorecard) error {
	cw := csv.NewWriter(w)

	header := []string{
		"title_id", "title_name", "brand", "genre", "platform_primary", "content_type",
		"production_budget_tier", "release_streaming_date",
		"total_hours_viewed", "peak_hours", "peak_week", "decay_rate", "long_tail_share",
		"critic_score", "audience_score", "imdb_rating", "buzz_score",
		"acquisition_value", "retention_value", "ad_value", "theatrical_value", "pvod_value", "total_value",
		"production_budget", "marketing_spend", "total_cost",
		"roi", "cost_per_hour_viewed", "value_per_dollar_spent", "classification",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range cards {
		row := []string{
			c.TitleID, c.TitleName, c.Brand, c.Genre, string(c.PlatformPrimary), string(c.ContentType),
			string(c.BudgetTier), formatDate(c.ReleaseStreaming),
			money(c.Engagement.TotalHours), money(c.Engagement.PeakHours),
			strconv.Itoa(c.Engagement.PeakWeek),
			ratio(c.Engagement.DecayRate), ratio(c.Engagement.LongTailShare),
			ratio(c.CriticScore), ratio(c.AudienceScore), ratio(c.IMDBRating), ratio(c.BuzzScore),
			money(c.Value.AcquisitionValue), money(c.Value.RetentionValue), money(c.Value.AdValue),
			money(c.Value.TheatricalValue), money(c.Value.PVODValue), money(c.Value.TotalValue),
			money(c.ProductionBudget), money(c.MarketingSpend), money(c.TotalCost),
			ratio(c.ROI), ratio(c.CostPerHourViewed), ratio(c.ValuePerDollar),
			string(c.Classification),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteGroupsCSV writes one aggregate row per group key for a dimension.
func WriteGroupsCSV(w io.Writer, dimension string, groups []portfolio.GroupAggregate) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		dimension, "title_count", "total_value", "total_cost", "total_hours_viewed",
		"mean_roi", "value_share",
	}); err != nil {
		return err
	}

	for _, g := range groups {
		row := []string{
			g.Key, strconv.Itoa(g.Count),
			money(g.TotalValue), money(g.TotalCost), money(g.TotalHours),
			ratio(g.MeanROI), ratio(g.ValueShare),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAssumptionsCSV writes the key parameters behind every computed
// value, so an exported workbook is self-describing.
func WriteAssumptionsCSV(w io.Writer, asm *assumptions.Assumptions) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"category", "parameter", "value", "unit"}); err != nil {
		return err
	}

	rows := [][]string{
		{"Streaming ARPU", "Disney+ ARPU (monthly)", ratio(asm.DisneyPlusARPU), "USD"},
		{"Streaming ARPU", "Hulu ARPU (monthly)", ratio(asm.HuluARPU), "USD"},
		{"Ad Revenue", "Ad ARPU per hour", ratio(asm.AdARPUPerHour), "USD"},
		{"Ad Revenue", "Ad tier share", ratio(asm.AdTierShare), "fraction"},
		{"Engagement Conversion", "Acquisition base (per 1M hours)", ratio(asm.AcquisitionPerMillionHours), "subscribers"},
		{"Engagement Conversion", "Retention base (per 1M hours)", ratio(asm.RetentionPerMillionHours), "subscriber-months"},
		{"Engagement Conversion", "Subscriber lifetime", ratio(asm.SubscriberLifetimeMonths), "months"},
		{"Windowing", "PVOD cannibalization factor", ratio(asm.PVODCannibalizationFactor), "fraction"},
		{"Windowing", "License cannibalization factor", ratio(asm.LicenseCannibalizationFactor), "fraction"},
		{"Windowing", "Short window threshold", strconv.Itoa(asm.ShortWindowDays), "days"},
		{"Windowing", "Standard window threshold", strconv.Itoa(asm.StandardWindowDays), "days"},
		{"Financial", "Discount rate", ratio(asm.DiscountRate), "annual"},
		{"Financial", "Periods per year", ratio(asm.PeriodsPerYear), "periods"},
		{"Theatrical", "Low budget multiple", ratio(asm.TheatricalMultiple(models.BudgetTierLow)), "multiple of budget"},
		{"Theatrical", "Medium budget multiple", ratio(asm.TheatricalMultiple(models.BudgetTierMedium)), "multiple of budget"},
		{"Theatrical", "High budget multiple", ratio(asm.TheatricalMultiple(models.BudgetTierHigh)), "multiple of budget"},
		{"Theatrical", "PVOD share of theatrical", ratio(asm.PVODShareOfTheatrical), "fraction"},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
