// Package loaders reads the catalog CSV files into model structs.
// Budgets arrive in millions of dollars and are converted to USD here so
// the rest of the system works in a single unit.
package loaders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

var validate = validator.New()

// Dataset bundles the three loaded inputs keyed for scorecard assembly
type Dataset struct {
	Titles     []models.Title
	Engagement map[string]models.EngagementSeries
	Quality    map[string]models.QualityScores
}

// LoadAll reads titles, engagement and quality from the given paths.
// Quality uses the assumptions defaults for missing scores.
func LoadAll(titlesPath, engagementPath, qualityPath string, asm *assumptions.Assumptions) (*Dataset, error) {
	titles, err := LoadTitles(titlesPath)
	if err != nil {
		return nil, fmt.Errorf("loading titles: %w", err)
	}
	engagement, err := LoadEngagement(engagementPath)
	if err != nil {
		return nil, fmt.Errorf("loading engagement: %w", err)
	}
	quality, err := LoadQuality(qualityPath, asm)
	if err != nil {
		return nil, fmt.Errorf("loading quality: %w", err)
	}
	return &Dataset{Titles: titles, Engagement: engagement, Quality: quality}, nil
}

// LoadTitles reads the title catalog. Rows without an identity are
// rejected immediately.
func LoadTitles(path string) ([]models.Title, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	titles := make([]models.Title, 0, len(rows))
	for i, row := range rows {
		title, err := parseTitle(header, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func parseTitle(header map[string]int, row []string) (models.Title, error) {
	get := func(col string) string { return field(header, row, col) }

	title := models.Title{
		ID:              get("title_id"),
		Name:            get("title_name"),
		Brand:           get("brand"),
		Genre:           get("genre"),
		PlatformPrimary: models.Platform(get("platform_primary")),
		ContentType:     models.ContentType(get("content_type")),
		BudgetTier:      models.BudgetTier(get("production_budget_tier")),
	}

	if title.ID == "" || title.Name == "" {
		return models.Title{}, models.NewValidationError("title", "title_id", "row is missing mandatory identity")
	}

	// Budgets are recorded in millions
	budget, err := parseFloat(get("estimated_production_budget"))
	if err != nil {
		return models.Title{}, models.NewValidationError("title", "estimated_production_budget", err.Error())
	}
	marketing, err := parseFloat(get("estimated_marketing_spend"))
	if err != nil {
		return models.Title{}, models.NewValidationError("title", "estimated_marketing_spend", err.Error())
	}
	title.ProductionBudget = budget * 1_000_000
	title.MarketingSpend = marketing * 1_000_000

	if title.BudgetTier == "" {
		title.BudgetTier = models.TierForBudget(title.ProductionBudget)
	}

	title.ReleaseTheatrical = parseDate(get("release_theatrical_date"))
	title.ReleasePVOD = parseDate(get("release_pvod_date"))

	// The streaming date is whichever platform column is populated,
	// preferring the primary platform
	disney := parseDate(get("release_disney_plus_date"))
	hulu := parseDate(get("release_hulu_date"))
	switch {
	case title.PlatformPrimary == models.PlatformHulu && hulu != nil:
		title.ReleaseStreaming = hulu
	case disney != nil:
		title.ReleaseStreaming = disney
	default:
		title.ReleaseStreaming = hulu
	}

	if v := get("season_number"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSuffix(v, ".0")); err == nil {
			title.SeasonNumber = n
		}
	}
	if v := get("episode_count"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSuffix(v, ".0")); err == nil {
			title.EpisodeCount = n
		}
	}
	if v := get("has_third_party_license"); v != "" {
		title.HasThirdPartyLicense = strings.EqualFold(v, "true") || v == "1"
	}

	if err := validate.Struct(title); err != nil {
		return models.Title{}, models.NewValidationError("title", title.ID, err.Error())
	}
	return title, nil
}

// LoadEngagement reads the weekly viewing curves grouped per title
func LoadEngagement(path string) (map[string]models.EngagementSeries, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	series := make(map[string]models.EngagementSeries)
	for i, row := range rows {
		titleID := field(header, row, "title_id")
		if titleID == "" {
			return nil, models.NewValidationError("engagement", "title_id", fmt.Sprintf("row %d is missing mandatory identity", i+2))
		}

		week, err := strconv.Atoi(field(header, row, "week_number"))
		if err != nil {
			return nil, models.NewValidationError("engagement", "week_number", fmt.Sprintf("row %d: %v", i+2, err))
		}
		hours, err := parseFloat(field(header, row, "proxy_hours_viewed"))
		if err != nil {
			return nil, models.NewValidationError("engagement", "proxy_hours_viewed", fmt.Sprintf("row %d: %v", i+2, err))
		}

		series[titleID] = append(series[titleID], models.EngagementPoint{
			TitleID:     titleID,
			Week:        week,
			HoursViewed: hours,
		})
	}
	return series, nil
}

// LoadQuality reads reception scores. Missing fields fall back to the
// assumptions defaults and are recorded on the row.
func LoadQuality(path string, asm *assumptions.Assumptions) (map[string]models.QualityScores, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	quality := make(map[string]models.QualityScores, len(rows))
	for i, row := range rows {
		titleID := field(header, row, "title_id")
		if titleID == "" {
			return nil, models.NewValidationError("quality", "title_id", fmt.Sprintf("row %d is missing mandatory identity", i+2))
		}

		q := models.QualityScores{TitleID: titleID}
		q.CriticScore = defaultedScore(header, row, "critic_score", asm.DefaultCriticScore, &q)
		q.AudienceScore = defaultedScore(header, row, "audience_score", asm.DefaultAudienceScore, &q)
		q.IMDBRating = defaultedScore(header, row, "imdb_rating", asm.DefaultIMDBRating, &q)
		q.BuzzScore = defaultedScore(header, row, "buzz_score", asm.DefaultBuzzScore, &q)

		if err := validate.Struct(q); err != nil {
			return nil, models.NewValidationError("quality", titleID, err.Error())
		}
		quality[titleID] = q
	}
	return quality, nil
}

// DefaultQuality builds an all-defaulted score row for titles absent from
// the quality file
func DefaultQuality(titleID string, asm *assumptions.Assumptions) models.QualityScores {
	return models.QualityScores{
		TitleID:         titleID,
		CriticScore:     asm.DefaultCriticScore,
		AudienceScore:   asm.DefaultAudienceScore,
		IMDBRating:      asm.DefaultIMDBRating,
		BuzzScore:       asm.DefaultBuzzScore,
		DefaultedFields: []string{"critic_score", "audience_score", "imdb_rating", "buzz_score"},
	}
}

func defaultedScore(header map[string]int, row []string, col string, fallback float64, q *models.QualityScores) float64 {
	raw := field(header, row, col)
	if raw == "" {
		q.DefaultedFields = append(q.DefaultedFields, col)
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.DefaultedFields = append(q.DefaultedFields, col)
		return fallback
	}
	return v
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	header := make(map[string]int, len(headerRow))
	for i, col := range headerRow {
		header[strings.TrimSpace(col)] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(header map[string]int, row []string, col string) string {
	i, ok := header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
