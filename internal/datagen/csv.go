package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/magicslate/slate/internal/models"
)

// SaveCSV writes the catalog in the layout the loaders read back:
// budgets in millions, dates as YYYY-MM-DD, streaming date split across
// per-platform columns.
func (c *Catalog) SaveCSV(titlesPath, engagementPath, qualityPath string) error {
	if err := c.saveTitles(titlesPath); err != nil {
		return err
	}
	if err := c.saveEngagement(engagementPath); err != nil {
		return err
	}
	return c.saveQuality(qualityPath)
}

func (c *Catalog) saveTitles(path string) error {
	w, closeFn, err := openWriter(path)
	if err != nil {
		return err
	}
	defer closeFn()

	header := []string{
		"title_id", "title_name", "brand", "platform_primary", "genre", "content_type",
		"season_number", "episode_count",
		"release_theatrical_date", "release_pvod_date", "release_disney_plus_date", "release_hulu_date",
		"production_budget_tier", "estimated_production_budget", "estimated_marketing_spend",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range c.Titles {
		disney, hulu := "", ""
		if t.ReleaseStreaming != nil {
			if t.PlatformPrimary == models.PlatformHulu {
				hulu = formatDate(t.ReleaseStreaming)
			} else {
				disney = formatDate(t.ReleaseStreaming)
			}
		}

		row := []string{
			t.ID, t.Name, t.Brand, string(t.PlatformPrimary), t.Genre, string(t.ContentType),
			formatInt(t.SeasonNumber), formatInt(t.EpisodeCount),
			formatDate(t.ReleaseTheatrical), formatDate(t.ReleasePVOD), disney, hulu,
			string(t.BudgetTier),
			strconv.FormatFloat(t.ProductionBudget/1_000_000, 'f', 2, 64),
			strconv.FormatFloat(t.MarketingSpend/1_000_000, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (c *Catalog) saveEngagement(path string) error {
	w, closeFn, err := openWriter(path)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := w.Write([]string{"title_id", "week_number", "proxy_hours_viewed"}); err != nil {
		return err
	}

	// Titles slice order keeps the file deterministic
	for _, t := range c.Titles {
		for _, p := range c.Engagement[t.ID] {
			row := []string{p.TitleID, strconv.Itoa(p.Week), strconv.FormatFloat(p.HoursViewed, 'f', 0, 64)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func (c *Catalog) saveQuality(path string) error {
	w, closeFn, err := openWriter(path)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := w.Write([]string{"title_id", "critic_score", "audience_score", "imdb_rating", "buzz_score"}); err != nil {
		return err
	}

	for _, t := range c.Titles {
		q := c.Quality[t.ID]
		row := []string{
			q.TitleID,
			strconv.FormatFloat(q.CriticScore, 'f', 1, 64),
			strconv.FormatFloat(q.AudienceScore, 'f', 1, 64),
			strconv.FormatFloat(q.IMDBRating, 'f', 1, 64),
			strconv.FormatFloat(q.BuzzScore, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func openWriter(path string) (*csv.Writer, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return csv.NewWriter(f), func() { f.Close() }, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
