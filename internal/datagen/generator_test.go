package datagen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/loaders"
	"github.com/magicslate/slate/internal/models"
)

var refTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	first := NewGenerator(DefaultSeed, refTime).Generate(10)
	second := NewGenerator(DefaultSeed, refTime).Generate(10)

	require.Len(t, first.Titles, 10)
	assert.Equal(t, first.Titles, second.Titles)
	assert.Equal(t, first.Quality, second.Quality)
	assert.Equal(t, first.Engagement["T0001"], second.Engagement["T0001"])

	different := NewGenerator(DefaultSeed+1, refTime).Generate(10)
	assert.NotEqual(t, first.Titles, different.Titles)
}

func TestGenerate_BrandPlatformRules(t *testing.T) {
	catalog := NewGenerator(DefaultSeed, refTime).Generate(DefaultTitleCount)

	for _, title := range catalog.Titles {
		switch title.Brand {
		case "Marvel", "Star Wars", "Pixar", "Disney Animation":
			assert.Equal(t, models.PlatformDisneyPlus, title.PlatformPrimary, title.ID)
		case "FX":
			assert.Equal(t, models.PlatformHulu, title.PlatformPrimary, title.ID)
		}
		if title.Brand == "Pixar" {
			assert.Equal(t, "Animation", title.Genre, title.ID)
		}
		if title.ContentType == models.ContentTypeSeries {
			assert.Nil(t, title.ReleaseTheatrical, title.ID)
			assert.Positive(t, title.EpisodeCount, title.ID)
		}
	}
}

func TestGenerate_ValidRanges(t *testing.T) {
	catalog := NewGenerator(DefaultSeed, refTime).Generate(DefaultTitleCount)

	for _, title := range catalog.Titles {
		assert.Positive(t, title.ProductionBudget, title.ID)
		assert.Positive(t, title.MarketingSpend, title.ID)
		require.NotNil(t, title.ReleaseStreaming, title.ID)

		series := catalog.Engagement[title.ID]
		require.Len(t, series, models.EngagementHorizonWeeks, title.ID)
		for _, p := range series {
			assert.GreaterOrEqual(t, p.HoursViewed, 0.0, title.ID)
		}

		q := catalog.Quality[title.ID]
		assert.GreaterOrEqual(t, q.CriticScore, 20.0, title.ID)
		assert.LessOrEqual(t, q.CriticScore, 95.0, title.ID)
		assert.GreaterOrEqual(t, q.IMDBRating, 3.0, title.ID)
		assert.LessOrEqual(t, q.IMDBRating, 9.5, title.ID)
	}
}

func TestSaveCSV_RoundTripsThroughLoaders(t *testing.T) {
	dir := t.TempDir()
	titlesPath := filepath.Join(dir, "titles.csv")
	engagementPath := filepath.Join(dir, "engagement.csv")
	qualityPath := filepath.Join(dir, "quality.csv")

	catalog := NewGenerator(DefaultSeed, refTime).Generate(12)
	require.NoError(t, catalog.SaveCSV(titlesPath, engagementPath, qualityPath))

	ds, err := loaders.LoadAll(titlesPath, engagementPath, qualityPath, assumptions.Default())
	require.NoError(t, err)
	require.Len(t, ds.Titles, 12)

	for i, loaded := range ds.Titles {
		original := catalog.Titles[i]
		assert.Equal(t, original.ID, loaded.ID)
		assert.Equal(t, original.Brand, loaded.Brand)
		assert.Equal(t, original.BudgetTier, loaded.BudgetTier)
		assert.InDelta(t, original.ProductionBudget, loaded.ProductionBudget, 10_000)
		require.Len(t, ds.Engagement[loaded.ID], models.EngagementHorizonWeeks)
	}
}
