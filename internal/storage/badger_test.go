package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magicslate/slate/internal/common"
	"github.com/magicslate/slate/internal/models"
)

func openTestCache(t *testing.T) *ScorecardCache {
	t.Helper()

	db, err := NewBadgerDB(common.GetLogger(), &common.CacheConfig{
		Enabled: true,
		Path:    filepath.Join(t.TempDir(), "cache"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewScorecardCache(db, common.GetLogger())
}

func sampleCard(id string) models.TitleScorecard {
	return models.TitleScorecard{
		TitleID:        id,
		TitleName:      "Title " + id,
		Brand:          "Marvel",
		Classification: models.ClassWorkhorse,
		Value:          models.ValueBreakdown{TotalValue: 100e6},
		TotalCost:      50e6,
		ROI:            1.0,
	}
}

func TestCache_PutGet(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	card := sampleCard("t-1")
	require.NoError(t, cache.Put(ctx, "fp-1", card))

	got, err := cache.Get(ctx, "t-1", "fp-1")
	require.NoError(t, err)
	assert.Equal(t, card.TitleID, got.TitleID)
	assert.Equal(t, card.Value.TotalValue, got.Value.TotalValue)
	assert.Equal(t, card.Classification, got.Classification)
}

func TestCache_MissOnUnknownTitleOrFingerprint(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "fp-1", sampleCard("t-1")))

	_, err := cache.Get(ctx, "t-2", "fp-1")
	assert.ErrorIs(t, err, models.ErrScorecardNotFound)

	// Same title under different assumptions is a miss
	_, err = cache.Get(ctx, "t-1", "fp-2")
	assert.ErrorIs(t, err, models.ErrScorecardNotFound)
}

func TestCache_GetAllByFingerprint(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "fp-1", sampleCard("t-1")))
	require.NoError(t, cache.Put(ctx, "fp-1", sampleCard("t-2")))
	require.NoError(t, cache.Put(ctx, "fp-2", sampleCard("t-3")))

	cards, err := cache.GetAll(ctx, "fp-1")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Contains(t, cards, "t-1")
	assert.Contains(t, cards, "t-2")
}

func TestCache_SweepRemovesStaleFingerprints(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "fp-old", sampleCard("t-1")))
	require.NoError(t, cache.Put(ctx, "fp-new", sampleCard("t-2")))

	require.NoError(t, cache.Sweep(ctx, "fp-new"))

	_, err := cache.Get(ctx, "t-1", "fp-old")
	assert.ErrorIs(t, err, models.ErrScorecardNotFound)

	_, err = cache.Get(ctx, "t-2", "fp-new")
	assert.NoError(t, err)
}
