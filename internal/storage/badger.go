// Package storage caches computed scorecards in BadgerDB so repeated runs
// over an unchanged catalog skip recomputation. Cache entries are keyed by
// title ID plus the assumptions fingerprint; changing any assumption
// invalidates every cached card.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/magicslate/slate/internal/common"
	"github.com/magicslate/slate/internal/models"
)

// BadgerDB manages the Badger database connection
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
}

// NewBadgerDB opens the cache database, optionally wiping it first
func NewBadgerDB(logger arbor.ILogger, config *common.CacheConfig) (*BadgerDB, error) {
	if config.ResetOnStartup {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Debug().Str("path", config.Path).Msg("Deleting existing cache (reset_on_startup=true)")
			if err := os.RemoveAll(config.Path); err != nil {
				logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to delete cache directory")
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = config.Path
	options.ValueDir = config.Path
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", config.Path).Msg("Scorecard cache initialized")

	return &BadgerDB{store: store, logger: logger}, nil
}

// Close closes the database connection
func (b *BadgerDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

// cachedScorecard is the stored record. Fingerprint is kept on the record
// so stale entries can be swept without decoding keys.
type cachedScorecard struct {
	Key         string `badgerhold:"key"`
	TitleID     string
	Fingerprint string
	Scorecard   models.TitleScorecard
	StoredAt    time.Time
}

// ScorecardCache reads and writes scorecards keyed by title and
// assumptions fingerprint
type ScorecardCache struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewScorecardCache creates a cache over an open connection
func NewScorecardCache(db *BadgerDB, logger arbor.ILogger) *ScorecardCache {
	return &ScorecardCache{db: db, logger: logger}
}

func cacheKey(titleID, fingerprint string) string {
	return titleID + "@" + fingerprint
}

// Get returns the cached scorecard for a title under the given
// assumptions fingerprint, or ErrScorecardNotFound
func (c *ScorecardCache) Get(ctx context.Context, titleID, fingerprint string) (models.TitleScorecard, error) {
	var record cachedScorecard
	err := c.db.store.Get(cacheKey(titleID, fingerprint), &record)
	if err == badgerhold.ErrNotFound {
		return models.TitleScorecard{}, models.ErrScorecardNotFound
	}
	if err != nil {
		return models.TitleScorecard{}, fmt.Errorf("cache get %s: %w", titleID, err)
	}
	return record.Scorecard, nil
}

// Put stores a scorecard under the given assumptions fingerprint
func (c *ScorecardCache) Put(ctx context.Context, fingerprint string, card models.TitleScorecard) error {
	record := cachedScorecard{
		Key:         cacheKey(card.TitleID, fingerprint),
		TitleID:     card.TitleID,
		Fingerprint: fingerprint,
		Scorecard:   card,
		StoredAt:    time.Now().UTC(),
	}
	if err := c.db.store.Upsert(record.Key, &record); err != nil {
		return fmt.Errorf("cache put %s: %w", card.TitleID, err)
	}
	return nil
}

// GetAll returns every cached scorecard for a fingerprint, keyed by title
func (c *ScorecardCache) GetAll(ctx context.Context, fingerprint string) (map[string]models.TitleScorecard, error) {
	var records []cachedScorecard
	if err := c.db.store.Find(&records, badgerhold.Where("Fingerprint").Eq(fingerprint)); err != nil {
		return nil, fmt.Errorf("cache scan: %w", err)
	}

	out := make(map[string]models.TitleScorecard, len(records))
	for _, r := range records {
		out[r.TitleID] = r.Scorecard
	}
	return out, nil
}

// Sweep removes entries stored under any other fingerprint
func (c *ScorecardCache) Sweep(ctx context.Context, keepFingerprint string) error {
	err := c.db.store.DeleteMatching(&cachedScorecard{}, badgerhold.Where("Fingerprint").Ne(keepFingerprint))
	if err != nil {
		return fmt.Errorf("cache sweep: %w", err)
	}
	return nil
}
