package scorecard

import (
	"sort"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/magicslate/slate/internal/common"
	"github.com/magicslate/slate/internal/models"
)

// BatchInput bundles the three data sets for one title
type BatchInput struct {
	Title   models.Title
	Series  models.EngagementSeries
	Quality models.QualityScores
}

// BatchResult holds scorecards for every title that scored plus the
// per-title failures. A failed title never aborts the batch.
type BatchResult struct {
	Scorecards []models.TitleScorecard
	Failures   map[string]string // title ID -> reason
}

// ScoreBatch computes scorecards concurrently with bounded parallelism.
// Results are sorted by title ID so repeated runs produce identical output.
func (e *Engine) ScoreBatch(inputs []BatchInput, concurrency int, logger arbor.ILogger) BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, concurrency)
	)

	result := BatchResult{
		Scorecards: make([]models.TitleScorecard, 0, len(inputs)),
		Failures:   make(map[string]string),
	}

	for _, input := range inputs {
		wg.Add(1)
		sem <- struct{}{}

		in := input
		common.SafeGo(logger, "scorecard:"+in.Title.ID, func() {
			defer wg.Done()
			defer func() { <-sem }()

			card, err := e.Score(in.Title, in.Series, in.Quality)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures[in.Title.ID] = err.Error()
				if logger != nil {
					logger.Warn().Str("title_id", in.Title.ID).Err(err).Msg("Skipping title")
				}
				return
			}
			result.Scorecards = append(result.Scorecards, card)
		})
	}

	wg.Wait()

	sort.Slice(result.Scorecards, func(i, j int) bool {
		return result.Scorecards[i].TitleID < result.Scorecards[j].TitleID
	})

	return result
}
