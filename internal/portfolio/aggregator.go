// Package portfolio aggregates scorecards across the catalog: filtered
// views, grouped value/cost/ROI rollups, distribution stats and
// concentration metrics. Nothing here mutates the underlying scorecards.
package portfolio

import (
	"sort"
	"time"

	"github.com/magicslate/slate/internal/models"
)

// Dimension names a grouping axis for aggregation
type Dimension string

const (
	DimensionBrand          Dimension = "brand"
	DimensionGenre          Dimension = "genre"
	DimensionPlatform       Dimension = "platform"
	DimensionContentType    Dimension = "content_type"
	DimensionClassification Dimension = "classification"
)

// Filter selects a subset of scorecards. Zero-value fields match everything.
type Filter struct {
	Brands          []string
	Genres          []string
	Platforms       []models.Platform
	ContentTypes    []models.ContentType
	Classifications []models.Classification

	// Streaming release date range, inclusive on both ends. Scorecards
	// without a streaming date never match a bounded range.
	ReleasedAfter  *time.Time
	ReleasedBefore *time.Time
}

// Matches reports whether a scorecard passes every set criterion
func (f Filter) Matches(card models.TitleScorecard) bool {
	if len(f.Brands) > 0 && !containsString(f.Brands, card.Brand) {
		return false
	}
	if len(f.Genres) > 0 && !containsString(f.Genres, card.Genre) {
		return false
	}
	if len(f.Platforms) > 0 && !containsPlatform(f.Platforms, card.PlatformPrimary) {
		return false
	}
	if len(f.ContentTypes) > 0 && !containsContentType(f.ContentTypes, card.ContentType) {
		return false
	}
	if len(f.Classifications) > 0 && !containsClassification(f.Classifications, card.Classification) {
		return false
	}
	if f.ReleasedAfter != nil || f.ReleasedBefore != nil {
		if card.ReleaseStreaming == nil {
			return false
		}
		if f.ReleasedAfter != nil && card.ReleaseStreaming.Before(*f.ReleasedAfter) {
			return false
		}
		if f.ReleasedBefore != nil && card.ReleaseStreaming.After(*f.ReleasedBefore) {
			return false
		}
	}
	return true
}

// Apply returns a new slice of scorecards passing the filter.
// The input slice is never modified.
func Apply(cards []models.TitleScorecard, f Filter) []models.TitleScorecard {
	out := make([]models.TitleScorecard, 0, len(cards))
	for _, card := range cards {
		if f.Matches(card) {
			out = append(out, card)
		}
	}
	return out
}

// GroupAggregate is the rollup for one group along a dimension
type GroupAggregate struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
	TotalCost  float64 `json:"total_cost"`
	TotalHours float64 `json:"total_hours_viewed"`
	MeanROI    float64 `json:"mean_roi"`

	// ValueShare is this group's fraction of the partition's total value
	ValueShare float64 `json:"value_share"`
}

// GroupBy partitions scorecards along a dimension and rolls up each group.
// Groups are ordered by total value descending, key ascending on ties.
func GroupBy(cards []models.TitleScorecard, dim Dimension) []GroupAggregate {
	buckets := make(map[string][]models.TitleScorecard)
	for _, card := range cards {
		key := groupKey(card, dim)
		buckets[key] = append(buckets[key], card)
	}

	portfolioValue := 0.0
	for _, card := range cards {
		portfolioValue += card.Value.TotalValue
	}

	groups := make([]GroupAggregate, 0, len(buckets))
	for key, members := range buckets {
		g := GroupAggregate{Key: key, Count: len(members)}
		roiSum := 0.0
		for _, card := range members {
			g.TotalValue += card.Value.TotalValue
			g.TotalCost += card.TotalCost
			g.TotalHours += card.Engagement.TotalHours
			roiSum += card.ROI
		}
		g.MeanROI = roiSum / float64(len(members))
		if portfolioValue > 0 {
			g.ValueShare = g.TotalValue / portfolioValue
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalValue != groups[j].TotalValue {
			return groups[i].TotalValue > groups[j].TotalValue
		}
		return groups[i].Key < groups[j].Key
	})

	return groups
}

func groupKey(card models.TitleScorecard, dim Dimension) string {
	switch dim {
	case DimensionBrand:
		return card.Brand
	case DimensionGenre:
		return card.Genre
	case DimensionPlatform:
		return string(card.PlatformPrimary)
	case DimensionContentType:
		return string(card.ContentType)
	case DimensionClassification:
		return string(card.Classification)
	default:
		return ""
	}
}

// Summary is the portfolio-level rollup
type Summary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
	TotalCost  float64 `json:"total_cost"`
	TotalHours float64 `json:"total_hours_viewed"`
	MeanROI    float64 `json:"mean_roi"`

	// ROIQuartiles holds Q1, median and Q3 of per-title ROI
	ROIQuartiles [3]float64 `json:"roi_quartiles"`

	ClassificationCounts map[models.Classification]int `json:"classification_counts"`
}

// Summarize rolls up a scorecard set. An empty set yields a zero summary
// with an empty distribution, not an error.
func Summarize(cards []models.TitleScorecard) Summary {
	s := Summary{ClassificationCounts: make(map[models.Classification]int)}
	if len(cards) == 0 {
		return s
	}

	rois := make([]float64, 0, len(cards))
	roiSum := 0.0
	for _, card := range cards {
		s.Count++
		s.TotalValue += card.Value.TotalValue
		s.TotalCost += card.TotalCost
		s.TotalHours += card.Engagement.TotalHours
		s.ClassificationCounts[card.Classification]++
		rois = append(rois, card.ROI)
		roiSum += card.ROI
	}
	s.MeanROI = roiSum / float64(len(cards))

	sort.Float64s(rois)
	s.ROIQuartiles = [3]float64{
		percentile(rois, 0.25),
		percentile(rois, 0.50),
		percentile(rois, 0.75),
	}

	return s
}

// percentile interpolates linearly between order statistics.
// The input must be sorted and non-empty.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lower := int(pos)
	frac := pos - float64(lower)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsPlatform(list []models.Platform, v models.Platform) bool {
	for _, p := range list {
		if p == v {
			return true
		}
	}
	return false
}

func containsContentType(list []models.ContentType, v models.ContentType) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}

func containsClassification(list []models.Classification, v models.Classification) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}
