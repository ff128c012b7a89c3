// Package greenlight forecasts unreleased title concepts by analogy to
// historical comparables and turns the result into a recommendation.
package greenlight

import (
	"sort"

	"github.com/magicslate/slate/internal/models"
)

// Similarity weights. Brand dominates, then content type, then genre and
// budget proximity, then platform, with a bonus when established IP meets
// a marquee brand.
const (
	weightBrand        = 5.0
	weightContentType  = 4.0
	weightGenre        = 3.0
	weightTierExact    = 3.0
	weightTierAdjacent = 1.0
	weightPlatform     = 2.0
	weightFranchise    = 2.0

	maxRawSimilarity = weightBrand + weightContentType + weightGenre + weightTierExact + weightPlatform + weightFranchise
)

// marqueeBrands carry franchise equity that transfers to sequels and
// spin-offs
var marqueeBrands = map[string]bool{
	"Marvel":    true,
	"Star Wars": true,
	"Pixar":     true,
}

// Similarity scores how well a historical scorecard matches a concept,
// normalized to [0,1].
func Similarity(concept models.NewTitleConcept, card models.TitleScorecard) float64 {
	raw := 0.0

	if card.Brand == concept.Brand {
		raw += weightBrand
	}
	if card.ContentType == concept.ContentType {
		raw += weightContentType
	}
	if card.Genre == concept.Genre {
		raw += weightGenre
	}

	switch models.TierDistance(card.BudgetTier, concept.BudgetTier()) {
	case 0:
		raw += weightTierExact
	case 1:
		raw += weightTierAdjacent
	}

	if card.PlatformPrimary == concept.PlatformPrimary {
		raw += weightPlatform
	}

	if concept.IPFamiliarity.Established() && marqueeBrands[card.Brand] {
		raw += weightFranchise
	}

	return raw / maxRawSimilarity
}

// FindComparables ranks the scorecard universe against a concept and
// returns the top k. Ties break by ROI descending, then title name
// ascending, so equal inputs always produce the same set in the same
// order. Fewer than k candidates returns them all.
func FindComparables(concept models.NewTitleConcept, cards []models.TitleScorecard, k int) models.ComparableSet {
	if k <= 0 || len(cards) == 0 {
		return models.ComparableSet{}
	}

	comps := make(models.ComparableSet, 0, len(cards))
	for _, card := range cards {
		comps = append(comps, models.Comparable{
			TitleID:        card.TitleID,
			TitleName:      card.TitleName,
			Brand:          card.Brand,
			Genre:          card.Genre,
			ContentType:    card.ContentType,
			Similarity:     Similarity(concept, card),
			TotalHours:     card.Engagement.TotalHours,
			TotalValue:     card.Value.TotalValue,
			ROI:            card.ROI,
			Classification: card.Classification,
		})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].Similarity != comps[j].Similarity {
			return comps[i].Similarity > comps[j].Similarity
		}
		if comps[i].ROI != comps[j].ROI {
			return comps[i].ROI > comps[j].ROI
		}
		return comps[i].TitleName < comps[j].TitleName
	})

	if k > len(comps) {
		k = len(comps)
	}
	return comps[:k]
}
