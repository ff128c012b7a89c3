package portfolio

import (
	"sort"

	"github.com/magicslate/slate/internal/models"
)

// HHI computes the Herfindahl-Hirschman Index over a partition's value
// shares. The result lies in (0,1]: 1.0 when a single group holds all
// value, 1/N for N equal groups. An empty or zero-value partition
// returns 0.
func HHI(groups []GroupAggregate) float64 {
	total := 0.0
	for _, g := range groups {
		total += g.TotalValue
	}
	if total <= 0 {
		return 0
	}

	hhi := 0.0
	for _, g := range groups {
		share := g.TotalValue / total
		hhi += share * share
	}
	return hhi
}

// TopNShare returns the fraction of total portfolio value held by the N
// most valuable titles. N larger than the set returns 1.0; an empty or
// zero-value set returns 0.
func TopNShare(cards []models.TitleScorecard, n int) float64 {
	if len(cards) == 0 || n <= 0 {
		return 0
	}

	values := make([]float64, 0, len(cards))
	total := 0.0
	for _, card := range cards {
		values = append(values, card.Value.TotalValue)
		total += card.Value.TotalValue
	}
	if total <= 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	if n > len(values) {
		n = len(values)
	}
	top := 0.0
	for _, v := range values[:n] {
		top += v
	}
	return top / total
}
