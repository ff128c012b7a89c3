package models

import "sort"

// EngagementHorizonWeeks is the fixed weekly horizon tracked per title
const EngagementHorizonWeeks = 24

// EngagementPoint is one weekly observation of viewing hours for a title
type EngagementPoint struct {
	TitleID     string  `json:"title_id" validate:"required"`
	Week        int     `json:"week_number" validate:"gte=0"`
	HoursViewed float64 `json:"proxy_hours_viewed" validate:"gte=0"`
}

// EngagementSeries is the ordered weekly viewing curve for a single title
type EngagementSeries []EngagementPoint

// Sorted returns a copy of the series ordered by week number
func (s EngagementSeries) Sorted() EngagementSeries {
	out := make(EngagementSeries, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

// TotalHours sums hours viewed across all weeks
func (s EngagementSeries) TotalHours() float64 {
	total := 0.0
	for _, p := range s {
		total += p.HoursViewed
	}
	return total
}
