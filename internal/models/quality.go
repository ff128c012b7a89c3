package models

// QualityScores holds the per-title reception scores.
// CriticScore, AudienceScore and BuzzScore are 0-100; IMDBRating is 0-10.
// Scores are never partially missing: the loader substitutes configured
// defaults and records which fields were defaulted.
type QualityScores struct {
	TitleID       string  `json:"title_id" validate:"required"`
	CriticScore   float64 `json:"critic_score" validate:"gte=0,lte=100"`
	AudienceScore float64 `json:"audience_score" validate:"gte=0,lte=100"`
	IMDBRating    float64 `json:"imdb_rating" validate:"gte=0,lte=10"`
	BuzzScore     float64 `json:"buzz_score" validate:"gte=0,lte=100"`

	// DefaultedFields lists score fields that were absent from the source
	// row and filled from assumptions defaults.
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
}

// AverageReception is the mean of critic and audience scores, the blend
// used by theatrical, PVOD and retention models.
func (q QualityScores) AverageReception() float64 {
	return (q.CriticScore + q.AudienceScore) / 2
}
