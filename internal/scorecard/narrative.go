package scorecard

import (
	"fmt"
	"strings"

	"github.com/magicslate/slate/internal/models"
)

// Narrative renders a deterministic plain-language summary of a scorecard.
// The same scorecard always produces the same text.
func Narrative(card models.TitleScorecard) string {
	parts := []string{
		classificationComment(card),
		engagementComment(card.Engagement),
		valueComment(card),
	}
	return strings.Join(parts, " ")
}

func classificationComment(card models.TitleScorecard) string {
	switch card.Classification {
	case models.ClassTentpole:
		return fmt.Sprintf("%s is a tentpole: a major investment delivering franchise-scale value.", card.TitleName)
	case models.ClassWorkhorse:
		return fmt.Sprintf("%s is a workhorse: solid mid-scale returns on meaningful spend.", card.TitleName)
	case models.ClassNicheGem:
		return fmt.Sprintf("%s is a niche gem: outsized returns on a modest budget.", card.TitleName)
	case models.ClassAcceptable:
		return fmt.Sprintf("%s earns an acceptable return.", card.TitleName)
	case models.ClassMarginal:
		return fmt.Sprintf("%s is marginal: returns barely clear cost.", card.TitleName)
	case models.ClassUnderperformer:
		return fmt.Sprintf("%s is an underperformer: estimated value does not recover its cost.", card.TitleName)
	default:
		return fmt.Sprintf("%s has no classification.", card.TitleName)
	}
}

func engagementComment(e models.EngagementSummary) string {
	if e.TotalHours <= 0 {
		return "No viewing activity was observed."
	}

	shape := ""
	switch {
	case e.DecayRate >= 0.5:
		shape = "Viewing was front-loaded with a steep post-peak decline."
	case e.DecayRate >= 0.2:
		shape = "Viewing declined at a moderate pace after its peak."
	default:
		shape = "Viewing held up well after its peak."
	}

	tail := ""
	if e.LongTailShare >= 0.25 {
		tail = " A strong long tail suggests durable catalog value."
	}

	return fmt.Sprintf("Peak viewing of %.1fM hours came in week %d. %s%s", e.PeakHours/1e6, e.PeakWeek, shape, tail)
}

func valueComment(card models.TitleScorecard) string {
	roiPct := card.ROI * 100
	comment := fmt.Sprintf("Estimated value of $%.0fM against $%.0fM total cost yields %.0f%% ROI.",
		card.Value.TotalValue/1e6, card.TotalCost/1e6, roiPct)

	if card.Value.TheatricalValue > 0 && card.Value.TheatricalValue > card.Value.StreamingValue {
		comment += " Theatrical is the dominant value channel."
	}
	if card.Engagement.Degraded {
		comment += " Curve metrics use fallback estimates due to sparse data."
	}

	return comment
}
