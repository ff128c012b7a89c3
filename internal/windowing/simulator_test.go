package windowing

import (
	"math"
	"strings"
	"testing"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/models"
)

func filmTitle(id string) models.Title {
	return models.Title{
		ID:               id,
		Name:             "Film " + id,
		Brand:            "Marvel",
		Genre:            "Action",
		PlatformPrimary:  models.PlatformDisneyPlus,
		ContentType:      models.ContentTypeFilm,
		BudgetTier:       models.BudgetTierHigh,
		ProductionBudget: 150_000_000,
		MarketingSpend:   75_000_000,
	}
}

func filmSeries(id string) models.EngagementSeries {
	hours := []float64{5e6, 12e6, 9e6, 6e6, 4e6, 3e6, 2e6, 1e6}
	series := make(models.EngagementSeries, 0, len(hours))
	for week, h := range hours {
		series = append(series, models.EngagementPoint{TitleID: id, Week: week + 1, HoursViewed: h})
	}
	return series
}

func filmQuality(id string) models.QualityScores {
	return models.QualityScores{TitleID: id, CriticScore: 78, AudienceScore: 84, IMDBRating: 7.6, BuzzScore: 72}
}

func traditionalScenario(titleID string) models.WindowingScenario {
	return models.WindowingScenario{
		Name:    "Traditional Theatrical",
		TitleID: titleID,
		Windows: []models.Window{
			{Type: models.WindowTheatrical, StartOffsetDays: 0, DurationDays: 90},
			{Type: models.WindowPVOD, StartOffsetDays: 90, DurationDays: 45},
			{Type: models.WindowStreaming, StartOffsetDays: 90},
		},
	}
}

func TestSimulate_RejectsEmptyScenario(t *testing.T) {
	s := NewSimulator(assumptions.Default())

	_, err := s.Simulate(filmTitle("f-1"), filmSeries("f-1"), filmQuality("f-1"), models.WindowingScenario{Name: "empty", TitleID: "f-1"})
	if err == nil {
		t.Fatal("expected error for scenario without windows")
	}
	if !models.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestSimulate_RejectsMismatchedTitle(t *testing.T) {
	s := NewSimulator(assumptions.Default())

	_, err := s.Simulate(filmTitle("f-1"), filmSeries("f-1"), filmQuality("f-1"), traditionalScenario("other-title"))
	if err == nil || !models.IsValidationError(err) {
		t.Fatalf("expected ValidationError for mismatched title, got %v", err)
	}
}

func TestSimulate_NPVDecreasesWithDiscountRate(t *testing.T) {
	low := assumptions.Default()
	low.DiscountRate = 0.05
	high := assumptions.Default()
	high.DiscountRate = 0.15

	title := filmTitle("f-2")
	scenario := traditionalScenario("f-2")

	lowResult, err := NewSimulator(low).Simulate(title, filmSeries("f-2"), filmQuality("f-2"), scenario)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	highResult, err := NewSimulator(high).Simulate(title, filmSeries("f-2"), filmQuality("f-2"), scenario)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if lowResult.NPV <= highResult.NPV {
		t.Errorf("NPV at 5%% (%f) should exceed NPV at 15%% (%f)", lowResult.NPV, highResult.NPV)
	}
	if math.Abs(lowResult.GrossValue-highResult.GrossValue) > 1e-6 {
		t.Errorf("gross value should not depend on discount rate: %f vs %f", lowResult.GrossValue, highResult.GrossValue)
	}
	if lowResult.NPV >= lowResult.GrossValue {
		t.Errorf("NPV %f should sit below gross %f for deferred cashflows", lowResult.NPV, lowResult.GrossValue)
	}
}

func TestSimulate_Week0LumpSumUndiscounted(t *testing.T) {
	s := NewSimulator(assumptions.Default())

	// Series title with zero viewing: the licensing fee is the only cashflow
	title := filmTitle("f-3")
	title.ContentType = models.ContentTypeSeries

	scenario := models.WindowingScenario{
		Name:    "Immediate License",
		TitleID: "f-3",
		Windows: []models.Window{
			{Type: models.WindowLicensing, StartOffsetDays: 0, DurationDays: 365, LicenseFee: 30_000_000},
		},
	}

	result, err := s.Simulate(title, nil, filmQuality("f-3"), scenario)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if math.Abs(result.GrossValue-30_000_000) > 1e-6 {
		t.Errorf("gross = %f, want the license fee", result.GrossValue)
	}
	if math.Abs(result.NPV-result.GrossValue) > 1e-6 {
		t.Errorf("week-0 cashflow should be undiscounted: NPV %f vs gross %f", result.NPV, result.GrossValue)
	}
}

func TestSimulate_ShortWindowCannibalizesPVOD(t *testing.T) {
	s := NewSimulator(assumptions.Default())
	title := filmTitle("f-4")
	series := filmSeries("f-4")
	quality := filmQuality("f-4")

	short := models.WindowingScenario{
		Name:    "Short Window",
		TitleID: "f-4",
		Windows: []models.Window{
			{Type: models.WindowTheatrical, StartOffsetDays: 0, DurationDays: 45},
			{Type: models.WindowPVOD, StartOffsetDays: 45, DurationDays: 30},
			{Type: models.WindowStreaming, StartOffsetDays: 45},
		},
	}

	shortResult, err := s.Simulate(title, series, quality, short)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	traditionalResult, err := s.Simulate(title, series, quality, traditionalScenario("f-4"))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if pvod := findWindow(shortResult, models.WindowPVOD); pvod == nil || !pvod.Cannibalized {
		t.Error("45-day streaming offset should cannibalize PVOD")
	}
	if pvod := findWindow(traditionalResult, models.WindowPVOD); pvod == nil || pvod.Cannibalized {
		t.Error("90-day streaming offset should not flag PVOD as cannibalized")
	}

	shortPVOD := findWindow(shortResult, models.WindowPVOD)
	traditionalPVOD := findWindow(traditionalResult, models.WindowPVOD)
	if shortPVOD.GrossValue >= traditionalPVOD.GrossValue {
		t.Errorf("cannibalized PVOD %f should earn less than traditional %f", shortPVOD.GrossValue, traditionalPVOD.GrossValue)
	}
}

func TestSimulate_LicensingReducesStreamingAndAddsFee(t *testing.T) {
	s := NewSimulator(assumptions.Default())
	title := filmTitle("f-5")
	title.ContentType = models.ContentTypeSeries
	series := filmSeries("f-5")
	quality := filmQuality("f-5")

	exclusive := models.WindowingScenario{
		Name:    "Exclusive Streaming",
		TitleID: "f-5",
		Windows: []models.Window{{Type: models.WindowStreaming, StartOffsetDays: 0}},
	}
	licensed := models.WindowingScenario{
		Name:    "License After 1 Year",
		TitleID: "f-5",
		Windows: []models.Window{
			{Type: models.WindowStreaming, StartOffsetDays: 0},
			{Type: models.WindowLicensing, StartOffsetDays: 365, DurationDays: 365, LicenseFee: 30_000_000},
		},
	}

	exclusiveResult, err := s.Simulate(title, series, quality, exclusive)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	licensedResult, err := s.Simulate(title, series, quality, licensed)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	exclusiveStreaming := findWindow(exclusiveResult, models.WindowStreaming)
	licensedStreaming := findWindow(licensedResult, models.WindowStreaming)

	if !licensedStreaming.Cannibalized {
		t.Error("streaming window should be flagged cannibalized under a licensing deal")
	}
	if licensedStreaming.GrossValue >= exclusiveStreaming.GrossValue {
		t.Errorf("licensed streaming %f should earn less than exclusive %f", licensedStreaming.GrossValue, exclusiveStreaming.GrossValue)
	}
	if lic := findWindow(licensedResult, models.WindowLicensing); lic == nil || lic.GrossValue != 30_000_000 {
		t.Error("licensing fee missing from contributions")
	}
}

func TestSimulateAll_OrderedByNPV(t *testing.T) {
	s := NewSimulator(assumptions.Default())
	title := filmTitle("f-6")

	results, err := s.SimulateAll(title, filmSeries("f-6"), filmQuality("f-6"), DefaultScenarios("f-6", models.ContentTypeFilm))
	if err != nil {
		t.Fatalf("SimulateAll failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 film scenarios, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].NPV < results[i].NPV {
			t.Errorf("results not sorted by NPV: %f before %f", results[i-1].NPV, results[i].NPV)
		}
	}
	for _, r := range results {
		if r.ID == "" {
			t.Error("simulation result missing ID")
		}
		if r.DiscountRate != 0.10 {
			t.Errorf("discount rate = %f, want 0.10", r.DiscountRate)
		}
	}
}

func TestSimulateAll_AnnotatesResults(t *testing.T) {
	s := NewSimulator(assumptions.Default())
	title := filmTitle("f-8")

	results, err := s.SimulateAll(title, filmSeries("f-8"), filmQuality("f-8"), DefaultScenarios("f-8", models.ContentTypeFilm))
	if err != nil {
		t.Fatalf("SimulateAll failed: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("need at least 2 results, got %d", len(results))
	}

	best := results[0]
	if !strings.Contains(best.Narrative, best.ScenarioName) || !strings.Contains(best.Narrative, "leads") {
		t.Errorf("leader narrative = %q, want it to name %s as leading", best.Narrative, best.ScenarioName)
	}
	leaderTagged := false
	for _, tag := range best.Tags {
		if tag == "best-npv" {
			leaderTagged = true
		}
	}
	if !leaderTagged {
		t.Errorf("leader tags = %v, want best-npv marker", best.Tags)
	}

	for _, r := range results[1:] {
		if r.Narrative == "" {
			t.Errorf("result %s has no narrative", r.ScenarioName)
			continue
		}
		if !strings.Contains(r.Narrative, best.ScenarioName) {
			t.Errorf("narrative %q should reference the leading scenario %s", r.Narrative, best.ScenarioName)
		}
		for _, tag := range r.Tags {
			if tag == "best-npv" {
				t.Errorf("trailing result %s tagged best-npv", r.ScenarioName)
			}
		}
		if len(r.Tags) == 0 {
			t.Errorf("result %s has no tags", r.ScenarioName)
		}
	}
}

func TestDefaultScenarios_PerContentType(t *testing.T) {
	film := DefaultScenarios("t", models.ContentTypeFilm)
	series := DefaultScenarios("t", models.ContentTypeSeries)

	if len(film) != 4 {
		t.Errorf("film scenarios = %d, want 4", len(film))
	}
	if len(series) != 2 {
		t.Errorf("series scenarios = %d, want 2", len(series))
	}
	for _, sc := range series {
		if sc.Window(models.WindowTheatrical) != nil {
			t.Errorf("series scenario %s should not have a theatrical window", sc.Name)
		}
	}
}

func TestCompareScenarios_Narrative(t *testing.T) {
	s := NewSimulator(assumptions.Default())
	title := filmTitle("f-7")

	results, err := s.SimulateAll(title, filmSeries("f-7"), filmQuality("f-7"), DefaultScenarios("f-7", models.ContentTypeFilm))
	if err != nil {
		t.Fatalf("SimulateAll failed: %v", err)
	}

	narrative := CompareScenarios(results)
	if !strings.Contains(narrative, results[0].ScenarioName) {
		t.Errorf("narrative should name the best scenario: %q", narrative)
	}
	if CompareScenarios(nil) != "No scenarios to compare." {
		t.Error("empty comparison narrative wrong")
	}
}

func findWindow(r models.SimulationResult, t models.WindowType) *models.WindowContribution {
	for i := range r.Windows {
		if r.Windows[i].Type == t {
			return &r.Windows[i]
		}
	}
	return nil
}
