// Package datagen produces a deterministic synthetic catalog: titles,
// weekly engagement curves and quality scores. The same seed always
// yields the same dataset.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/magicslate/slate/internal/models"
)

// DefaultSeed keeps repeated runs reproducible
const DefaultSeed = 42

// DefaultTitleCount is the standard catalog size
const DefaultTitleCount = 40

var (
	brands = []string{"Marvel", "Star Wars", "Pixar", "Disney Animation", "FX", "General Entertainment", "National Geographic"}
	genres = []string{"Animation", "Kids", "Drama", "Comedy", "Reality", "Docuseries", "Action", "Sci-Fi", "Fantasy"}

	namePrefixes = []string{"Star", "Kingdom", "Chronicles", "Tales", "Legend", "Mystery", "Secret", "Rise", "Fall",
		"Quest", "Journey", "Dreams", "Shadows", "Light", "Dark", "Beyond", "Lost", "Found"}
	nameSuffixes = []string{"Voyage", "Dreams", "Empire", "Realm", "Legends", "Heroes", "Warriors", "Guardians",
		"Chronicles", "Saga", "Adventures", "Mysteries", "Tales", "Stories", "Files", "Archives"}
	nameModifiers = []string{"Nova", "Prime", "Elite", "Ultimate", "Origins", "Reborn", "Awakening", "Rising",
		"Legacy", "Destiny", "Eternal", "Infinite", "Hidden", "Forbidden"}

	engagementBrandMultipliers = map[string]float64{
		"Marvel":                1.8,
		"Star Wars":             1.7,
		"Pixar":                 1.5,
		"Disney Animation":      1.3,
		"FX":                    1.1,
		"General Entertainment": 1.0,
		"National Geographic":   0.8,
	}
)

// Generator builds synthetic datasets from a seeded source
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator creates a generator. The reference time anchors release
// dates so tests can pin it.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Catalog is a complete synthetic dataset
type Catalog struct {
	Titles     []models.Title
	Engagement map[string]models.EngagementSeries
	Quality    map[string]models.QualityScores
}

// Generate builds n titles with matching engagement curves and quality rows
func (g *Generator) Generate(n int) *Catalog {
	catalog := &Catalog{
		Titles:     make([]models.Title, 0, n),
		Engagement: make(map[string]models.EngagementSeries, n),
		Quality:    make(map[string]models.QualityScores, n),
	}

	names := g.titleNames(n)
	for i := 0; i < n; i++ {
		title := g.title(fmt.Sprintf("T%04d", i+1), names[i])

		// Latent quality drives both the curve shape and the scores
		latent := 0.2 + (g.rng.Float64()+g.rng.Float64()+g.rng.Float64())/3*0.8

		catalog.Titles = append(catalog.Titles, title)
		catalog.Engagement[title.ID] = g.engagementCurve(title, latent)
		catalog.Quality[title.ID] = g.quality(title, latent)
	}
	return catalog
}

func (g *Generator) titleNames(n int) []string {
	used := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		var name string
		switch g.rng.Intn(3) {
		case 0:
			name = pick(g.rng, namePrefixes) + " " + pick(g.rng, nameSuffixes)
		case 1:
			name = pick(g.rng, namePrefixes) + ": " + pick(g.rng, nameModifiers)
		default:
			name = pick(g.rng, namePrefixes) + " " + pick(g.rng, nameSuffixes) + ": " + pick(g.rng, nameModifiers)
		}
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (g *Generator) title(id, name string) models.Title {
	brand := pick(g.rng, brands)

	contentType := models.ContentTypeSeries
	if g.rng.Float64() < 0.3 {
		contentType = models.ContentTypeFilm
	}

	var platform models.Platform
	switch brand {
	case "Marvel", "Star Wars", "Pixar", "Disney Animation":
		platform = models.PlatformDisneyPlus
	case "FX":
		platform = models.PlatformHulu
	default:
		if g.rng.Intn(2) == 0 {
			platform = models.PlatformDisneyPlus
		} else {
			platform = models.PlatformHulu
		}
	}

	var genre string
	switch brand {
	case "Pixar":
		genre = "Animation"
	case "Marvel":
		genre = pick(g.rng, []string{"Action", "Sci-Fi", "Fantasy"})
	case "Star Wars":
		genre = pick(g.rng, []string{"Sci-Fi", "Action", "Fantasy"})
	case "National Geographic":
		genre = "Docuseries"
	default:
		genre = pick(g.rng, genres)
	}

	var tier models.BudgetTier
	switch brand {
	case "Marvel", "Star Wars":
		tier = weighted(g.rng, []models.BudgetTier{models.BudgetTierMedium, models.BudgetTierHigh}, []float64{0.3, 0.7})
	case "Pixar":
		tier = weighted(g.rng, []models.BudgetTier{models.BudgetTierMedium, models.BudgetTierHigh}, []float64{0.5, 0.5})
	default:
		tier = weighted(g.rng, []models.BudgetTier{models.BudgetTierLow, models.BudgetTierMedium, models.BudgetTierHigh}, []float64{0.4, 0.4, 0.2})
	}

	budget := g.budgetUSD(contentType, tier)
	marketing := budget * (0.2 + g.rng.Float64()*0.4)

	title := models.Title{
		ID:               id,
		Name:             name,
		Brand:            brand,
		Genre:            genre,
		PlatformPrimary:  platform,
		ContentType:      contentType,
		BudgetTier:       tier,
		ProductionBudget: budget,
		MarketingSpend:   marketing,
	}

	if contentType == models.ContentTypeSeries {
		title.SeasonNumber = pick(g.rng, []int{1, 1, 1, 2, 2, 3})
		title.EpisodeCount = 6 + g.rng.Intn(7)
	}

	baseDate := g.now.AddDate(0, 0, -g.rng.Intn(730))

	if contentType == models.ContentTypeFilm && tier != models.BudgetTierLow && g.rng.Float64() > 0.3 {
		theatrical := baseDate
		title.ReleaseTheatrical = &theatrical
		if g.rng.Float64() > 0.5 {
			pvod := theatrical.AddDate(0, 0, 17+g.rng.Intn(28))
			title.ReleasePVOD = &pvod
		}
		streaming := theatrical.AddDate(0, 0, 45+g.rng.Intn(75))
		title.ReleaseStreaming = &streaming
	} else {
		streaming := baseDate
		title.ReleaseStreaming = &streaming
	}

	return title
}

func (g *Generator) budgetUSD(ct models.ContentType, tier models.BudgetTier) float64 {
	var lo, hi float64
	if ct == models.ContentTypeFilm {
		switch tier {
		case models.BudgetTierLow:
			lo, hi = 5, 20
		case models.BudgetTierMedium:
			lo, hi = 20, 80
		default:
			lo, hi = 80, 200
		}
	} else {
		switch tier {
		case models.BudgetTierLow:
			lo, hi = 2, 8
		case models.BudgetTierMedium:
			lo, hi = 8, 30
		default:
			lo, hi = 30, 100
		}
	}
	return (lo + g.rng.Float64()*(hi-lo)) * 1_000_000
}

func (g *Generator) engagementCurve(title models.Title, latent float64) models.EngagementSeries {
	brandMult := engagementBrandMultipliers[title.Brand]
	if brandMult == 0 {
		brandMult = 1.0
	}

	budgetMult := map[models.BudgetTier]float64{
		models.BudgetTierLow:    0.5,
		models.BudgetTierMedium: 1.0,
		models.BudgetTierHigh:   2.0,
	}[title.BudgetTier]

	contentMult := 1.0
	if title.ContentType == models.ContentTypeFilm {
		contentMult = 1.2
	}

	peakHours := 10_000_000 * brandMult * budgetMult * contentMult * (0.5 + latent)
	peakHours *= 0.7 + g.rng.Float64()*0.6
	peakWeek := 1 + g.rng.Intn(3)

	series := make(models.EngagementSeries, 0, models.EngagementHorizonWeeks)
	for week := 0; week < models.EngagementHorizonWeeks; week++ {
		var hours float64
		switch {
		case week < peakWeek:
			hours = peakHours * float64(week) / float64(peakWeek) * (0.8 + g.rng.Float64()*0.4)
		case week == peakWeek:
			hours = peakHours
		default:
			// Better content decays slower
			decayRate := 0.15 * (1.0 - latent*0.3)
			hours = peakHours * math.Exp(-decayRate*float64(week-peakWeek))
			hours *= 0.85 + g.rng.Float64()*0.3
		}

		series = append(series, models.EngagementPoint{
			TitleID:     title.ID,
			Week:        week,
			HoursViewed: math.Max(0, hours),
		})
	}
	return series
}

func (g *Generator) quality(title models.Title, latent float64) models.QualityScores {
	brandBonus := map[string]float64{"Marvel": 5, "Star Wars": 5, "Pixar": 10}[title.Brand]
	budgetBonus := map[models.BudgetTier]float64{
		models.BudgetTierLow:  -5,
		models.BudgetTierHigh: 5,
	}[title.BudgetTier]

	critic := clamp(50+latent*40+brandBonus+budgetBonus+g.rng.NormFloat64()*10, 20, 95)
	audience := clamp(critic+5+g.rng.NormFloat64()*8, 25, 98)
	imdb := clamp(critic/10+g.rng.NormFloat64()*0.5, 3.0, 9.5)

	buzzBudgetBonus := map[models.BudgetTier]float64{
		models.BudgetTierMedium: 10,
		models.BudgetTierHigh:   20,
	}[title.BudgetTier]
	buzz := clamp(latent*60+20+buzzBudgetBonus+g.rng.NormFloat64()*12, 10, 95)

	return models.QualityScores{
		TitleID:       title.ID,
		CriticScore:   round1(critic),
		AudienceScore: round1(audience),
		IMDBRating:    round1(imdb),
		BuzzScore:     round1(buzz),
	}
}

func pick[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}

func weighted[T any](rng *rand.Rand, options []T, weights []float64) T {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return options[i]
		}
	}
	return options[len(options)-1]
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
