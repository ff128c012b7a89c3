package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/magicslate/slate/internal/assumptions"
	"github.com/magicslate/slate/internal/common"
	"github.com/magicslate/slate/internal/datagen"
	"github.com/magicslate/slate/internal/exports"
	"github.com/magicslate/slate/internal/greenlight"
	"github.com/magicslate/slate/internal/loaders"
	"github.com/magicslate/slate/internal/models"
	"github.com/magicslate/slate/internal/portfolio"
	"github.com/magicslate/slate/internal/scorecard"
	"github.com/magicslate/slate/internal/storage"
	"github.com/magicslate/slate/internal/windowing"
)

// commonFlags are shared by every subcommand
type commonFlags struct {
	configPath      *string
	assumptionsFile *string
	exportDir       *string
	concurrency     *int
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath:      fs.String("config", "", "Configuration file path"),
		assumptionsFile: fs.String("assumptions", "", "Assumptions overrides file (overrides config)"),
		exportDir:       fs.String("out", "", "Export output directory (overrides config)"),
		concurrency:     fs.Int("concurrency", 0, "Scoring worker count (overrides config)"),
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: slate <command> [flags]

Commands:
  generate   Write a synthetic catalog to the configured data files
  score      Score the catalog and print the scorecard table
  portfolio  Aggregate scorecards across a dimension
  simulate   Compare windowing scenarios for one title
  forecast   Forecast a new-title concept against the catalog
  export     Write the CSV workbook and PDF report
  version    Print version information`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "version" || cmd == "-version" || cmd == "--version" {
		fmt.Printf("Slate version %s\n", common.GetFullVersion())
		return
	}

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(args)
	case "score":
		err = runScore(args)
	case "portfolio":
		err = runPortfolio(args)
	case "simulate":
		err = runSimulate(args)
	case "forecast":
		err = runForecast(args)
	case "export":
		err = runExport(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		common.GetLogger().Error().Err(err).Str("command", cmd).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "slate %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// setup runs the startup sequence every command shares:
// config (defaults -> file -> env) -> flag overrides -> logger -> banner.
func setup(cf commonFlags) (*common.Config, arbor.ILogger, error) {
	path := *cf.configPath
	if path == "" {
		if _, err := os.Stat("slate.toml"); err == nil {
			path = "slate.toml"
		}
	}

	config, err := common.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	common.ApplyFlagOverrides(config, *cf.assumptionsFile, *cf.exportDir, *cf.concurrency)

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())
	return config, logger, nil
}

func loadAssumptions(config *common.Config) (*assumptions.Assumptions, error) {
	if config.AssumptionsFile == "" {
		return assumptions.Default(), nil
	}
	return assumptions.Load(config.AssumptionsFile)
}

func loadDataset(config *common.Config, asm *assumptions.Assumptions) (*loaders.Dataset, error) {
	return loaders.LoadAll(config.Data.TitlesFile, config.Data.EngagementFile, config.Data.QualityFile, asm)
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cf := addCommonFlags(fs)
	seed := fs.Int64("seed", datagen.DefaultSeed, "Random seed")
	count := fs.Int("count", datagen.DefaultTitleCount, "Number of titles to generate")
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}

	catalog := datagen.NewGenerator(*seed, time.Now()).Generate(*count)
	if err := catalog.SaveCSV(config.Data.TitlesFile, config.Data.EngagementFile, config.Data.QualityFile); err != nil {
		return err
	}

	logger.Info().
		Int("titles", len(catalog.Titles)).
		Int64("seed", *seed).
		Str("titles_file", config.Data.TitlesFile).
		Msg("Synthetic catalog written")
	fmt.Printf("Wrote %d titles to %s\n", len(catalog.Titles), filepath.Dir(config.Data.TitlesFile))
	return nil
}

func runScore(args []string) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	cf := addCommonFlags(fs)
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}

	cards, asm, err := scoreCatalog(config, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%-28s %-16s %6s %10s %10s %8s  %s\n",
		"TITLE", "BRAND", "HOURS", "VALUE", "COST", "ROI", "CLASS")
	for _, c := range cards {
		fmt.Printf("%-28s %-16s %5.1fM %9.1fM %9.1fM %7.0f%%  %s\n",
			c.TitleName, c.Brand,
			c.Engagement.TotalHours/1e6, c.Value.TotalValue/1e6, c.TotalCost/1e6,
			c.ROI*100, c.Classification)
	}
	fmt.Printf("\n%d titles scored under assumption set %s\n", len(cards), asm.Fingerprint()[:12])
	return nil
}

func runPortfolio(args []string) error {
	fs := flag.NewFlagSet("portfolio", flag.ExitOnError)
	cf := addCommonFlags(fs)
	by := fs.String("by", "brand", "Aggregation dimension: brand, genre, platform, content_type, classification")
	brandFilter := fs.String("brand", "", "Only include titles from these brands (comma-separated)")
	genreFilter := fs.String("genre", "", "Only include titles in these genres (comma-separated)")
	after := fs.String("after", "", "Only include titles streaming on or after this date (YYYY-MM-DD)")
	before := fs.String("before", "", "Only include titles streaming on or before this date (YYYY-MM-DD)")
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}

	cards, _, err := scoreCatalog(config, logger)
	if err != nil {
		return err
	}

	filter, err := buildFilter(*brandFilter, *genreFilter, *after, *before)
	if err != nil {
		return err
	}
	cards = portfolio.Apply(cards, filter)

	dim := portfolio.Dimension(*by)
	switch dim {
	case portfolio.DimensionBrand, portfolio.DimensionGenre, portfolio.DimensionPlatform,
		portfolio.DimensionContentType, portfolio.DimensionClassification:
	default:
		return models.NewValidationError("portfolio", "by", fmt.Sprintf("unknown dimension %q", *by))
	}

	groups := portfolio.GroupBy(cards, dim)
	summary := portfolio.Summarize(cards)

	fmt.Printf("%-20s %6s %10s %8s %7s\n", "GROUP", "COUNT", "VALUE", "ROI", "SHARE")
	for _, g := range groups {
		fmt.Printf("%-20s %6d %9.1fM %7.0f%% %6.0f%%\n",
			g.Key, g.Count, g.TotalValue/1e6, g.MeanROI*100, g.ValueShare*100)
	}
	fmt.Printf("\nTitles %d, total value $%.1fM, mean ROI %.0f%%\n",
		summary.Count, summary.TotalValue/1e6, summary.MeanROI*100)
	fmt.Printf("Concentration: HHI %.3f, top 3 share %.0f%%\n",
		portfolio.HHI(groups), portfolio.TopNShare(cards, 3)*100)
	return nil
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cf := addCommonFlags(fs)
	titleID := fs.String("title", "", "Title ID to simulate (required)")
	scenarioFile := fs.String("scenarios", "", "Custom scenario TOML file")
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}
	if *titleID == "" {
		return models.NewValidationError("scenario", "title", "no title selected")
	}

	asm, err := loadAssumptions(config)
	if err != nil {
		return err
	}
	dataset, err := loadDataset(config, asm)
	if err != nil {
		return err
	}

	var title *models.Title
	for i := range dataset.Titles {
		if dataset.Titles[i].ID == *titleID {
			title = &dataset.Titles[i]
			break
		}
	}
	if title == nil {
		return fmt.Errorf("%w: %s", models.ErrTitleNotFound, *titleID)
	}

	scenarios := windowing.DefaultScenarios(title.ID, title.ContentType)
	if *scenarioFile != "" {
		if scenarios, err = loaders.LoadScenarios(*scenarioFile); err != nil {
			return err
		}
	}

	quality, ok := dataset.Quality[title.ID]
	if !ok {
		quality = loaders.DefaultQuality(title.ID, asm)
	}

	sim := windowing.NewSimulator(asm)
	results, err := sim.SimulateAll(*title, dataset.Engagement[title.ID], quality, scenarios)
	if err != nil {
		return err
	}

	logger.Info().Str("title_id", title.ID).Int("scenarios", len(results)).Msg("Simulation complete")

	fmt.Printf("Windowing scenarios for %s:\n\n", title.Name)
	for _, r := range results {
		fmt.Printf("%-28s NPV $%.1fM  gross $%.1fM\n", r.ScenarioName, r.NPV/1e6, r.GrossValue/1e6)
	}
	fmt.Println()
	fmt.Println(windowing.CompareScenarios(results))
	return nil
}

func runForecast(args []string) error {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	cf := addCommonFlags(fs)
	conceptFile := fs.String("concept", "", "Concept YAML file (required)")
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}
	if *conceptFile == "" {
		return models.NewValidationError("concept", "concept", "no concept file given")
	}

	concept, err := loaders.LoadConcept(*conceptFile)
	if err != nil {
		return err
	}

	cards, asm, err := scoreCatalog(config, logger)
	if err != nil {
		return err
	}

	forecaster := greenlight.NewForecaster(asm)
	result, err := forecaster.Forecast(concept, cards)
	if err != nil {
		return err
	}
	result.Narrative = greenlight.Narrative(concept, result)

	logger.Info().
		Str("concept", concept.Name).
		Int("comparables", result.SampleSize).
		Str("recommendation", string(result.Recommendation)).
		Msg("Forecast complete")

	fmt.Println(result.Narrative)
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cf := addCommonFlags(fs)
	format := fs.String("format", "", "Export format: csv, pdf or both (overrides config)")
	topTitles := fs.Int("top", 20, "Title detail count in the PDF report, 0 for all")
	fs.Parse(args)

	config, logger, err := setup(cf)
	if err != nil {
		return err
	}
	if *format != "" {
		config.Export.Format = *format
	}

	cards, asm, err := scoreCatalog(config, logger)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(config.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	if config.Export.Format == "csv" || config.Export.Format == "both" {
		paths, err := exports.NewWorkbook(config.Export.Dir).Write(cards, asm)
		if err != nil {
			return err
		}
		logger.Info().Int("files", len(paths)).Str("dir", config.Export.Dir).Msg("CSV workbook written")
		for _, p := range paths {
			fmt.Println(p)
		}
	}

	if config.Export.Format == "pdf" || config.Export.Format == "both" {
		report := exports.BuildReport(exports.ReportInput{
			GeneratedAt: time.Now(),
			Scorecards:  cards,
			TopTitles:   *topTitles,
		})
		path := filepath.Join(config.Export.Dir, "portfolio_report.pdf")
		if err := exports.WritePDF(report, path); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("PDF report written")
		fmt.Println(path)
	}
	return nil
}

// scoreCatalog loads inputs and scores every title, memoized through the
// badger cache keyed by the assumptions fingerprint.
func scoreCatalog(config *common.Config, logger arbor.ILogger) ([]models.TitleScorecard, *assumptions.Assumptions, error) {
	asm, err := loadAssumptions(config)
	if err != nil {
		return nil, nil, err
	}
	dataset, err := loadDataset(config, asm)
	if err != nil {
		return nil, nil, err
	}

	engine := scorecard.NewEngine(asm)
	fingerprint := asm.Fingerprint()
	ctx := context.Background()

	var cache *storage.ScorecardCache
	if config.Cache.Enabled {
		db, err := storage.NewBadgerDB(logger, &config.Cache)
		if err != nil {
			logger.Warn().Err(err).Msg("Cache unavailable, scoring without it")
		} else {
			defer db.Close()
			cache = storage.NewScorecardCache(db, logger)
		}
	}

	cached := map[string]models.TitleScorecard{}
	if cache != nil {
		if cached, err = cache.GetAll(ctx, fingerprint); err != nil {
			logger.Warn().Err(err).Msg("Cache read failed")
			cached = map[string]models.TitleScorecard{}
		}
	}

	var inputs []scorecard.BatchInput
	cards := make([]models.TitleScorecard, 0, len(dataset.Titles))
	for _, title := range dataset.Titles {
		if card, ok := cached[title.ID]; ok {
			cards = append(cards, card)
			continue
		}
		quality, ok := dataset.Quality[title.ID]
		if !ok {
			quality = loaders.DefaultQuality(title.ID, asm)
		}
		inputs = append(inputs, scorecard.BatchInput{
			Title:   title,
			Series:  dataset.Engagement[title.ID],
			Quality: quality,
		})
	}

	result := engine.ScoreBatch(inputs, config.Workers.Concurrency, logger)
	for id, reason := range result.Failures {
		logger.Warn().Str("title_id", id).Str("reason", reason).Msg("Title failed to score")
	}
	if cache != nil {
		for _, card := range result.Scorecards {
			if err := cache.Put(ctx, fingerprint, card); err != nil {
				logger.Warn().Err(err).Str("title_id", card.TitleID).Msg("Cache write failed")
			}
		}
		if err := cache.Sweep(ctx, fingerprint); err != nil {
			logger.Warn().Err(err).Msg("Cache sweep failed")
		}
	}

	cards = append(cards, result.Scorecards...)
	sortScorecards(cards)

	logger.Info().
		Int("scored", len(result.Scorecards)).
		Int("cached", len(cards)-len(result.Scorecards)).
		Int("failed", len(result.Failures)).
		Msg("Catalog scored")
	return cards, asm, nil
}

func buildFilter(brands, genres, after, before string) (portfolio.Filter, error) {
	f := portfolio.Filter{
		Brands: splitList(brands),
		Genres: splitList(genres),
	}
	var err error
	if f.ReleasedAfter, err = parseDateFlag(after); err != nil {
		return f, err
	}
	f.ReleasedBefore, err = parseDateFlag(before)
	return f, err
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, models.NewValidationError("portfolio", "date", fmt.Sprintf("%q is not YYYY-MM-DD", s))
	}
	return &t, nil
}

func sortScorecards(cards []models.TitleScorecard) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].TitleID < cards[j].TitleID })
}
