// EcoDesign CLI - sustainable building design decision support
//
// Usage:
//   ecodesign evaluate --area 1200 --budget 60 --climate moderate --priority energy
//   ecodesign recommend --area 1200 --budget 60 --climate hot --priority water
//   ecodesign train --data-dir data
//   ecodesign serve --port 8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/constraints"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/dataset"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/design"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/evaluation"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/ml"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/policy"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/storage"
	contracts "github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "ecodesign",
		Usage:   "Sustainable building design decision support",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"ECODESIGN_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Value:   "data",
				Usage:   "Directory scanned for training datasets",
				EnvVars: []string{"DATA_DIR"},
			},
			&cli.Int64Flag{
				Name:    "seed",
				Value:   dataset.DefaultSeed,
				Usage:   "Seed for synthetic training data",
				EnvVars: []string{"TRAINING_SEED"},
			},
		},

		Commands: []*cli.Command{
			evaluateCommand(),
			recommendCommand(),
			trainCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func briefFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:     "area",
			Usage:    "Floor area in sq ft (300-2000)",
			Required: true,
		},
		&cli.Float64Flag{
			Name:     "budget",
			Usage:    "Budget flexibility as a percentage (0-100)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "climate",
			Usage:    "Climate zone (cold, moderate, hot)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "priority",
			Usage:    "Sustainability priority (energy, water, materials)",
			Required: true,
		},
	}
}

func briefFromFlags(c *cli.Context) contracts.RawConstraints {
	area := c.Float64("area")
	budget := c.Float64("budget")
	climate := c.String("climate")
	priority := c.String("priority")
	return contracts.RawConstraints{
		Area:     &area,
		Budget:   &budget,
		Climate:  &climate,
		Priority: &priority,
	}
}

// =============================================================================
// EVALUATE COMMAND
// =============================================================================

func evaluateCommand() *cli.Command {
	return &cli.Command{
		Name:  "evaluate",
		Usage: "Generate and score design alternatives for a brief",
		Flags: append(briefFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
			&cli.Float64Flag{
				Name:  "cost-limit",
				Usage: "Estimated cost limit for policy check",
			},
			&cli.Float64Flag{
				Name:  "carbon-budget",
				Usage: "Embodied carbon budget (kg CO2/sqft) for policy check",
			},
			&cli.BoolFlag{
				Name:  "skip-policy",
				Usage: "Skip governance policy evaluation",
			},
		),
		Action: runEvaluate,
	}
}

func runEvaluate(c *cli.Context) error {
	engine := constraints.NewEngine()
	raw := briefFromFlags(c)

	valid, errs := engine.Validate(raw)
	if !valid {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "✗ %s\n", e)
		}
		os.Exit(1)
	}

	brief := engine.FromRaw(raw)
	processed := engine.Process(brief)
	feasibility := engine.CalculateFeasibility(processed)

	generator := design.NewGenerator()
	evaluator := evaluation.NewEvaluator()

	designs := generator.Generate(brief)
	for i := range designs {
		m := evaluator.Evaluate(designs[i], brief)
		designs[i].Metrics = &m
	}
	ranked := evaluator.RankDesigns(designs)

	var policyResult *policy.EvaluationResult
	if !c.Bool("skip-policy") {
		policyEngine := policy.NewEngine()
		if limit := c.Float64("cost-limit"); limit > 0 {
			policyEngine.AddPolicy(policy.Policy{
				ID:        "cli-cost-limit",
				Name:      "Cost Limit",
				Type:      policy.PolicyTypeCostLimit,
				Severity:  policy.SeverityError,
				Threshold: limit,
				Enabled:   true,
			})
		}
		if budget := c.Float64("carbon-budget"); budget > 0 {
			policyEngine.AddPolicy(policy.Policy{
				ID:        "cli-carbon-budget",
				Name:      "Carbon Budget",
				Type:      policy.PolicyTypeCarbonBudget,
				Severity:  policy.SeverityError,
				Threshold: budget,
				Enabled:   true,
			})
		}
		policyResult = policyEngine.Evaluate(policy.EvaluationRequest{
			Designs:          ranked,
			FeasibilityScore: feasibility,
			Confidence:       1.0,
		})
	}

	switch c.String("format") {
	case "json":
		return outputJSON(processed, feasibility, ranked, policyResult)
	default:
		return outputTable(processed, feasibility, ranked, policyResult)
	}
}

// =============================================================================
// OUTPUT FORMATTERS
// =============================================================================

type evaluateOutput struct {
	Constraints      contracts.ProcessedConstraints `json:"constraints"`
	FeasibilityScore int                            `json:"feasibility_score"`
	Designs          []contracts.Design             `json:"designs"`
	PolicyResult     string                         `json:"policy_result,omitempty"`
	Violations       []policy.Violation             `json:"violations,omitempty"`
	Warnings         []policy.Warning               `json:"warnings,omitempty"`
}

func outputJSON(pc contracts.ProcessedConstraints, feasibility int, designs []contracts.Design, policyResult *policy.EvaluationResult) error {
	out := evaluateOutput{
		Constraints:      pc,
		FeasibilityScore: feasibility,
		Designs:          designs,
	}
	if policyResult != nil {
		out.PolicyResult = string(policyResult.Decision)
		out.Violations = policyResult.Violations
		out.Warnings = policyResult.Warnings
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if policyResult != nil && policyResult.Decision == policy.DecisionDeny {
		os.Exit(2)
	}
	return nil
}

func outputTable(pc contracts.ProcessedConstraints, feasibility int, designs []contracts.Design, policyResult *policy.EvaluationResult) error {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 🏠 DESIGN ALTERNATIVES                        ║")
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")
	fmt.Printf("║  Brief:              %-40s ║\n",
		fmt.Sprintf("%d sqft, %.0f%%, %s, %s", pc.Area, pc.Budget, pc.Climate, pc.Priority))
	fmt.Printf("║  Feasibility:        %-40s ║\n", fmt.Sprintf("%d/100", feasibility))
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")

	for _, d := range designs {
		position := 0
		if d.Ranking != nil {
			position = d.Ranking.Position
		}
		cost := decimal.NewFromInt(int64(d.Metrics.EstimatedCost)).StringFixed(2)
		fmt.Printf("║  #%d %-42s  index %-3d  ║\n", position, truncate(d.Name, 42), d.Metrics.SustainabilityIndex)
		fmt.Printf("║     energy %-3d  water %-3d  carbon %-6s  $%-13s ║\n",
			d.Metrics.EnergyEfficiency, d.Metrics.WaterEfficiency, d.Metrics.CarbonFootprint, cost)
	}

	if policyResult != nil {
		fmt.Println("╠══════════════════════════════════════════════════════════════╣")
		var icon string
		switch policyResult.Decision {
		case policy.DecisionPass:
			icon = "✅ PASS"
		case policy.DecisionWarn:
			icon = "⚠️  WARN"
		case policy.DecisionDeny:
			icon = "❌ DENY"
		}
		fmt.Printf("║  Policy Result:      %-40s ║\n", icon)
		for _, v := range policyResult.Violations {
			fmt.Printf("║  ❌ %-57s ║\n", truncate(v.Message, 57))
		}
		for _, w := range policyResult.Warnings {
			fmt.Printf("║  ⚠️  %-56s ║\n", truncate(w.Message, 56))
		}
	}

	fmt.Println("╚══════════════════════════════════════════════════════════════╝")

	if policyResult != nil && policyResult.Decision == policy.DecisionDeny {
		os.Exit(2)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// =============================================================================
// RECOMMEND COMMAND
// =============================================================================

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:   "recommend",
		Usage:  "Recommend a design variant from historical choices",
		Flags:  briefFlags(),
		Action: runRecommend,
	}
}

func runRecommend(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"), true)
	engine := constraints.NewEngine()
	raw := briefFromFlags(c)

	valid, errs := engine.Validate(raw)
	if !valid {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "✗ %s\n", e)
		}
		os.Exit(1)
	}

	_, _, recommender, _ := dataset.TrainModels(logger, c.String("data-dir"), c.Int64("seed"))

	rec := recommender.Recommend(engine.FromRaw(raw), 3)
	if rec.RecommendedDesign == nil {
		fmt.Println("No recommendation available (no historical data).")
		return nil
	}

	names := map[int]string{0: "Eco-Efficient", 1: "Carbon-Optimized", 2: "Regenerative"}
	fmt.Printf("Recommended design: %s (confidence %.0f%%)\n",
		names[*rec.RecommendedDesign], rec.Confidence*100)
	for i, p := range rec.SimilarProjects {
		fmt.Printf("  %d. %d sqft, %.0f%%, %s/%s → %s (satisfaction %.2f, similarity %.2f)\n",
			i+1, p.Constraints.Area, p.Constraints.Budget, p.Constraints.Climate,
			p.Constraints.Priority, names[p.ChosenDesign], p.Satisfaction, p.Similarity)
	}
	return nil
}

// =============================================================================
// TRAIN COMMAND
// =============================================================================

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "Train the learned models and report their state",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "archive",
				Usage: "Archive the training batch to ClickHouse",
			},
			&cli.BoolFlag{
				Name:  "from-archive",
				Usage: "Train from records archived in ClickHouse instead of the data dir",
			},
			&cli.IntFlag{
				Name:  "synthetic",
				Usage: "Skip the data dir and train on N synthetic cost records",
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Value:   "localhost",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "ecodesign",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Value:   "",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
		},
		Action: runTrain,
	}
}

func runTrain(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"), true)

	var (
		cost        *ml.CostPredictor
		ranker      *ml.Ranker
		recommender *ml.Recommender
		records     []contracts.TrainingRecord
	)
	if n := c.Int("synthetic"); n > 0 {
		synth := dataset.NewSynthesizer(c.Int64("seed"))
		records = synth.CostRecords(n)
		cost = ml.NewCostPredictor()
		cost.Train(records)
		ranker = ml.NewRanker()
		ranker.Train(synth.PreferenceExamples(dataset.DefaultPreferenceSamples))
		recommender = ml.NewRecommender()
		recommender.LearnFromHistory(synth.HistoricalProjects(dataset.DefaultHistorySamples))
	} else if c.Bool("from-archive") {
		store, err := archiveStore(c)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		defer store.Close()

		records, err = store.LoadAll(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load archived records: %w", err)
		}
		cost = ml.NewCostPredictor()
		cost.Train(records)
		ranker = ml.NewRanker()
		ranker.Train(dataset.PrepareRankingExamples(records))
		recommender = ml.NewRecommender()
		recommender.LearnFromHistory(dataset.PrepareHistory(records))
	} else {
		cost, ranker, recommender, records = dataset.TrainModels(logger, c.String("data-dir"), c.Int64("seed"))
	}

	fmt.Printf("Cost predictor trained:  %v\n", cost.IsTrained())
	fmt.Printf("Design ranker trained:   %v\n", ranker.IsTrained())
	fmt.Printf("Recommender trained:     %v\n", recommender.IsTrained())
	fmt.Printf("Training records:        %d\n", len(records))

	if imp := cost.FeatureImportance(); len(imp) > 0 {
		fmt.Println("Feature importance:")
		for _, f := range imp {
			fmt.Printf("  %-10s %.3f\n", f.Name, f.Importance)
		}
	}

	if c.Bool("archive") {
		store, err := archiveStore(c)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
		batchID, err := store.SaveBatch(ctx, "cli-train", records)
		if err != nil {
			return fmt.Errorf("failed to archive training batch: %w", err)
		}
		fmt.Printf("Archived batch:          %s\n", batchID)

		if counts, err := store.CountBySource(ctx); err == nil {
			fmt.Println("Archive totals by source:")
			for source, n := range counts {
				fmt.Printf("  %-12s %d\n", source, n)
			}
		}
	}

	return nil
}

func archiveStore(c *cli.Context) (*dataset.Store, error) {
	return dataset.NewStore(&dataset.StoreConfig{
		Host:     c.String("clickhouse-host"),
		Port:     c.Int("clickhouse-port"),
		Database: c.String("clickhouse-database"),
		Username: c.String("clickhouse-user"),
		Password: c.String("clickhouse-password"),
	})
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the design API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres DSN for project persistence",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	logger := platform.InitLogger(c.String("log-level"), false)

	cost, ranker, recommender, _ := dataset.TrainModels(logger, c.String("data-dir"), c.Int64("seed"))

	var projects *storage.ProjectStore
	if dsn := c.String("database-url"); dsn != "" {
		var err error
		projects, err = storage.NewProjectStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to open project store: %w", err)
		}
		if err := projects.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("failed to ensure project schema: %w", err)
		}
		defer projects.Close()
	}

	cfg := api.DefaultConfig()
	cfg.Port = c.Int("port")

	srv := api.NewServer(api.Models{
		Cost:        cost,
		Ranker:      ranker,
		Recommender: recommender,
	}, projects, cfg, logger)

	return srv.StartWithGracefulShutdown()
}
