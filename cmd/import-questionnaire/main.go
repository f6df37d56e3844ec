// Package main provides a CLI tool to import a questionnaire from a JSON file.
// Usage: go run ./cmd/import-questionnaire -file questionnaire.json [-dry-run]
// The file holds one building type with its topics and nested questions.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MMARAGAO/RiskAssessment-sub000/internal/config"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/database"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/evaluator"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/logger"
	"github.com/MMARAGAO/RiskAssessment-sub000/internal/models"
)

func main() {
	file := flag.String("file", "", "Path to the questionnaire JSON file (required)")
	envFile := flag.String("env", "", "Path to .env file (defaults to .env in current dir)")
	dryRun := flag.Bool("dry-run", false, "Validate and print the empty-answer evaluation without writing to database")
	appendTopics := flag.Bool("append", false, "Import even when the building type already has topics")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Imports a conditional questionnaire for one building type.\n\n")
		fmt.Fprintf(os.Stderr, "Required config (via .env or environment, not needed with -dry-run):\n")
		fmt.Fprintf(os.Stderr, "  %s_DATABASE_URI   MongoDB connection URI\n", config.Prefix)
		fmt.Fprintf(os.Stderr, "  %s_DATABASE_NAME  Database name (default: riskassess)\n\n", config.Prefix)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -file residential.json -dry-run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file commercial.json\n", os.Args[0])
	}

	flag.Parse()

	loadEnvFile(*envFile)

	if *file == "" {
		log.Fatal("Error: -file is required")
	}

	doc, err := readDocument(*file)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	trees, err := doc.Materialize()
	if err != nil {
		log.Fatalf("Error: invalid questionnaire: %v", err)
	}
	if len(trees) == 0 {
		log.Fatal("Error: questionnaire has no topics")
	}

	if *dryRun {
		printDryRun(doc, trees)
		return
	}

	zlog, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		log.Fatalf("Error: failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dbCfg := database.DefaultConfig()
	dbCfg.URI = os.Getenv(config.Prefix + "_DATABASE_URI")
	if dbCfg.URI == "" {
		log.Fatalf("Error: %s_DATABASE_URI environment variable is required", config.Prefix)
	}
	if name := os.Getenv(config.Prefix + "_DATABASE_NAME"); name != "" {
		dbCfg.Database = name
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.NewClient(dbCfg)
	if err != nil {
		log.Fatalf("Error: failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			zlog.Warn("error closing database connection", zap.Error(err))
		}
	}()

	if err := client.EnsureIndexes(ctx, zlog); err != nil {
		zlog.Warn("failed to create indexes", zap.Error(err))
	}

	seeder := database.NewSeeder(client.Database(), zlog)
	if *appendTopics {
		if err := seeder.Import(ctx, trees); err != nil {
			zlog.Error("import failed", zap.Error(err))
			return
		}
		zlog.Info("questionnaire imported", zap.String("building_type", trees[0].Topic.BuildingType), zap.Int("topics", len(trees)))
		return
	}

	written, err := seeder.SeedQuestionnaire(ctx, *doc)
	if err != nil {
		zlog.Error("import failed", zap.Error(err))
		return
	}
	if written == 0 {
		fmt.Println("Building type already has topics; nothing written (use -append to import anyway)")
		return
	}
	fmt.Printf("Imported %d topic(s) for building type %q\n", written, models.NormalizeBuildingType(doc.BuildingType))
}

func readDocument(path string) (*database.QuestionnaireDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc database.QuestionnaireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// printDryRun shows what an untouched assessment of the questionnaire would look like
func printDryRun(doc *database.QuestionnaireDocument, trees []models.TopicTree) {
	report := evaluator.AssembleReport(nil, trees, models.AnswerSet{})

	fmt.Println("=== DRY RUN - No changes will be made ===")
	fmt.Printf("Building type: %s\n", models.NormalizeBuildingType(doc.BuildingType))
	fmt.Printf("Topics:        %d\n\n", len(trees))
	for i, ts := range report.TopicScores {
		fmt.Printf("  %d. %-32s questions: %3d  initially visible: %3d  max score: %7.1f\n",
			trees[i].Topic.DisplayOrder, ts.TopicName, models.CountQuestions(trees[i].Questions), ts.TotalQuestions, ts.MaxPossibleScore)
	}
	fmt.Printf("\nInitially visible questions: %d\n", report.Progress.Total)
	fmt.Printf("Risk level with no answers:  %s\n", report.RiskLevel)
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile(path string) {
	if path == "" {
		cwd, _ := os.Getwd()
		if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
			path = ".env"
		}
	}

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("Error loading .env file: %v", err)
		}
	}
}
