// replan-adjust runs the adjustment pipeline on a plan file without a
// server or database. Useful for trying feedback against a plan locally.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/replan/internal/adjust"
	"github.com/claude/replan/internal/interpreter"
	"github.com/claude/replan/internal/knowledge"
	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/transformer"
	"github.com/claude/replan/internal/validator"
)

func main() {
	planPath := flag.String("plan", "", "path to plan JSON file (required)")
	feedback := flag.String("feedback", "", "free-text feedback (required)")
	profilePath := flag.String("profile", "", "path to user profile JSON file (optional)")
	ollamaEndpoint := flag.String("ollama", "", "Ollama endpoint for feedback interpretation (optional, keyword fallback otherwise)")
	ollamaModel := flag.String("model", "llama3.2", "model name when -ollama is set")
	outPath := flag.String("out", "", "write the modified plan to this file (default: print full result to stdout)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *planPath == "" || *feedback == "" {
		fmt.Fprintf(os.Stderr, "Usage: replan-adjust -plan plan.json -feedback \"my knee hurts\" [-profile profile.json] [-out adjusted.json]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	plan, err := readPlan(*planPath)
	if err != nil {
		log.Error("failed to read plan", "path", *planPath, "error", err)
		os.Exit(1)
	}

	profile := models.UserProfile{FitnessLevel: models.LevelIntermediate, DaysPerWeek: 3}
	if *profilePath != "" {
		if err := readJSON(*profilePath, &profile); err != nil {
			log.Error("failed to read profile", "path", *profilePath, "error", err)
			os.Exit(1)
		}
	}

	var llm interpreter.LanguageModel
	if *ollamaEndpoint != "" {
		llm = interpreter.NewOllamaClient(*ollamaEndpoint, *ollamaModel)
	}
	interp := interpreter.New(llm, log)
	ks := knowledge.NewService(nil, nil, log)

	ctx := context.Background()
	fb := interp.Parse(ctx, *feedback)
	result := adjust.Run(ctx, plan, profile, fb,
		validator.New(ks, log), transformer.New(ks, log))

	log.Info("adjustment complete",
		"applied", len(result.Applied),
		"skipped", len(result.Skipped),
		"warnings", len(result.Warnings))
	for _, sk := range result.Skipped {
		log.Warn("skipped", "type", sk.Type, "reason", sk.Reason)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *outPath != "" {
		data, err := json.MarshalIndent(result.Plan, "", "  ")
		if err != nil {
			log.Error("failed to encode plan", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			log.Error("failed to write plan", "path", *outPath, "error", err)
			os.Exit(1)
		}
		log.Info("modified plan written", "path", *outPath)
		if err := enc.Encode(result.Explanation); err != nil {
			log.Error("failed to encode explanation", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := enc.Encode(result); err != nil {
		log.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}

func readPlan(path string) (*models.Plan, error) {
	var plan models.Plan
	if err := readJSON(path, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
