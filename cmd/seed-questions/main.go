package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aquaed/aquaed-backend/internal/config"
	"github.com/aquaed/aquaed-backend/internal/database"
	"github.com/aquaed/aquaed-backend/internal/logger"
	"github.com/aquaed/aquaed-backend/internal/model"
	"github.com/aquaed/aquaed-backend/internal/repository"
)

func main() {
	var bankFile string
	var replace bool
	flag.StringVar(&bankFile, "file", "questions.json", "Path to the question bank JSON file")
	flag.BoolVar(&replace, "replace", false, "Replace the whole bank instead of appending")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(bankFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", bankFile).Msg("Failed to read question bank file")
	}

	var questions []model.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse question bank JSON")
	}
	if len(questions) == 0 {
		log.Fatal().Msg("Question bank file is empty")
	}

	for i := range questions {
		questions[i].Active = true
		if err := questions[i].Validate(); err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("Invalid question in bank file")
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Printf("=== Seeding %d Questions ===\n", len(questions))

	if replace {
		if err := questionRepo.ReplaceAll(ctx, questions); err != nil {
			log.Fatal().Err(err).Msg("Failed to replace question bank")
		}
		fmt.Printf("\nSeed completed! Bank replaced with %d questions.\n", len(questions))
		return
	}

	successCount := 0
	for i := range questions {
		if err := questionRepo.Create(ctx, &questions[i]); err != nil {
			fmt.Printf("Error creating question %d: %v\n", i+1, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d questions.\n", successCount, len(questions))
}
