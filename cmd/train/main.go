package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plateful/plateful/internal/config"
	"github.com/plateful/plateful/internal/logger"
	"github.com/plateful/plateful/internal/repository"
	"github.com/plateful/plateful/internal/service"
	"github.com/plateful/plateful/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
		stage      = flag.String("stage", "all", "Pipeline stage to run: all, export, fit")
		dataPath   = flag.String("data", "", "Override the dataset path from config")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Trainer.DataPath = *dataPath
	}

	log := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(log)
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Optional artifact mirror
	var mirror storage.ObjectStorage
	if cfg.Artifacts.Upload {
		s3, err := storage.NewS3Storage(&storage.S3Config{
			Endpoint:  cfg.Artifacts.S3.Endpoint,
			AccessKey: cfg.Artifacts.S3.AccessKey,
			SecretKey: cfg.Artifacts.S3.SecretKey,
			UseSSL:    cfg.Artifacts.S3.UseSSL,
			Bucket:    cfg.Artifacts.S3.Bucket,
			Region:    cfg.Artifacts.S3.Region,
		})
		if err != nil {
			log.Fatalf("Failed to initialize artifact storage: %v", err)
		}
		if err := s3.EnsureBucket(context.Background()); err != nil {
			log.Fatalf("Failed to ensure artifact bucket: %v", err)
		}
		mirror = s3
	}

	trainer := service.NewTrainerService(
		repository.NewInteractionExporter(db),
		service.NewReporter(cfg.Trainer.WebhookURL),
		mirror,
		log,
		&service.TrainerConfig{
			DataPath:     cfg.Trainer.DataPath,
			ArtifactsDir: cfg.Artifacts.Dir,
		},
	)

	ctx := logger.SetComponent(context.Background(), "trainer")

	switch *stage {
	case "export":
		rows, err := trainer.Export(ctx)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("exported %d interaction rows to %s\n", rows, cfg.Trainer.DataPath)

	case "fit":
		report, err := trainer.Fit(ctx)
		finish(report, err)

	case "all":
		report, err := trainer.Run(ctx)
		finish(report, err)

	default:
		fmt.Fprintf(os.Stderr, "Unknown stage %q: want all, export, or fit\n", *stage)
		os.Exit(2)
	}
}

func finish(report *service.TrainReport, err error) {
	if report != nil {
		fmt.Println(report.Summary())
	}
	if err != nil {
		os.Exit(1)
	}
}
