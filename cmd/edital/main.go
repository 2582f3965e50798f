package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aprova-labs/edital-cli/internal/adapters/driven/config/file"
	"github.com/aprova-labs/edital-cli/internal/adapters/driven/extractor/textfile"
	"github.com/aprova-labs/edital-cli/internal/adapters/driven/storage/sqlite"
	"github.com/aprova-labs/edital-cli/internal/adapters/driving/cli"
	"github.com/aprova-labs/edital-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening report store: %w", err)
	}
	defer store.Close()

	pipeline := services.NewPipelineService(textfile.New())
	if subjects := cfg.GetStringSlice("parser.fallback_subjects"); len(subjects) > 0 {
		pipeline.SetFallbackSubjects(subjects)
	}

	cli.SetServices(cli.Services{
		Pipeline: pipeline,
		Reports:  store,
		Config:   cfg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}
