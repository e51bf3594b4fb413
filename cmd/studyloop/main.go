package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/alexanderramin/studyloop/internal/cli"
	"github.com/alexanderramin/studyloop/internal/llm"
	"github.com/alexanderramin/studyloop/internal/planner"
	"github.com/alexanderramin/studyloop/internal/policy"
	"github.com/alexanderramin/studyloop/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is optional; real env vars win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	policyCfg, err := policy.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading policy config: %w", err)
	}

	storeCfg, err := loadStoreConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(storeCfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	portfolio, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	llmCfg := llm.LoadConfig()
	var client llm.Client
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client = llm.NewOllamaClient(llmCfg, observer)
	}
	explainer, usesLLM := buildExplainer(ctx, llmCfg, client, logger)

	var observers []service.UseCaseObserver
	if on, _ := strconv.ParseBool(os.Getenv("STUDYLOOP_LOG_USE_CASES")); on {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	study := service.NewStudyService(service.StudyDeps{
		Portfolio: portfolio,
		Store:     store,
		Planner:   planner.NewSimplePlanner(),
		Policy:    policy.NewEffortPolicy(policyCfg),
		Explainer: explainer,
	}, observers...)

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app := &cli.App{
		Study:         study,
		IsInteractive: interactive,
		ShowSpinner:   usesLLM && interactive(),
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
