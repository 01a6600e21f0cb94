package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/letsssgooo/triviaQuiz/internal/client"
	"github.com/letsssgooo/triviaQuiz/internal/config"
	"github.com/letsssgooo/triviaQuiz/internal/console"
	"github.com/letsssgooo/triviaQuiz/internal/domain/models"
	"github.com/letsssgooo/triviaQuiz/internal/lib/slogcustom"
	"github.com/letsssgooo/triviaQuiz/internal/quiz"
	"github.com/letsssgooo/triviaQuiz/internal/storage"
	"github.com/letsssgooo/triviaQuiz/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := setupLogger(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("quiz stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting trivia quiz...", "source", cfg.Source)

	src, categories, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	fetcher := quiz.NewFetcher(src, quiz.WithCategoryMapping(quiz.CatalogCategory))

	opts := []quiz.Option{
		quiz.WithAmount(cfg.Amount),
		quiz.WithEffectBuffer(cfg.EffectBuffer),
	}

	if difficulty, ok := models.ParseDifficulty(cfg.Difficulty); ok {
		opts = append(opts, quiz.WithDifficulty(difficulty))
	}

	session := quiz.NewSession(fetcher, opts...)
	ui := console.NewConsole(session, categories, os.Stdin, os.Stdout)

	g, gctx := errgroup.WithContext(ctx)
	sessionCtx, stopSession := context.WithCancel(gctx)

	g.Go(func() error {
		return session.Run(sessionCtx)
	})

	g.Go(func() error {
		defer stopSession()

		if cfg.Category != 0 {
			if err := session.Dispatch(gctx, quiz.SelectCategory(cfg.Category)); err != nil {
				return err
			}
		}

		return ui.Run(gctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// openSource выбирает источник вопросов и список категорий для меню.
func openSource(ctx context.Context, cfg *config.Config) (quiz.Source, []models.Category, func(), error) {
	if cfg.Source == config.SourceOpenTDB {
		c := client.NewHTTPClient(cfg.TriviaAPIURL, cfg.HTTPTimeout, cfg.MaxRetries)
		return c, models.Categories, func() {}, nil
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	categories, err := st.Categories(ctx)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}

	return st, categories, st.Close, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.Source == config.SourceSample {
		return storage.NewSampleStorage(), nil
	}

	st, err := postgres.NewStorage(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

func setupLogger(level string) *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stderr, slogcustom.ParseLevel(level)))
}
