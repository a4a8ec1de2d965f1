package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam-scoring-service/internal/app"
	"exam-scoring-service/internal/config"
	"exam-scoring-service/internal/domain"
	"exam-scoring-service/internal/infra/memory"
	"exam-scoring-service/internal/infra/postgres"
	rediscache "exam-scoring-service/internal/infra/redis"
	"exam-scoring-service/internal/logger"
	"exam-scoring-service/internal/metrics"
	transport "exam-scoring-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the scoring server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer log.Sync()

	tokens, err := tokenService(cfg)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var tests app.TestRepository
	var results app.ResultRepository
	var ranks app.RankRepository

	var loader memory.TestLoader = memory.NewStaticTestLoader(sampleTests())
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := openBunDB(cfg.Postgres.URL)
		defer db.Close()

		loader = postgres.NewTestLoader(pool)
		results = postgres.NewResultStore(db)
		ranks = postgres.NewRankStore(db)
		log.Info("using postgres storage")
	} else {
		results = memory.NewResultStore()
		if redisClient != nil {
			ranks = rediscache.NewRankStore(redisClient)
		} else {
			ranks = memory.NewRankStore()
		}
		log.Info("using in-process storage with sample tests", zap.Bool("redis_ranks", redisClient != nil))
	}

	if redisClient != nil {
		tests = rediscache.NewTestRepository(redisClient, loader, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		tests = memory.NewTestRepository(loader, config.TTLDuration(cfg.Tests.TTL, 10*time.Minute))
	}

	roles := make([]domain.Role, 0, len(cfg.Ranking.PrivilegedRoles))
	for _, r := range cfg.Ranking.PrivilegedRoles {
		roles = append(roles, domain.Role(r))
	}
	service := app.NewExamService(tests, results, ranks,
		app.WithLogger(log),
		app.WithLeaderboardSize(cfg.Ranking.LeaderboardSize),
		app.WithPrivilegedRoles(roles...),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(registry); err != nil {
		return err
	}

	handler := transport.NewRouter(
		transport.NewExamHandler(service, log),
		tokens,
		log,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting exam scoring service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleTests seeds the in-process loader when no database is configured.
func sampleTests() map[string]domain.Test {
	correct, wrong := 4.0, 1.0
	return map[string]domain.Test{
		"test-1": {
			ID:    "test-1",
			Title: "Arithmetic basics",
			Questions: []domain.Question{
				{QuestionText: "What is 2 + 2?", Options: []string{"3", "4", "5", "22"}, CorrectAnswer: 1},
				{QuestionText: "What is 3 * 3?", Options: []string{"6", "9", "12", "33"}, CorrectAnswer: 1},
				{QuestionText: "What is 10 / 2?", Options: []string{"2", "4", "5", "8"}, CorrectAnswer: 2},
				{QuestionText: "What is 7 - 3?", Options: []string{"4", "3", "10", "1"}, CorrectAnswer: 0},
			},
			Marks: domain.MarkingScheme{Correct: &correct, Wrong: &wrong},
		},
	}
}
