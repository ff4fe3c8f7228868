package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/Chative-fare-advisor/server/internal/advisor"
	"github.com/Chative-fare-advisor/server/internal/agent/graph"
	"github.com/Chative-fare-advisor/server/internal/agent/graph/conversations"
	"github.com/Chative-fare-advisor/server/internal/agent/model"
	"github.com/Chative-fare-advisor/server/internal/agent/repo"
	"github.com/Chative-fare-advisor/server/internal/core"
	"github.com/Chative-fare-advisor/server/internal/dialogue"
	"github.com/Chative-fare-advisor/server/internal/flights"
	"github.com/Chative-fare-advisor/server/internal/server"
	"github.com/Chative-fare-advisor/server/internal/session"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
	pkgredis "github.com/Chative-fare-advisor/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the advisor,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	HTTP  server.Config
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Flight offers provider
	Amadeus flights.Config
	Search  model.SearchConfig

	// Agent configs
	Extractor model.ExtractorModelConfig
	Answer    model.AnswerModelConfig
	Session   model.SessionConfig
}

func main() {
	// default console logger until APP_ENV is known
	logx.Init()
	if err := godotenv.Load(".env"); err != nil {
		logx.Warn().Err(err).Msg("Could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	env := core.ParseEnvironment(cfg.AppEnv)
	logx.Init(logx.LoggerOpts{Environment: env, Level: cfg.LogLevel})
	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logx.Fatal().Err(err).Msg("Fare advisor stopped with error")
	}
	logx.Info().Msg("Fare advisor stopped gracefully")
}

func run(ctx context.Context, cfg AppConfig) error {
	sessionTTL, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		return errors.Join(errors.New("invalid SESSION_TTL"), err)
	}
	sweepInterval, err := time.ParseDuration(cfg.Session.SweepInterval)
	if err != nil {
		return errors.Join(errors.New("invalid SESSION_SWEEP_INTERVAL"), err)
	}
	transcriptTTL, err := time.ParseDuration(cfg.Session.TranscriptTTL)
	if err != nil {
		return errors.Join(errors.New("invalid TRANSCRIPT_TTL"), err)
	}

	var transcripts model.TranscriptRepository = repo.NewMemoryTranscriptRepository()
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return errors.Join(errors.New("failed to initialise Redis client"), err)
		}
		defer rdb.Close()
		transcripts = repo.NewRedisTranscriptRepository(rdb, transcriptTTL)
		logx.Info().Msg("Connected to Redis successfully")
	}

	oracle, err := graph.BuildOracle(ctx, graph.Config{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Extractor: cfg.Extractor,
		Answer:    cfg.Answer,
	})
	if err != nil {
		return err
	}

	amadeus, err := flights.NewClient(cfg.Amadeus)
	if err != nil {
		return err
	}

	messages := conversations.NewMessagesManager(transcripts, cfg.Session)
	store := session.NewStore(sessionTTL, session.WithEvictHook(messages.OnEvict()))

	svc, err := advisor.New(advisor.Deps{
		Store:     store,
		Machine:   dialogue.NewMachine(cfg.Search),
		Extractor: oracle.Extractor,
		Answerer:  oracle.Answerer,
		Flights:   amadeus,
		Messages:  messages,
	})
	if err != nil {
		return err
	}

	srv := server.NewHTTPServer(cfg.HTTP, server.NewRouter(svc))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logx.Info().Str("addr", srv.Addr).Msg("Fare advisor listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return store.Run(gctx, sweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logx.Info().Msg("Fare advisor shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
