package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/askdesk/askdesk/internal/api"
	"github.com/askdesk/askdesk/internal/api/handler"
	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
	"github.com/askdesk/askdesk/internal/core/service"
	"github.com/askdesk/askdesk/internal/infrastructure/credentials"
	mongodb "github.com/askdesk/askdesk/internal/infrastructure/db/mongo"
	redisdb "github.com/askdesk/askdesk/internal/infrastructure/db/redis"
	"github.com/askdesk/askdesk/internal/infrastructure/llm"
	"github.com/askdesk/askdesk/internal/infrastructure/llm/gemini"
	"github.com/askdesk/askdesk/internal/infrastructure/queue"
	"github.com/askdesk/askdesk/internal/infrastructure/resume"
	"github.com/askdesk/askdesk/internal/infrastructure/retrieval"
	"github.com/askdesk/askdesk/internal/pkg/config"
	"github.com/askdesk/askdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port, overrides PORT")
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: appName,
	})

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	defer a.close()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := a.echo.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// app owns the wired HTTP server and every connection opened for it.
type app struct {
	echo    *echo.Echo
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}
	readiness := handler.NewReadinessHandler()

	completer, embedder, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := buildCredentialStore(ctx, cfg, log, a, readiness)
	if err != nil {
		a.close()
		return nil, err
	}

	limiter := buildLoginLimiter(ctx, cfg, log, a, readiness)

	registry, err := buildRegistry(cfg, embedder, log, a, readiness)
	if err != nil {
		a.close()
		return nil, err
	}

	tokens, err := service.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		a.close()
		return nil, err
	}

	resumes := resume.LoadSource(cfg.JobIntake.ResumeSeedPath, log)
	synth := service.NewSynthesizer(completer)
	dispatcher := queue.NewDispatcher(cfg.JobIntake.ExplainWorkers, logger.Component(log, "explain_dispatcher"))

	a.echo = api.NewRouter(api.Dependencies{
		Log:                  log,
		Tokens:               tokens,
		Auth:                 service.NewAuthService(store, tokens, limiter, logger.Component(log, "auth")),
		Ask:                  service.NewAskService(registry, synth, cfg.Ask.Timeout, logger.Component(log, "ask")),
		Jobs:                 service.NewJobMatcher(resumes, synth, dispatcher, logger.Component(log, "job_matcher")),
		Resumes:              resumes,
		Readiness:            readiness,
		JobIntakeRequireAuth: cfg.JobIntake.RequireAuth,
	})

	log.Info().
		Strs("retrievers", registry.Names()).
		Str("credential_backend", cfg.Auth.CredentialBackend).
		Bool("login_throttle", limiter != nil).
		Bool("job_intake_auth", cfg.JobIntake.RequireAuth).
		Msg("application wired")
	return a, nil
}

func buildLLM(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Completer, ports.Embedder, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set: answers return 502 and embeddings are unavailable")
		u := llm.Unavailable{Reason: "GEMINI_API_KEY not set"}
		return u, u, nil
	}
	client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbeddingModel)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("model", client.Model()).Msg("gemini client ready")
	return client, client, nil
}

func buildCredentialStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, readiness *handler.ReadinessHandler) (ports.CredentialStore, error) {
	if cfg.Auth.CredentialBackend == config.CredentialBackendMongo {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = mongodb.Disconnect(client) })
		readiness.Add("mongodb", mongodb.Pinger(client))

		store := mongodb.NewCredentialStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo credential store ready")
		return store, nil
	}

	users, err := credentials.ParseUsers(cfg.Auth.Users)
	if err != nil {
		return nil, fmt.Errorf("AUTH_USERS: %w", err)
	}
	if cfg.UsesDefaultUsers() {
		log.Warn().Msg("using the built-in demo credential table; set AUTH_USERS outside development")
	}
	store, err := credentials.NewMemoryStore(users, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// buildLoginLimiter returns nil when Redis is not configured or not
// reachable at startup; logins are then never throttled.
func buildLoginLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger, a *app, readiness *handler.ReadinessHandler) ports.LoginLimiter {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		return nil
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	readiness.Add("redis", redisdb.Pinger(rdb))
	return redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)
}

func buildRegistry(cfg *config.Config, embedder ports.Embedder, log zerolog.Logger, a *app, readiness *handler.ReadinessHandler) (*retrieval.Registry, error) {
	registry := retrieval.NewRegistry(logger.Component(log, "retrievers"))

	for _, name := range cfg.RetrieverNames() {
		var r ports.Retriever
		switch domain.SourceKind(name) {
		case domain.SourceMock:
			r = retrieval.Mock{}
		case domain.SourceFlat:
			idx, err := retrieval.LoadFlatIndex(cfg.Retrieval.FlatIndexPath, embedder, cfg.Retrieval.FlatTopK, log)
			if err != nil {
				return nil, err
			}
			r = idx
		case domain.SourceQdrant:
			if cfg.Qdrant.Host == "" {
				log.Warn().Msg("QDRANT_HOST not set, qdrant retriever disabled")
				continue
			}
			client, err := retrieval.NewQdrantClient(cfg.Qdrant.Host, cfg.Qdrant.Port, cfg.Qdrant.APIKey, cfg.Qdrant.UseTLS)
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, func() { _ = client.Close() })
			readiness.Add("qdrant", func(ctx context.Context) error {
				_, err := client.HealthCheck(ctx)
				return err
			})
			r = retrieval.NewQdrantRetriever(client, cfg.Qdrant.Collection, cfg.Qdrant.TopK, embedder)
		default:
			return nil, fmt.Errorf("RETRIEVERS: unknown retriever %q", name)
		}
		if err := registry.Register(name, r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
