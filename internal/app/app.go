package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"parley/backend/internal/api"
	"parley/backend/internal/config"
	"parley/backend/internal/database"
	"parley/backend/internal/llm"
	"parley/backend/internal/masks"
	"parley/backend/internal/repository"
	"parley/backend/internal/search"
	"parley/backend/internal/service"
	"parley/backend/internal/store"
	"parley/backend/internal/tokenizer"
)

const shutdownTimeout = 15 * time.Second

// App owns every long-lived component of the server.
type App struct {
	Server       *http.Server
	KV           repository.KVStore
	Persister    *store.Persister
	Chats        *store.ChatStore
	Config       *store.ConfigStore
	Orchestrator *service.Orchestrator
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// NewApp opens storage, restores persisted state and wires the HTTP stack.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	kv, err := openKVStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage backend ready", "driver", cfg.StorageDriver)

	persister := store.NewPersister(kv, cfg.PersistDebounce)
	configStore := store.NewConfigStore(persister)
	if err := configStore.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("could not load configuration state: %w", err)
	}
	chats := store.NewChatStore(configStore, persister)
	if err := chats.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("could not load chat state: %w", err)
	}
	slog.Info("Restored chat state", "sessions", len(chats.ListSessions()))

	catalog, err := masks.Load(cfg.MasksPath)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	upstream := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	gateway := service.NewGatewayService(upstream, cfg.SystemPrompt)

	// The orchestrator talks to the gateway in-process unless a remote one is configured.
	var completer llm.Completer = gateway
	if cfg.CompletionURL != "" {
		completer = llm.NewHTTPCompleter(cfg.CompletionURL)
		slog.Info("Using remote completion gateway", "url", cfg.CompletionURL)
	}

	estimator := tokenizer.New(cfg.TiktokenDir)
	titles := service.NewTitleGenerator(chats, configStore, completer)
	compressor := service.NewContextCompressor(chats, configStore, completer, estimator)
	orchestrator := service.NewOrchestrator(chats, configStore, completer, titles, compressor, cfg.StreamSyncInterval)

	searchService := service.NewSearchService(fetcher, upstream)
	modelService := service.NewModelService(llm.NewModelLister(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL))

	router := api.NewRouter(api.Handlers{
		Chat:     api.NewChatHandler(orchestrator),
		Sessions: api.NewSessionHandler(chats, configStore, catalog),
		Config:   api.NewConfigHandler(configStore, catalog),
		Models:   api.NewModelHandler(modelService),
		Gateway:  api.NewGatewayHandler(gateway, searchService),
	})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{
		Server:       server,
		KV:           kv,
		Persister:    persister,
		Chats:        chats,
		Config:       configStore,
		Orchestrator: orchestrator,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down and
// flushes pending state.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Server shutdown did not complete cleanly", "error", err)
		}
		return a.Close(shutdownCtx)
	})

	return g.Wait()
}

// Close waits for background title and summary work, writes pending state
// and releases the storage backend.
func (a *App) Close(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		a.Orchestrator.Drain()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		slog.Warn("Gave up waiting for background tasks", "error", ctx.Err())
	}

	return errors.Join(a.Persister.Close(ctx), a.KV.Close())
}

func openKVStore(ctx context.Context, cfg *config.Config) (repository.KVStore, error) {
	switch strings.ToLower(cfg.StorageDriver) {
	case "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("could not initialize database: %w", err)
		}
		return repository.NewSQLiteRepository(db), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("could not reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return repository.NewRedisRepository(rdb, cfg.RedisPrefix), nil
	case "badger":
		return repository.NewBadgerRepository(cfg.BadgerDir)
	case "memory":
		return repository.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newFetcher(cfg *config.Config) (search.Fetcher, error) {
	switch strings.ToLower(cfg.SearchProvider) {
	case "browserless":
		return search.NewBrowserlessFetcher(cfg.BrowserlessBaseURL), nil
	case "duckduckgo":
		return search.NewDuckDuckGoFetcher(cfg.DuckDuckGoURL), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", cfg.SearchProvider)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
