package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"minimarks/internal/config"
	"minimarks/internal/httpserver"
	"minimarks/internal/httpserver/deps"
	"minimarks/internal/logger"
	"minimarks/internal/redis"
	"minimarks/internal/session"
	"minimarks/internal/sources/bookmarkfile"
	"minimarks/internal/store/sqlstore"
	"minimarks/internal/version"
	"minimarks/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *sqlstore.SQLStore
	redisClient *goredis.Client
	memSessions *session.MemoryStore // nil when Redis sessions are active
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the database - fail fast if unavailable
	loggerClient.Infof("Opening %s database at %s", cfg.DBDriver, cfg.DBConn)
	store, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
	if err != nil {
		loggerClient.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}

	// Session backend: Redis when configured, in-memory otherwise
	var (
		sessions    session.Store
		redisClient *goredis.Client
		memSessions *session.MemoryStore
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		sessions = session.NewRedisStore(redisClient, cfg.SessionTTL)
		loggerClient.Info("redis session store initialized")
	} else {
		memSessions = session.NewMemoryStore(cfg.SessionTTL)
		sessions = memSessions
		loggerClient.Info("in-memory session store initialized, logins will not survive restarts")
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		loggerClient.Errorf("Failed to parse templates: %v", err)
		os.Exit(1)
	}

	// One-shot bookmark import when configured
	if cfg.ImportFile != "" {
		n, err := bookmarkfile.Import(context.Background(), store, loggerClient, cfg.ImportFile, cfg.ImportUser)
		if err != nil {
			loggerClient.Warn("bookmark import failed",
				logger.String("file", cfg.ImportFile),
				logger.Int("imported", n),
				logger.Error(err))
		}
	}

	d := deps.Deps{
		Logger:            loggerClient,
		Store:             store,
		Sessions:          sessions,
		Renderer:          renderer,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		PerPage:           cfg.PerPage,
		SessionTTL:        cfg.SessionTTL,
		AllowedHosts:      cfg.AllowedHosts,
		TrustProxy:        cfg.TrustProxy,
		LoginBurst:        cfg.LoginBurst,
		LoginRefillPerMin: cfg.LoginRefillPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		store:       store,
		redisClient: redisClient,
		memSessions: memSessions,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting minimarks %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("minimarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the expiry sweeper for in-memory sessions
	if a.memSessions != nil {
		a.memSessions.StartSweeper(ctx, a.cfg.SessionSweepInterval, a.logger)
		a.logger.Info("session sweeper started",
			logger.Duration("interval", a.cfg.SessionSweepInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.memSessions != nil {
		a.memSessions.StopSweeper()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	}

	a.logger.Info("minimarks stopped cleanly")
	return nil
}
