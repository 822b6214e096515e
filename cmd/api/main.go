package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendar-assistant/config"
	"calendar-assistant/config/database"
	redisConn "calendar-assistant/config/redis"
	_ "calendar-assistant/docs" // Swagger docs
	calendarUC "calendar-assistant/internal/calendar/usecase"
	"calendar-assistant/internal/httpserver"
	"calendar-assistant/internal/middleware"
	"calendar-assistant/pkg/csrf"
	"calendar-assistant/pkg/datemath"
	"calendar-assistant/pkg/gcalendar"
	"calendar-assistant/pkg/llmprovider"
	"calendar-assistant/pkg/log"
	"calendar-assistant/pkg/ratelimit"
	"calendar-assistant/pkg/scope"
)

// @title       Calendar Assistant API
// @description Natural-language calendar commands behind an authenticated, rate-limited trust boundary.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Server exited with error: ", err)
		stop()
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting Calendar Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, dialect, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Infof(ctx, "Database connected (driver: %s)", cfg.Database.Driver)

	// 4. Rate limiter: Redis when shared across instances, memory otherwise
	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		client, err := redisConn.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		limiter = ratelimit.NewRedis(client, "calendar-assistant:ratelimit:")
		logger.Infof(ctx, "Rate limiter: redis at %s", cfg.Redis.Addr)
	} else {
		mem := ratelimit.NewMemory(ratelimit.WithLogger(logger))
		if err := mem.Start(cfg.RateLimit.SweepInterval); err != nil {
			return err
		}
		defer mem.Stop()
		limiter = mem
		logger.Infof(ctx, "Rate limiter: in-memory (sweep every %s)", cfg.RateLimit.SweepInterval)
	}

	// 5. Sessions and CSRF
	jwtManager, err := scope.New(cfg.Session.Secret, cfg.Session.Issuer)
	if err != nil {
		return err
	}

	var csrfStore *csrf.Store
	if cfg.CSRF.Enabled {
		csrfStore = csrf.NewStore(cfg.CSRF.Capacity, cfg.CSRF.TTL)
	} else {
		logger.Warn(ctx, "CSRF protection is disabled")
	}

	mw := middleware.New(logger, jwtManager, limiter, csrfStore, middleware.Config{
		CookieName:   cfg.Session.CookieName,
		CSRFHeader:   cfg.CSRF.Header,
		MaxBodyBytes: cfg.HTTPServer.MaxBodyBytes,
	})

	// 6. LLM providers
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("initialize LLM providers: %w", err)
	}
	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	maxTotalTimeout, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled:   cfg.LLM.FallbackEnabled,
		RetryAttempts:     cfg.LLM.RetryAttempts,
		RetryDelay:        retryDelay,
		MaxTotalTimeout:   maxTotalTimeout,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
	}, logger)
	logger.Infof(ctx, "LLM providers ready: %d", len(providers))

	// 7. DateMath parser
	dateMathParser, err := datemath.NewParser(cfg.Command.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Command.Timezone, err)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	// 8. Google Calendar mirror (optional)
	var mirror calendarUC.Mirror
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, gErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if gErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", gErr)
			logger.Warn(ctx, "Run `go run ./scripts/gcal-auth` to generate token.json")
		} else {
			mirror = calendarClient
			logger.Info(ctx, "Google Calendar mirror initialized")
		}
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		DB:              db,
		Dialect:         dialect,
		Middleware:      mw,
		CSRFStore:       csrfStore,
		RateClasses: httpserver.RateClasses{
			AI:   ratelimit.Class{Name: "ai", Limit: cfg.RateLimit.AI.Limit, Window: cfg.RateLimit.AI.Window},
			Read: ratelimit.Class{Name: "read", Limit: cfg.RateLimit.Read.Limit, Window: cfg.RateLimit.Read.Window},
			Auth: ratelimit.Class{Name: "auth", Limit: cfg.RateLimit.Auth.Limit, Window: cfg.RateLimit.Auth.Window},
		},
		LLM:      llm,
		Mirror:   mirror,
		DateMath: dateMathParser,
		CalendarUC: calendarUC.Config{
			ModelTimeout:      cfg.Command.ModelTimeout,
			ContextPastDays:   cfg.Command.ContextPastDays,
			ContextFutureDays: cfg.Command.ContextFutureDays,
			ContextMaxEvents:  cfg.Command.ContextMaxEvents,
			CalendarID:        cfg.GoogleCalendar.CalendarID,
		},
	})
	if err != nil {
		return fmt.Errorf("initialize HTTP server: %w", err)
	}

	// 10. Run until SIGINT/SIGTERM
	return httpServer.Run(ctx)
}
