package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "modernc.org/sqlite"

	"heavygym/internal/adapters/auth"
	emailPkg "heavygym/internal/adapters/email"
	"heavygym/internal/adapters/notify"
	"heavygym/internal/adapters/storage"
	accountStore "heavygym/internal/adapters/storage/account"
	profileStore "heavygym/internal/adapters/storage/profile"
	"heavygym/internal/adapters/terminal"
	"heavygym/internal/application/orchestrators"
	"heavygym/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadFromOS()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local database: accounts, the persisted session and, by default, profiles.
	dsn := cfg.SQLitePath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	localDB := storage.NewTimedDB(db, "sqlite", cfg.SlowQueryMs)

	profiles, closeProfiles, err := openProfileStore(ctx, cfg, localDB)
	if err != nil {
		log.Fatalf("failed to open profile store: %v", err)
	}
	defer closeProfiles()

	gateway := auth.NewLocalGateway(auth.LocalGatewayDeps{
		Accounts: accountStore.NewSQLiteStore(localDB),
		Tokens:   auth.NewTokenIssuer(cfg.JWTSigningKey, cfg.SessionTTL, nil),
	})

	notifier := buildNotifier(cfg)

	boot, initial, err := orchestrators.StartSessionBootstrap(ctx, orchestrators.SessionBootstrapDeps{
		Gateway:                gateway,
		Store:                  profiles,
		RequireTrainingProfile: cfg.RequireTrainingProfile,
		Timeout:                cfg.CallTimeout,
	})
	if err != nil {
		log.Fatalf("failed to start session bootstrap: %v", err)
	}
	defer boot.Close()
	slog.Info("client_started", "version", version, "env", cfg.Env, "profile_store", cfg.ProfileStore, "state", string(initial.State))

	form := orchestrators.NewOnboardingForm(orchestrators.OnboardingFormDeps{
		Sessions: gateway,
		Store:    profiles,
		Notifier: notifier,
		Timeout:  cfg.CallTimeout,
	})

	app := terminal.NewApp(terminal.AppDeps{
		Prompter: terminal.NewPrompter(os.Stdin, os.Stdout),
		Gateway:  gateway,
		Store:    profiles,
		Router:   boot,
		Form:     form,
		Timeout:  cfg.CallTimeout,
	})
	if err := app.Run(ctx); err != nil {
		log.Fatalf("client failed: %v", err)
	}
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	// Logs go to stderr so they do not interleave with the screens on stdout.
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openProfileStore returns the configured profile store and its closer.
func openProfileStore(ctx context.Context, cfg *config.Config, local *storage.TimedDB) (profileStore.Store, func(), error) {
	if cfg.ProfileStore != config.DriverPostgres {
		return profileStore.NewSQLiteStore(local), func() {}, nil
	}
	pg, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.RunMigrations(ctx, pg); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}
	timed := storage.NewTimedDB(pg, "postgres", cfg.SlowQueryMs)
	return profileStore.NewPostgresStore(timed), func() { timed.Close() }, nil
}

// buildNotifier fans out to every configured channel, or returns nil when
// none is configured so the commit skips the notification step.
func buildNotifier(cfg *config.Config) notify.Notifier {
	var channels notify.Multi
	if cfg.WebhookURL != "" {
		channels = append(channels, notify.NewWebhookNotifier(cfg.WebhookURL, &http.Client{}))
		slog.Info("notifier_configured", "channel", "webhook")
	}
	if cfg.CoachEmail != "" {
		var sender emailPkg.Sender
		if cfg.ResendAPIKey != "" {
			sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
			slog.Info("notifier_configured", "channel", "email", "sender", "resend")
		} else {
			sender = emailPkg.NewNoopSender()
			if cfg.IsProduction() {
				slog.Warn("notifier_configured", "channel", "email", "sender", "noop", "warning", "HEAVYGYM_RESEND_KEY is not set")
			}
		}
		channels = append(channels, notify.NewEmailNotifier(sender, strings.TrimSpace(cfg.CoachEmail)))
	}
	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	}
	return channels
}
