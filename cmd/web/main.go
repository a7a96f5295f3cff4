package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/envstruct"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/logging"
	"github.com/myrjola/soverain/internal/metrics"
	"github.com/myrjola/soverain/internal/pprofserver"
	"github.com/myrjola/soverain/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	db             *sqlite.Database
	// catalog is the shared base catalog. Visitors layer their own additions over a clone of it.
	catalog *catalog.Registry
	metrics *metrics.Metrics
	now     func() time.Time
}

type config struct {
	// Addr is the address to listen on. Use "localhost:0" for a random port.
	Addr            string        `env:"SOVERAIN_ADDR" envDefault:"localhost:4000"`
	SqliteURL       string        `env:"SOVERAIN_SQLITE_URL" envDefault:"./soverain.sqlite"`
	SessionLifetime time.Duration `env:"SOVERAIN_SESSION_LIFETIME" envDefault:"12h"`
	// CatalogPath points to an optional YAML file of extra catalog entries.
	CatalogPath string `env:"SOVERAIN_CATALOG_PATH" envDefault:""`
	// PprofAddr enables the pprof server on the loopback interface, e.g., ":6060".
	PprofAddr     string `env:"SOVERAIN_PPROF_ADDR" envDefault:""`
	SecureCookies bool   `env:"SOVERAIN_SECURE_COOKIES" envDefault:"false"`
}

const sessionCleanupInterval = 30 * time.Minute

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cfg config
		err error
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(ctx, cfg.PprofAddr, logger)
	}

	var db *sqlite.Database
	if db, err = sqlite.Connect(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "connect to database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	var registry *catalog.Registry
	if registry, err = loadCatalog(cfg.CatalogPath); err != nil {
		return errors.Wrap(err, "load catalog", slog.String("path", cfg.CatalogPath))
	}

	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite, sessionCleanupInterval)
	defer store.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		db:             db,
		catalog:        registry,
		metrics:        metrics.New(),
		now:            time.Now,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// loadCatalog seeds the catalog and appends the entries of the YAML file at path, if any.
func loadCatalog(path string) (*catalog.Registry, error) {
	registry := catalog.NewRegistry()
	if path == "" {
		return registry, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file")
	}
	defer func() {
		_ = f.Close()
	}()
	if err = registry.LoadYAML(f); err != nil {
		return nil, errors.Wrap(err, "parse catalog file")
	}
	return registry, nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)

	// A .env file is optional; the environment wins over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
