package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/codeshelf/internal/api"
	"github.com/charlesng35/codeshelf/internal/app"
	"github.com/charlesng35/codeshelf/internal/app/maintenance"
	"github.com/charlesng35/codeshelf/internal/database"
	"github.com/charlesng35/codeshelf/internal/monitoring/checks"
	"github.com/charlesng35/codeshelf/internal/services"
	"github.com/charlesng35/codeshelf/pkg/logger"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime opens the database, builds the dedupe cleaner and the HTTP router. The
// cleaner is not started here.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	snippets, err := services.NewSnippetService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise snippet service: %w", err)
	}

	dedupe := cfg.Maintenance.Dedupe
	stack.Cleaner = maintenance.NewCleaner(snippets,
		maintenance.WithSchedule(dedupe.Schedule),
		maintenance.WithStrategy(maintenance.ParseStrategy(dedupe.Strategy)),
		maintenance.WithDryRun(dedupe.DryRun),
	)

	stack.Router, err = api.NewRouter(stack.DB, cfg, api.WithReadinessCheck(checks.Maintenance(stack.Cleaner)))
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			ctx = stopCtx
		}
		<-ctx.Done()
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		closeDatabase(db, logger.WithModule("database"))
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	if cfg.Database.Seed {
		if err := database.SeedData(db); err != nil {
			closeDatabase(db, logger.WithModule("database"))
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	log := logger.WithModule("database")
	log.Info("database connected",
		zap.String("driver", dbCfg.Driver),
		zap.Bool("seeded", cfg.Database.Seed),
	)

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
		Pool: database.PoolConfig{
			MaxOpenConns:    cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:    cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.Pool.ConnMaxLifetime,
		},
	}

	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		applyAuth(&dbCfg, cfg.Database.Postgres)
	case "mysql":
		applyAuth(&dbCfg, cfg.Database.MySQL)
	default:
		// Leave driver as-is to surface unsupported driver error during open.
	}

	return dbCfg
}

func applyAuth(dbCfg *database.Config, auth app.DBAuthConfig) {
	dbCfg.Host = strings.TrimSpace(auth.Host)
	dbCfg.Port = auth.Port
	dbCfg.Name = strings.TrimSpace(auth.Database)
	dbCfg.User = strings.TrimSpace(auth.Username)
	dbCfg.Password = strings.TrimSpace(auth.Password)
	dbCfg.Options = auth.Options
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
