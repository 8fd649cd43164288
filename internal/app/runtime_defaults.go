package app

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// ApplyRuntimeDefaults repairs values that would otherwise stop the server from starting, such
// as an empty driver or an unparsable dedupe schedule. It returns the keys it changed so callers
// can log them.
func ApplyRuntimeDefaults(cfg *Config) (map[string]bool, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	changed := make(map[string]bool)

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 3001
		changed["server.port"] = true
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if driver == "" {
		driver = "sqlite"
		changed["database.driver"] = true
	}
	cfg.Database.Driver = driver

	switch driver {
	case "sqlite", "postgres", "postgresql", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
		changed["server.cors.allowed_origins"] = true
	}

	if strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint) == "" {
		cfg.Monitoring.Prometheus.Endpoint = "/metrics"
		changed["monitoring.prometheus.endpoint"] = true
	}

	dedupe := &cfg.Maintenance.Dedupe
	if strings.TrimSpace(dedupe.Schedule) == "" {
		dedupe.Schedule = "@daily"
		changed["maintenance.dedupe.schedule"] = true
	}
	if dedupe.Enabled {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(dedupe.Schedule); err != nil {
			return nil, fmt.Errorf("maintenance.dedupe.schedule: %w", err)
		}
	}

	return changed, nil
}
