package app

import (
	"fmt"
	"strings"

	"github.com/charlesng35/codeshelf/pkg/logger"
)

// ConfigureLogging initialises the global logger from server.log_level and
// server.log_format. Empty values mean info and json.
func ConfigureLogging(level, format string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}

	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = "json"
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format %q (want json or console)", format)
	}
	return logger.InitWithFormat(level, format)
}
