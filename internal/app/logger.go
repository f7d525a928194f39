package app

import (
	"strings"

	"github.com/ghatak0982/fleetcare/pkg/logger"
)

// ConfigureLogging initialises the global logger from the server settings.
func ConfigureLogging(level, format string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	return logger.Init(level, format)
}
