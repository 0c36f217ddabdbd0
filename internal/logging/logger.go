package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger: JSON in production, console
// elsewhere, optionally teeing into a log file next to stdout.
func New(environment, logFile string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(environment), "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logFile = strings.TrimSpace(logFile)
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, logFile)
	}

	return cfg.Build()
}
