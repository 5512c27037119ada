// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/quranfruits/internal/config"
)

// New returns a logrus logger writing to out. Unknown levels and formats are
// rejected so a typo in the environment is noticed at startup.
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    cfg.Timestamps,
			DisableTimestamp: !cfg.Timestamps,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			DisableTimestamp: !cfg.Timestamps,
		})
	default:
		return nil, fmt.Errorf("log format %q: want text or json", cfg.Format)
	}
	return logger, nil
}
