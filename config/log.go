package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const LogFormatEnv = "CSPR_LOG_FORMAT"

// ConfigureLogger sets the log level from the -v count and the formatter
// from CSPR_LOG_FORMAT (json, text, color-text).
func ConfigureLogger(verbosity int) {
	switch {
	case verbosity <= 0:
		logrus.SetLevel(logrus.WarnLevel)
	case verbosity == 1:
		logrus.SetLevel(logrus.InfoLevel)
	case verbosity == 2:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.TraceLevel)
	}

	format := os.Getenv(LogFormatEnv)
	if format == "" {
		format = "color-text"
	}
	switch strings.ToLower(format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
		})
	case "color-text":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: false,
			ForceColors:   true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format":  format,
			"options": []string{"json", "text", "color-text"},
		}).Warn("unknown log format")
	}
}
