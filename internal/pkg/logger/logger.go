package logger

import (
	"io"
	"os"
	"strings"

	"github.com/ds124wfegd/mineru-extract/config"
	"github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger to write to out, os.Stdout when
// nil. Unknown levels fall back to info.
func Setup(cfg config.LogConfig, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetOutput(out)

	if strings.EqualFold(cfg.Format, "text") {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(new(logrus.JSONFormatter))
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
