// Package logging builds the logrus logger shared by the commands.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/thurmanmarka/natalglide/internal/config"
)

// New returns a logger writing to w with level and formatter from cfg.
func New(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if cfg.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
