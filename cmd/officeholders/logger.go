package main

import (
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"officeholders/internal/config"
)

// newLogger 按配置创建日志；verbose 强制 debug 级别
func newLogger(cfg config.LogConfig, verbose bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}

	level := logrus.InfoLevel
	if cfg.Level != "" {
		lv, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrap(err, "log level")
		}
		level = lv
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return log, nil
}
