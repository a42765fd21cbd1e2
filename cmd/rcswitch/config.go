package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/alittlebrighter/rcswitch"
)

// loadConfig reads the configuration file and applies command line overrides.
// A missing file at the default location falls back to the defaults.
func loadConfig(ctx *cli.Context) (rcswitch.Config, error) {
	path := ctx.GlobalString("config")

	var (
		config rcswitch.Config
		err    error
	)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) && !ctx.GlobalIsSet("config") {
		logrus.Warnf("no configuration at %s, using defaults", path)
		config = rcswitch.DefaultConfig()
	} else if config, err = rcswitch.ReadConfig(path); err != nil {
		return config, err
	}

	if driver := ctx.GlobalString("driver"); driver != "" {
		config.Transmitter.Driver = driver
	}
	if level := ctx.GlobalString("loglevel"); level != "" {
		config.Log.Level = level
	}
	if file := ctx.GlobalString("logfile"); file != "" {
		config.Log.File = file
	}

	return config, config.Validate()
}

// logCloser points the standard logger back at stderr when the log file is
// closed.
type logCloser struct {
	*os.File
}

func (f logCloser) Close() error {
	logrus.SetOutput(os.Stderr)
	return f.File.Close()
}

// setupLogging configures the standard logrus logger. The returned closer is
// the log file, if one was opened.
func setupLogging(config rcswitch.LogConfig) (io.Closer, error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if config.Level != "" {
		level, err := logrus.ParseLevel(config.Level)
		if err != nil {
			return nil, errors.Wrap(err, "unknown log level")
		}
		logrus.SetLevel(level)
	}

	if config.File == "" {
		return nil, nil
	}

	f, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open log file %s", config.File)
	}
	logrus.SetOutput(f)
	return logCloser{f}, nil
}
