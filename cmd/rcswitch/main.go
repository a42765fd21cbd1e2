package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/alittlebrighter/rcswitch"
	"github.com/alittlebrighter/rcswitch/transmitter"
)

func main() {
	app := cli.NewApp()
	app.Name = "rcswitch"
	app.Usage = "Switch 433MHz remote power outlets through a GPIO connected transmitter"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: rcswitch.DefaultConfigPath,
			Usage: "Path to the configuration file to use.",
		},
		cli.StringFlag{
			Name:  "driver",
			Usage: "Transmitter driver, overrides the configuration (rpio, embd, periph or dryrun).",
		},
		cli.StringFlag{
			Name:  "loglevel, L",
			Usage: "Log level (debug|info|warning|error), overrides the configuration.",
		},
		cli.StringFlag{
			Name:  "logfile, l",
			Usage: "Log file, overrides the configuration.",
		},
	}
	app.Commands = COMMANDS

	if err := app.Run(os.Args); err != nil {
		logrus.Fatalln(err)
	}
}

// openSwitch loads the configuration, sets up logging and opens the
// transmitter. The returned cleanup shuts the switch down and closes the log.
func openSwitch(ctx *cli.Context) (*rcswitch.Switch, func(), error) {
	config, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	logFile, err := setupLogging(config.Log)
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"driver": config.Transmitter.Driver,
		"tx":     config.Transmitter.Pins.TX,
		"en":     config.Transmitter.Pins.EN,
		"pulse":  config.PulseUnit(),
	}).Info("opening transmitter")

	dev, err := transmitter.NewDevice(config.Transmitter.Driver, config.Transmitter.Pins)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, nil, err
	}

	sw := rcswitch.New(config, dev)
	cleanup := func() {
		if err := sw.Shutdown(); err != nil {
			logrus.WithError(err).Error("could not shut down transmitter")
		}
		if logFile != nil {
			logFile.Close()
		}
	}
	return sw, cleanup, nil
}
