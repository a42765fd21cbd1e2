package main

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/urfave/cli"

	"github.com/alittlebrighter/rcswitch"
)

var COMMANDS = []cli.Command{
	{
		Name:      "send",
		Usage:     "Send a raw command, e.g. 11111A1 switches channel A of address 11111 on",
		ArgsUsage: "<AAAAACS>",
		Action:    sendCommand,
	},
	{
		Name:  "switch",
		Usage: "Set the state of the switch with the given address and channel",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "address, a",
				Usage: "Address of the plug, five bits e.g. 11111",
			},
			cli.StringFlag{
				Name:  "channel, C",
				Usage: "Channel of the plug, A to D",
			},
			cli.StringFlag{
				Name:  "set, s",
				Usage: "State of the plug: ON or OFF",
			},
		},
		Action: switchCommand,
	},
	{
		Name:  "config",
		Usage: "Print the effective configuration as YAML",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "write, w",
				Usage: "Also write the configuration to this path",
			},
		},
		Action: configCommand,
	},
	ServeCommand,
}

func sendCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError("expected exactly one command, e.g. 11111A1", 1)
	}
	return transmitOnce(ctx, ctx.Args().First())
}

func switchCommand(ctx *cli.Context) error {
	raw, err := rcswitch.BuildCommand(ctx.String("address"), ctx.String("channel"), ctx.String("set"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return transmitOnce(ctx, raw)
}

// transmitOnce is the only writer in this process, so it calls the switch
// directly instead of going through a Control.
func transmitOnce(ctx *cli.Context, raw string) error {
	sw, cleanup, err := openSwitch(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := sw.Send(raw); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}

func configCommand(ctx *cli.Context) error {
	config, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dat, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	os.Stdout.Write(dat)

	if path := ctx.String("write"); path != "" {
		if err := rcswitch.SaveConfig(path, config); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "configuration written to %s\n", path)
	}
	return nil
}
