package main

import (
	"encoding/json"
	"os"
	"time"

	nats "github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/alittlebrighter/rcswitch"
	"github.com/alittlebrighter/rcswitch/models"
	"github.com/alittlebrighter/rcswitch/util"
)

func main() {
	defaults := rcswitch.DefaultConfig().NATS

	app := cli.NewApp()
	app.Name = "natssend"
	app.Usage = "Publish a switch command on the message bus and print the resulting events"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "natsUrl", Value: nats.DefaultURL, Usage: "Url for NATS instance to connect to."},
		cli.StringFlag{Name: "subject", Value: defaults.Subject, Usage: "Subject commands are published on."},
		cli.StringFlag{Name: "eventSubject", Value: defaults.EventSubject, Usage: "Subject events are read from."},
		cli.StringFlag{Name: "address, a", Usage: "Address of the plug, e.g. 11111"},
		cli.StringFlag{Name: "channel, c", Usage: "Channel of the plug, A to D"},
		cli.StringFlag{Name: "set, s", Usage: "State of the plug: ON or OFF"},
		cli.StringFlag{Name: "raw, r", Usage: "Raw AAAAACS command, sent instead of address/channel/set"},
		cli.DurationFlag{Name: "wait, w", Value: 2 * time.Second, Usage: "How long to listen for events."},
	}
	app.Action = publish

	if err := app.Run(os.Args); err != nil {
		logrus.Fatalln(err)
	}
}

func publish(ctx *cli.Context) error {
	cmd := &models.SwitchCommand{
		Command: ctx.String("raw"),
		Address: ctx.String("address"),
		Channel: ctx.String("channel"),
		State:   ctx.String("set"),
	}
	if _, err := cmd.Raw(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	nc, err := nats.Connect(ctx.String("natsUrl"))
	if err != nil {
		return err
	}
	defer nc.Close()
	logrus.Println("Connected to NATS.")

	events := make(chan *util.EventLog, 1)
	sub, err := nc.Subscribe(ctx.String("eventSubject"), func(m *nats.Msg) {
		event := new(util.EventLog)
		if err := json.Unmarshal(m.Data, event); err != nil {
			logrus.Println("could not parse event from NATS")
			return
		}
		select {
		case events <- event:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	dat, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	if err = nc.Publish(ctx.String("subject"), dat); err != nil {
		return err
	}
	nc.Flush()

	select {
	case event := <-events:
		entry := logrus.WithFields(logrus.Fields{"command": event.Command, "codeword": event.Codeword})
		if !event.Sent() {
			entry.Warn("switch rejected command: " + event.Error)
		} else {
			entry.Info("switch sent command")
		}
	case <-time.After(ctx.Duration("wait")):
		logrus.Warn("no event received")
	}
	return nil
}
