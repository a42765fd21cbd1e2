package main

import (
	"bytes"
	"encoding/json"
	"io"

	nats "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alittlebrighter/rcswitch"
	"github.com/alittlebrighter/rcswitch/models"
	"github.com/alittlebrighter/rcswitch/util"
)

type messageBus struct {
	nc     *nats.Conn
	config rcswitch.NATSConfig
}

// connectBus returns nil without error when no URL is configured.
func connectBus(config rcswitch.NATSConfig) (*messageBus, error) {
	if config.URL == "" {
		return nil, nil
	}

	nc, err := nats.Connect(config.URL, nats.Name("rcswitch"))
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to %s", config.URL)
	}
	logrus.WithField("url", config.URL).Info("Connected to NATS.")

	return &messageBus{nc: nc, config: config}, nil
}

// subscribe forwards every command published on the command subject to w.
func (bus *messageBus) subscribe(w io.StringWriter) error {
	_, err := bus.nc.Subscribe(bus.config.Subject, func(m *nats.Msg) {
		raw, err := decodeCommand(m.Data)
		if err != nil {
			logrus.WithError(err).WithField("subject", m.Subject).Warn("could not parse command from NATS")
			return
		}
		logrus.WithField("command", raw).Debug("got command from NATS")
		if _, err := w.WriteString(raw); err != nil {
			logrus.WithError(err).Error("could not queue command from NATS")
		}
	})
	return errors.Wrapf(err, "could not subscribe to %s", bus.config.Subject)
}

func (bus *messageBus) publish(event *util.EventLog) {
	if bus.config.EventSubject == "" {
		return
	}

	dat, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("could not encode event")
		return
	}
	if err := bus.nc.Publish(bus.config.EventSubject, dat); err != nil {
		logrus.WithError(err).Warn("could not publish event")
	}
}

func (bus *messageBus) Close() {
	bus.nc.Close()
}

// decodeCommand accepts a JSON models.SwitchCommand or a bare command string.
func decodeCommand(data []byte) (string, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		cmd := new(models.SwitchCommand)
		if err := json.Unmarshal(trimmed, cmd); err != nil {
			return "", err
		}
		return cmd.Raw()
	}
	return string(data), nil
}
