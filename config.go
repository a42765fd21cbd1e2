package rcswitch

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alittlebrighter/rcswitch/transmitter"
)

const DefaultConfigPath = "/etc/rcswitch.conf"

// Config holds everything needed to run a switch. It is read once at startup
// and passed around by value.
type Config struct {
	Transmitter TransmitterConfig `json:"transmitter"`
	ServeAt     string            `json:"serveAt"`
	DocRoot     string            `json:"docRoot"`
	History     uint              `json:"history"`
	NATS        NATSConfig        `json:"nats"`
	Log         LogConfig         `json:"log"`
}

type TransmitterConfig struct {
	Driver string           `json:"driver"`
	Pins   transmitter.Pins `json:"pins"`
	// PulseDuration is the timing unit in microseconds.
	PulseDuration int `json:"pulseDuration"`
}

// NATSConfig is optional; an empty URL disables the message bus.
type NATSConfig struct {
	URL          string `json:"url"`
	Subject      string `json:"subject"`
	EventSubject string `json:"eventSubject"`
}

type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// DefaultConfig matches the usual wiring: TX on GPIO 9, EN on GPIO 7.
func DefaultConfig() Config {
	return Config{
		Transmitter: TransmitterConfig{
			Driver:        transmitter.DriverRPIO,
			Pins:          transmitter.Pins{TX: 9, EN: 7},
			PulseDuration: int(transmitter.DefaultPulseDuration / time.Microsecond),
		},
		ServeAt: "0.0.0.0:8080",
		DocRoot: "/opt/rcswitch/www",
		History: 60,
		NATS: NATSConfig{
			Subject:      "rcswitch.command",
			EventSubject: "rcswitch.event",
		},
		Log: LogConfig{Level: "info"},
	}
}

// PulseUnit returns the configured timing unit.
func (c Config) PulseUnit() time.Duration {
	return time.Duration(c.Transmitter.PulseDuration) * time.Microsecond
}

// Validate checks that a configuration can be used to open a transmitter.
func (c Config) Validate() error {
	known := false
	for _, d := range transmitter.Drivers {
		if c.Transmitter.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return errors.Wrap(transmitter.ErrUnknownDriver, c.Transmitter.Driver)
	}

	pins := c.Transmitter.Pins
	switch {
	case pins.TX < 0 || pins.EN < 0:
		return errors.Errorf("pins must not be negative (tx %d, en %d)", pins.TX, pins.EN)
	case pins.TX == pins.EN:
		return errors.Errorf("tx and en must use different pins, both are %d", pins.TX)
	case c.Transmitter.PulseDuration <= 0:
		return errors.Errorf("pulse duration must be positive, got %d", c.Transmitter.PulseDuration)
	}

	return nil
}
