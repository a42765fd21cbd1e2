// Package rcswitch controls 433MHz remote power switches. It decodes
// AAAAACS commands, encodes them as tri-state codewords and sends them through
// a GPIO driven RF transmitter.
package rcswitch

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alittlebrighter/rcswitch/transmitter"
	"github.com/alittlebrighter/rcswitch/util"
)

// Switch is the primary struct that turns commands into transmissions.
//
// Switch does not serialize callers. Two concurrent Sends interleave their
// pulses on the same pin, so every writer has to go through a Control or hold
// its own lock.
type Switch struct {
	config    Config
	device    transmitter.Device
	tx        *transmitter.Transmitter
	log       logrus.FieldLogger
	listeners []func(*util.EventLog)

	Events *util.RingBuffer
}

// New builds a Switch that transmits on dev using the timing in config.
func New(config Config, dev transmitter.Device) *Switch {
	return &Switch{
		config: config,
		device: dev,
		tx:     transmitter.New(dev, config.PulseUnit()),
		log:    logrus.StandardLogger(),
		Events: util.NewRingBuffer(config.History),
	}
}

// Config returns the configuration the switch was built with.
func (sw *Switch) Config() Config {
	return sw.config
}

func (sw *Switch) SetLogger(log logrus.FieldLogger) {
	sw.log = log
}

// OnEvent registers fn to be called after every command, accepted or not.
// Listeners must be registered before the switch is used.
func (sw *Switch) OnEvent(fn func(*util.EventLog)) {
	sw.listeners = append(sw.listeners, fn)
}

// Send parses raw and transmits it. Invalid commands are logged and returned
// without any pin activity.
func (sw *Switch) Send(raw string) error {
	cmd, err := ParseCommand(raw)
	if err != nil {
		fields := logrus.Fields{"command": strings.TrimSpace(raw)}
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			fields["position"] = cmdErr.Pos
			if cmdErr.Err != ErrInvalidLength {
				fields["char"] = string(cmdErr.Char)
			}
		}
		sw.log.WithFields(fields).Warn(err.Error())
		sw.record(&util.EventLog{Command: strings.TrimSpace(raw), Error: err.Error()})
		return err
	}

	return sw.SendCommand(cmd)
}

// SendCommand transmits an already decoded command.
func (sw *Switch) SendCommand(cmd Command) error {
	cw, err := cmd.Codeword()
	if err != nil {
		sw.log.WithError(err).WithFields(logrus.Fields{
			"address": cmd.Address,
			"channel": int(cmd.Channel),
		}).Error("could not encode command")
		return err
	}

	sw.log.WithFields(logrus.Fields{
		"address":  cmd.Address,
		"channel":  cmd.Channel.String(),
		"state":    cmd.State.String(),
		"codeword": string(cw),
	}).Info("sending command")

	sw.tx.Transmit(cw)

	sw.record(&util.EventLog{
		Command:  cmd.String(),
		Address:  cmd.Address,
		Channel:  cmd.Channel.String(),
		State:    cmd.State.String(),
		Codeword: string(cw),
	})
	return nil
}

func (sw *Switch) record(event *util.EventLog) {
	event.Timestamp = time.Now()
	sw.Events.Add(event)
	for _, fn := range sw.listeners {
		fn(event)
	}
}

// SetPower switches the RF module's enable line.
func (sw *Switch) SetPower(on bool) {
	sw.log.WithField("power", on).Info("setting transmitter power")
	sw.device.SetPower(on)
}

// Power reports the RF module's enable line.
func (sw *Switch) Power() bool {
	return sw.device.Power()
}

// Shutdown pulls the TX and EN lines low and releases the device.
func (sw *Switch) Shutdown() error {
	sw.device.SetOutput(transmitter.Low)
	sw.device.SetPower(false)
	return sw.device.Close()
}
