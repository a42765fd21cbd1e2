package transmitter

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// PeriphDevice drives the RF module through the periph.io GPIO registry.
type PeriphDevice struct {
	tx, en gpio.PinIO
	log    logrus.FieldLogger
}

// NewPeriphDevice initializes the periph host drivers and looks both pins up
// by number.
func NewPeriphDevice(txPin int, enPin int) (*PeriphDevice, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "could not initialize periph host")
	}

	d := &PeriphDevice{log: logrus.StandardLogger().WithField("driver", DriverPeriph)}

	var err error
	if d.tx, err = openPeriphPin(txPin, gpio.Low); err != nil {
		return nil, errors.Wrapf(err, "could not open TX pin %d", txPin)
	}
	if d.en, err = openPeriphPin(enPin, gpio.High); err != nil {
		return nil, errors.Wrapf(err, "could not open EN pin %d", enPin)
	}

	return d, nil
}

func openPeriphPin(n int, initial gpio.Level) (gpio.PinIO, error) {
	pin := gpioreg.ByName(strconv.Itoa(n))
	if pin == nil {
		return nil, errors.Errorf("gpio %d not found", n)
	}
	if err := pin.Out(initial); err != nil {
		return nil, err
	}
	return pin, nil
}

func (d *PeriphDevice) SetOutput(level Level) {
	if err := d.tx.Out(gpio.Level(level)); err != nil {
		d.log.WithError(err).Error("could not write TX pin")
	}
}

func (d *PeriphDevice) Delay(dur time.Duration) {
	busyWait(dur)
}

func (d *PeriphDevice) SetPower(on bool) {
	if err := d.en.Out(gpio.Level(on)); err != nil {
		d.log.WithError(err).Error("could not write EN pin")
	}
}

func (d *PeriphDevice) Power() bool {
	return d.en.Read() == gpio.High
}

func (d *PeriphDevice) Close() error {
	if err := d.tx.Out(gpio.Low); err != nil {
		return err
	}
	return d.en.Out(gpio.Low)
}
