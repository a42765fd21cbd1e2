// Package transmitter sends tri-state codewords over a GPIO connected 433MHz
// RF module.
package transmitter

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alittlebrighter/rcswitch/codeword"
)

// Supported device drivers.
const (
	DriverRPIO   = "rpio"
	DriverEmbd   = "embd"
	DriverPeriph = "periph"
	DriverDryRun = "dryrun"
)

var ErrUnknownDriver = errors.New("unknown transmitter driver")

// Drivers lists every name accepted by NewDevice.
var Drivers = []string{DriverRPIO, DriverEmbd, DriverPeriph, DriverDryRun}

// Pins are the GPIO numbers the RF module is wired to.
type Pins struct {
	TX int `json:"tx"`
	EN int `json:"en"`
}

// NewDevice opens the device for the named driver. The TX line starts low and
// the enable line high.
func NewDevice(driver string, pins Pins) (Device, error) {
	var (
		dev Device
		err error
	)

	switch driver {
	case DriverRPIO, "":
		dev, err = NewRPIODevice(pins.TX, pins.EN)
	case DriverEmbd:
		dev, err = NewEmbdDevice(pins.TX, pins.EN)
	case DriverPeriph:
		dev, err = NewPeriphDevice(pins.TX, pins.EN)
	case DriverDryRun:
		rec := NewRecorder()
		rec.MaxPulses = Repeats * (2*codeword.Len + 1)
		rec.Log = logrus.StandardLogger().WithField("driver", DriverDryRun)
		dev = rec
	default:
		err = errors.Wrap(ErrUnknownDriver, driver)
	}

	if err != nil {
		return nil, err
	}
	return dev, nil
}
