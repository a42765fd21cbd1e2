package transmitter

import (
	"time"

	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// RPIODevice drives the RF module through the memory mapped GPIO registers of
// a Raspberry Pi.
type RPIODevice struct {
	tx, en rpio.Pin
}

// NewRPIODevice opens the GPIO memory range and configures the TX pin low and
// the enable pin high.
func NewRPIODevice(txPin int, enPin int) (*RPIODevice, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "could not open gpio memory")
	}

	d := new(RPIODevice)
	d.tx = rpio.Pin(txPin)
	d.en = rpio.Pin(enPin)

	d.tx.Output()
	d.en.Output()

	d.tx.Low()
	d.en.High()

	return d, nil
}

func (d *RPIODevice) SetOutput(level Level) {
	if level == High {
		d.tx.High()
	} else {
		d.tx.Low()
	}
}

func (d *RPIODevice) Delay(dur time.Duration) {
	busyWait(dur)
}

// SetPower switches the enable line of the RF module.
func (d *RPIODevice) SetPower(on bool) {
	if on {
		d.en.High()
	} else {
		d.en.Low()
	}
}

// Power reads back the enable line.
func (d *RPIODevice) Power() bool {
	return d.en.Read() == rpio.High
}

// Close pulls both lines low and releases the GPIO memory.
func (d *RPIODevice) Close() error {
	d.tx.Low()
	d.en.Low()

	return rpio.Close()
}
