package transmitter

import (
	"time"

	"github.com/alittlebrighter/embd"
	_ "github.com/alittlebrighter/embd/host/rpi"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EmbdDevice drives the RF module through the embd GPIO driver.
type EmbdDevice struct {
	tx, en embd.DigitalPin
	log    logrus.FieldLogger
}

// NewEmbdDevice initializes embd GPIO and opens both pins as outputs.
func NewEmbdDevice(txPin int, enPin int) (*EmbdDevice, error) {
	if err := embd.InitGPIO(); err != nil {
		return nil, errors.Wrap(err, "could not initialize embd gpio")
	}

	d := &EmbdDevice{log: logrus.StandardLogger().WithField("driver", DriverEmbd)}

	var err error
	if d.tx, err = openEmbdPin(txPin, embd.Low); err != nil {
		embd.CloseGPIO()
		return nil, errors.Wrapf(err, "could not open TX pin %d", txPin)
	}
	if d.en, err = openEmbdPin(enPin, embd.High); err != nil {
		d.tx.Close()
		embd.CloseGPIO()
		return nil, errors.Wrapf(err, "could not open EN pin %d", enPin)
	}

	return d, nil
}

func openEmbdPin(n int, initial int) (embd.DigitalPin, error) {
	pin, err := embd.NewDigitalPin(n)
	if err != nil {
		return nil, err
	}
	if err = pin.SetDirection(embd.Out); err != nil {
		pin.Close()
		return nil, err
	}
	if err = pin.Write(initial); err != nil {
		pin.Close()
		return nil, err
	}
	return pin, nil
}

func levelValue(high bool) int {
	if high {
		return embd.High
	}
	return embd.Low
}

func (d *EmbdDevice) SetOutput(level Level) {
	if err := d.tx.Write(levelValue(bool(level))); err != nil {
		d.log.WithError(err).Error("could not write TX pin")
	}
}

func (d *EmbdDevice) Delay(dur time.Duration) {
	busyWait(dur)
}

func (d *EmbdDevice) SetPower(on bool) {
	if err := d.en.Write(levelValue(on)); err != nil {
		d.log.WithError(err).Error("could not write EN pin")
	}
}

func (d *EmbdDevice) Power() bool {
	val, err := d.en.Read()
	if err != nil {
		d.log.WithError(err).Error("could not read EN pin")
		return false
	}
	return val == embd.High
}

func (d *EmbdDevice) Close() error {
	d.tx.Write(embd.Low)
	d.en.Write(embd.Low)
	d.tx.Close()
	d.en.Close()

	return embd.CloseGPIO()
}
