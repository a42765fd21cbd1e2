package transmitter

import (
	"runtime"
	"time"

	"github.com/alittlebrighter/rcswitch/codeword"
)

const (
	// Repeats is how many times a codeword is sent per command.
	Repeats = 10

	// DefaultPulseDuration is the default length of one timing unit.
	DefaultPulseDuration = 350 * time.Microsecond

	short = 1
	long  = 3

	syncHigh = 1
	syncLow  = 31
)

// Level describes the binary state of an output pin: either LOW or HIGH.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Output is the capability the transmitter drives: a single digital line and
// a way to hold it for a given time.
type Output interface {
	SetOutput(level Level)
	Delay(d time.Duration)
}

// Device is an output that also owns the enable line of the RF module.
type Device interface {
	Output
	SetPower(on bool)
	Power() bool
	Close() error
}

// Transmitter turns tri-state codewords into timed pulses on an Output.
type Transmitter struct {
	out  Output
	unit time.Duration
}

// New returns a Transmitter that uses unit as the base pulse width. A
// non-positive unit falls back to DefaultPulseDuration.
func New(out Output, unit time.Duration) *Transmitter {
	if unit <= 0 {
		unit = DefaultPulseDuration
	}
	return &Transmitter{out: out, unit: unit}
}

// Unit returns the base pulse width.
func (tx *Transmitter) Unit() time.Duration {
	return tx.unit
}

// pulse sets the line high for high units, then low for low units.
func (tx *Transmitter) pulse(high, low int) {
	tx.out.SetOutput(High)
	tx.out.Delay(time.Duration(high) * tx.unit)
	tx.out.SetOutput(Low)
	tx.out.Delay(time.Duration(low) * tx.unit)
}

// sendSymbol emits the two pulses of one symbol:
//
//	        _     _
//	'0':   | |___| |___
//	        ___   ___
//	'1':   |   |_|   |_
//	        _     ___
//	'F':   | |___|   |_
func (tx *Transmitter) sendSymbol(s codeword.Symbol) {
	switch s {
	case codeword.Zero:
		tx.pulse(short, long)
		tx.pulse(short, long)
	case codeword.One:
		tx.pulse(long, short)
		tx.pulse(long, short)
	case codeword.Float:
		tx.pulse(short, long)
		tx.pulse(long, short)
	}
}

// Transmit sends cw Repeats times, each followed by a sync pulse. It blocks
// until the last pulse has been emitted.
func (tx *Transmitter) Transmit(cw codeword.Codeword) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	symbols := cw.Symbols()
	for repeat := 0; repeat < Repeats; repeat++ {
		for _, s := range symbols {
			tx.sendSymbol(s)
		}
		tx.pulse(syncHigh, syncLow)
	}
}

// Duration returns how long Transmit takes to send cw.
func (tx *Transmitter) Duration(cw codeword.Codeword) time.Duration {
	units := 0
	for _, s := range cw.Symbols() {
		switch s {
		case codeword.Zero, codeword.One, codeword.Float:
			units += 2 * (short + long)
		}
	}
	units += syncHigh + syncLow
	return time.Duration(Repeats*units) * tx.unit
}

// busyWait spins until d has elapsed; time.Sleep overshoots pulse widths.
func busyWait(d time.Duration) {
	for start := time.Now(); time.Since(start) < d; {
	}
}
