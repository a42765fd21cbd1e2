package transmitter

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pulse is one high/low pair as seen on the TX line.
type Pulse struct {
	High, Low time.Duration
}

// Units expresses the pulse in multiples of unit.
func (p Pulse) Units(unit time.Duration) (high, low int) {
	return int(p.High / unit), int(p.Low / unit)
}

// Recorder is a Device that never touches hardware. It reconstructs the pulses
// from the level changes and delays it is given and does not sleep.
type Recorder struct {
	mu     sync.Mutex
	pulses []Pulse
	level  Level
	power  bool
	closed bool

	// MaxPulses bounds how many of the latest pulses are kept. Zero keeps all.
	MaxPulses int
	// Log, when set, receives one debug entry per transmitted pulse.
	Log logrus.FieldLogger
}

// NewRecorder returns a powered Recorder.
func NewRecorder() *Recorder {
	return &Recorder{power: true}
}

func (r *Recorder) SetOutput(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if level == High && r.level == Low {
		if r.MaxPulses > 0 && len(r.pulses) >= r.MaxPulses {
			r.pulses = append(r.pulses[:0], r.pulses[len(r.pulses)-r.MaxPulses+1:]...)
		}
		r.pulses = append(r.pulses, Pulse{})
	}
	r.level = level
}

func (r *Recorder) Delay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pulses) == 0 {
		return
	}
	p := &r.pulses[len(r.pulses)-1]
	if r.level == High {
		p.High += d
	} else {
		p.Low += d
		if r.Log != nil {
			r.Log.WithFields(logrus.Fields{"high": p.High, "low": p.Low}).Debug("pulse")
		}
	}
}

func (r *Recorder) SetPower(on bool) {
	r.mu.Lock()
	r.power = on
	r.mu.Unlock()
}

func (r *Recorder) Power() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.power
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	r.level = Low
	r.power = false
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Pulses returns a copy of every pulse recorded so far.
func (r *Recorder) Pulses() []Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Pulse(nil), r.pulses...)
}

// Reset forgets recorded pulses.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.pulses = nil
	r.mu.Unlock()
}
