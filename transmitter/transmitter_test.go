package transmitter

import (
	"errors"
	"testing"
	"time"

	"github.com/alittlebrighter/rcswitch/codeword"
)

type unitPair struct{ high, low int }

func pulseUnits(t *testing.T, pulses []Pulse, unit time.Duration) []unitPair {
	t.Helper()
	pairs := make([]unitPair, len(pulses))
	for i, p := range pulses {
		if p.High%unit != 0 || p.Low%unit != 0 {
			t.Fatalf("pulse %d (%v/%v) is not a multiple of %v", i, p.High, p.Low, unit)
		}
		h, l := p.Units(unit)
		pairs[i] = unitPair{h, l}
	}
	return pairs
}

func expectedPairs(cw codeword.Codeword) []unitPair {
	var frame []unitPair
	for _, s := range cw.Symbols() {
		switch s {
		case codeword.Zero:
			frame = append(frame, unitPair{1, 3}, unitPair{1, 3})
		case codeword.One:
			frame = append(frame, unitPair{3, 1}, unitPair{3, 1})
		case codeword.Float:
			frame = append(frame, unitPair{1, 3}, unitPair{3, 1})
		}
	}
	frame = append(frame, unitPair{1, 31})

	var all []unitPair
	for i := 0; i < Repeats; i++ {
		all = append(all, frame...)
	}
	return all
}

func TestTransmitPulses(t *testing.T) {
	unit := 350 * time.Microsecond
	for _, cw := range []codeword.Codeword{"000000FFFFF0", "FFFFFF0FFF0F", "0F10F10F10F1"} {
		rec := NewRecorder()
		tx := New(rec, unit)
		tx.Transmit(cw)

		got := pulseUnits(t, rec.Pulses(), unit)
		want := expectedPairs(cw)
		if len(got) != len(want) {
			t.Fatalf("%s: got %d pulses, want %d", cw, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s: pulse %d = %v, want %v", cw, i, got[i], want[i])
			}
		}
	}
}

func TestTransmitRepeatsWithSync(t *testing.T) {
	rec := NewRecorder()
	tx := New(rec, 100*time.Microsecond)
	tx.Transmit("000000FFFFF0")

	pulses := pulseUnits(t, rec.Pulses(), 100*time.Microsecond)
	perFrame := 2*codeword.Len + 1
	if len(pulses) != Repeats*perFrame {
		t.Fatalf("got %d pulses, want %d", len(pulses), Repeats*perFrame)
	}

	syncs := 0
	for i, p := range pulses {
		if p == (unitPair{1, 31}) {
			syncs++
			if (i+1)%perFrame != 0 {
				t.Errorf("sync pulse at index %d is not at the end of a frame", i)
			}
		}
	}
	if syncs != Repeats {
		t.Errorf("got %d sync pulses, want %d", syncs, Repeats)
	}
}

func TestTransmitSkipsUnknownSymbols(t *testing.T) {
	rec := NewRecorder()
	tx := New(rec, time.Microsecond)
	tx.Transmit("0X")

	pulses := pulseUnits(t, rec.Pulses(), time.Microsecond)
	// one '0' (two pulses) plus a sync, per repeat
	if len(pulses) != Repeats*3 {
		t.Fatalf("got %d pulses, want %d", len(pulses), Repeats*3)
	}
}

func TestDuration(t *testing.T) {
	tx := New(NewRecorder(), 350*time.Microsecond)
	// 12 symbols * 8 units + 32 sync units, 10 times
	want := time.Duration(10*(12*8+32)) * 350 * time.Microsecond
	if got := tx.Duration("000000FFFFF0"); got != want {
		t.Errorf("Duration = %v, want %v", got, want)
	}
}

func TestNewDefaultsUnit(t *testing.T) {
	if tx := New(NewRecorder(), 0); tx.Unit() != DefaultPulseDuration {
		t.Errorf("Unit = %v, want %v", tx.Unit(), DefaultPulseDuration)
	}
}

func TestRecorderMaxPulses(t *testing.T) {
	rec := NewRecorder()
	rec.MaxPulses = 4
	tx := New(rec, time.Microsecond)
	tx.Transmit("000000FFFFF0")

	pulses := pulseUnits(t, rec.Pulses(), time.Microsecond)
	if len(pulses) != 4 {
		t.Fatalf("kept %d pulses, want 4", len(pulses))
	}
	// last frame ends with 'F','0' and the sync pulse
	want := []unitPair{{3, 1}, {1, 3}, {1, 3}, {1, 31}}
	for i := range want {
		if pulses[i] != want[i] {
			t.Errorf("pulse %d = %v, want %v", i, pulses[i], want[i])
		}
	}
}

func TestNewDevice(t *testing.T) {
	dev, err := NewDevice(DriverDryRun, Pins{TX: 9, EN: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !dev.Power() {
		t.Error("dry run device should start powered")
	}
	dev.SetPower(false)
	if dev.Power() {
		t.Error("SetPower(false) did not switch power off")
	}
	if err := dev.Close(); err != nil {
		t.Error(err)
	}

	if _, err := NewDevice("bogus", Pins{}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("NewDevice(bogus) error = %v, want ErrUnknownDriver", err)
	}
}
