package util

import "testing"

func TestRingBuffer(t *testing.T) {
	buf := NewRingBuffer(3)
	if buf.GetLast() != nil {
		t.Error("empty buffer returned a last event")
	}
	if len(buf.GetAll()) != 0 {
		t.Error("empty buffer returned events")
	}

	for _, cmd := range []string{"a", "b", "c", "d"} {
		buf.Add(&EventLog{Command: cmd})
	}

	all := buf.GetAll()
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	for i, want := range []string{"b", "c", "d"} {
		if all[i].Command != want {
			t.Errorf("event %d = %s, want %s", i, all[i].Command, want)
		}
	}
	if buf.GetLast().Command != "d" {
		t.Errorf("last event = %s, want d", buf.GetLast().Command)
	}
}

func TestEventLogSent(t *testing.T) {
	if !(&EventLog{Command: "11111A1"}).Sent() {
		t.Error("event without error should count as sent")
	}
	if (&EventLog{Command: "1", Error: "too short"}).Sent() {
		t.Error("event with error should not count as sent")
	}
}
