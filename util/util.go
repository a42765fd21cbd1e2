package util

import (
	"sync"
	"time"
)

// EventLog records the outcome of one command handed to the switch.
type EventLog struct {
	Command   string    `json:"command"`
	Address   string    `json:"address,omitempty"`
	Channel   string    `json:"channel,omitempty"`
	State     string    `json:"state,omitempty"`
	Codeword  string    `json:"codeword,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sent reports whether the command made it to the transmitter.
func (e *EventLog) Sent() bool {
	return e.Error == ""
}

type RingBuffer struct {
	mu     sync.RWMutex
	buffer []*EventLog
	index  uint
}

func NewRingBuffer(size uint) *RingBuffer {
	if size == 0 {
		size = 1
	}
	return &RingBuffer{buffer: make([]*EventLog, size)}
}

func (buf *RingBuffer) Add(item *EventLog) {
	buf.mu.Lock()
	defer buf.mu.Unlock()

	if buf.index == uint(len(buf.buffer)) {
		buf.index = 0
	}
	buf.buffer[buf.index] = item
	buf.index = buf.index + 1
}

// GetAll returns the stored events, oldest first.
func (buf *RingBuffer) GetAll() []*EventLog {
	buf.mu.RLock()
	defer buf.mu.RUnlock()

	all := make([]*EventLog, 0, len(buf.buffer))
	for _, item := range append(buf.buffer[buf.index:], buf.buffer[:buf.index]...) {
		if item != nil {
			all = append(all, item)
		}
	}
	return all
}

func (buf *RingBuffer) GetLast() *EventLog {
	buf.mu.RLock()
	defer buf.mu.RUnlock()

	if buf.index == 0 {
		return buf.buffer[len(buf.buffer)-1]
	}

	return buf.buffer[buf.index-1]
}
