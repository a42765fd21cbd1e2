package rcswitch

import (
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/sirupsen/logrus"
)

// DefaultMaxPending is the queue limit used by NewControl. At the default pulse
// length one command keeps the transmitter busy for about half a second.
const DefaultMaxPending = 32

// Sender is anything that can send a raw command.
type Sender interface {
	Send(raw string) error
}

// Control is the single entry point for raw commands coming from outside the
// process. Writes are queued and return immediately; one worker goroutine
// hands them to the Sender in order, so only one transmission is ever in
// flight.
type Control struct {
	sender     Sender
	log        logrus.FieldLogger
	maxPending int

	mu    sync.Mutex
	queue *queue.Queue
	done  chan struct{}
}

// NewControl starts the worker for sender with room for DefaultMaxPending
// queued commands.
func NewControl(sender Sender) *Control {
	return NewControlSize(sender, DefaultMaxPending)
}

// NewControlSize starts the worker for sender. Writes fail with ErrControlBusy
// once maxPending commands are waiting; zero or less means no limit.
func NewControlSize(sender Sender, maxPending int) *Control {
	c := &Control{
		sender:     sender,
		log:        logrus.StandardLogger(),
		maxPending: maxPending,
		queue:      queue.New(16),
		done:       make(chan struct{}),
	}
	go c.worker()
	return c
}

func (c *Control) SetLogger(log logrus.FieldLogger) {
	c.mu.Lock()
	c.log = log
	c.mu.Unlock()
}

// Write queues p verbatim as one command. Rejections happen later and are
// reported by the Sender.
func (c *Control) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.queue.Disposed() {
		return 0, ErrControlClosed
	}
	if c.maxPending > 0 && c.queue.Len() >= int64(c.maxPending) {
		return 0, ErrControlBusy
	}
	if err := c.queue.Put(string(p)); err != nil {
		return 0, ErrControlClosed
	}
	return len(p), nil
}

// WriteString is Write for strings.
func (c *Control) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Pending returns the number of queued commands not yet picked up.
func (c *Control) Pending() int {
	return int(c.queue.Len())
}

func (c *Control) worker() {
	defer close(c.done)

	for {
		items, err := c.queue.Get(1)
		if err != nil {
			return
		}
		for _, item := range items {
			raw := item.(string)
			if err := c.sender.Send(raw); err != nil {
				c.logger().WithError(err).WithField("command", raw).Debug("command not sent")
			}
		}
	}
}

func (c *Control) logger() logrus.FieldLogger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log
}

// Close drops queued commands, waits for a running transmission to finish and
// stops the worker.
func (c *Control) Close() error {
	c.queue.Dispose()
	<-c.done
	return nil
}
