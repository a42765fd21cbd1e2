package rcswitch

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidLength      = errors.New("command length must be at least 7 characters")
	ErrInvalidAddressChar = errors.New("invalid character in address part (only 0 and 1 allowed)")
	ErrInvalidChannelChar = errors.New("invalid character in channel part (only A, B, C and D allowed)")
	ErrInvalidStateChar   = errors.New("invalid character in state part (only 0 and 1 allowed)")
	ErrInvalidState       = errors.New("unknown switch state (only ON/on/1 or OFF/off/0 allowed)")
	ErrControlClosed      = errors.New("control interface is closed")
	ErrControlBusy        = errors.New("too many commands waiting to be sent")
)

// CommandError describes why a raw command was rejected. Err is one of the
// ErrInvalid* values. Pos is a byte offset into Command.
type CommandError struct {
	Err     error
	Command string
	Pos     int
	Char    rune
}

func (e *CommandError) Error() string {
	if e.Err == ErrInvalidLength {
		return fmt.Sprintf("%v, got %d", e.Err, len(e.Command))
	}
	return fmt.Sprintf("%v, but found %q at position %d", e.Err, e.Char, e.Pos)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
