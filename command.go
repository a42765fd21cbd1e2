package rcswitch

import (
	"strings"
	"unicode/utf8"

	"github.com/alittlebrighter/rcswitch/codeword"
)

// CommandLen is the length of the positional part of a command: five address
// bits, a channel letter and a state digit. Anything after it is ignored.
const CommandLen = codeword.AddressLen + 2

const (
	firstChannel = 'A'
	lastChannel  = 'D'
)

// Channel selects one outlet of a switch group. Commands can only address
// channels A to D even though the codeword table has a fifth row.
type Channel int

// Letter returns the command letter for the channel.
func (c Channel) Letter() byte {
	return byte(firstChannel + c - 1)
}

func (c Channel) String() string {
	return string(c.Letter())
}

func (c Channel) MarshalText() (text []byte, err error) {
	return []byte(c.String()), nil
}

// State is the requested power state of an outlet.
type State bool

const (
	Off State = false
	On  State = true
)

func (s State) String() string {
	if s {
		return "on"
	}
	return "off"
}

func (s State) MarshalText() (text []byte, err error) {
	return []byte(s.String()), nil
}

func (s State) digit() byte {
	if s {
		return '1'
	}
	return '0'
}

// ParseState accepts 1/0 and on/off in any case.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "on":
		return On, nil
	case "0", "off":
		return Off, nil
	default:
		return Off, ErrInvalidState
	}
}

// Command is a decoded AAAAACS command.
type Command struct {
	Address string  `json:"address"`
	Channel Channel `json:"channel"`
	State   State   `json:"state"`
}

// ParseCommand decodes the positional command format AAAAACS where A is an
// address bit, C a channel letter A-D and S the state (1 on, 0 off).
//
// '11111A0' switches channel A of address 11111 off.
func ParseCommand(raw string) (Command, error) {
	var cmd Command

	if len(raw) < CommandLen {
		return cmd, &CommandError{Err: ErrInvalidLength, Command: raw, Pos: len(raw)}
	}

	i := 0
	for ; i < codeword.AddressLen; i++ {
		if raw[i] != '0' && raw[i] != '1' {
			return cmd, charError(ErrInvalidAddressChar, raw, i)
		}
	}
	cmd.Address = raw[:codeword.AddressLen]

	if raw[i] < firstChannel || raw[i] > lastChannel {
		return Command{}, charError(ErrInvalidChannelChar, raw, i)
	}
	cmd.Channel = Channel(raw[i] - firstChannel + 1)
	i++

	switch raw[i] {
	case '0':
		cmd.State = Off
	case '1':
		cmd.State = On
	default:
		return Command{}, charError(ErrInvalidStateChar, raw, i)
	}

	return cmd, nil
}

// charError reports the whole character starting at byte offset pos, so
// multi-byte input is shown as typed.
func charError(err error, raw string, pos int) *CommandError {
	r, _ := utf8.DecodeRuneInString(raw[pos:])
	return &CommandError{Err: err, Command: raw, Pos: pos, Char: r}
}

// BuildCommand assembles a raw command from its parts, accepting the state
// spellings of ParseState, and validates the result.
func BuildCommand(address, channel, state string) (string, error) {
	s, err := ParseState(state)
	if err != nil {
		return "", err
	}

	raw := address + strings.ToUpper(channel) + string(s.digit())
	if len(address) != codeword.AddressLen || len(channel) != 1 {
		return "", &CommandError{Err: ErrInvalidLength, Command: raw, Pos: len(raw)}
	}
	if _, err := ParseCommand(raw); err != nil {
		return "", err
	}
	return raw, nil
}

// String renders the command in wire format.
func (c Command) String() string {
	return c.Address + c.Channel.String() + string(c.State.digit())
}

// Codeword encodes the command for transmission.
func (c Command) Codeword() (codeword.Codeword, error) {
	return codeword.Encode(c.Address, int(c.Channel), bool(c.State))
}
