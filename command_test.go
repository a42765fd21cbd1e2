package rcswitch

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pkg/errors"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		raw  string
		want Command
	}{
		{"11111A0", Command{Address: "11111", Channel: 1, State: Off}},
		{"11111B1", Command{Address: "11111", Channel: 2, State: On}},
		{"01010C1", Command{Address: "01010", Channel: 3, State: On}},
		{"00000D0\n", Command{Address: "00000", Channel: 4, State: Off}},
		{"10000A1trailing garbage", Command{Address: "10000", Channel: 1, State: On}},
	}

	for _, c := range cases {
		got, err := ParseCommand(c.raw)
		if err != nil {
			t.Errorf("ParseCommand(%q) returned error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCommand(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestParseCommandCodeword(t *testing.T) {
	cmd, _ := ParseCommand("11111A0")
	cw, err := cmd.Codeword()
	if err != nil {
		t.Fatal(err)
	}
	if cw != "00000"+"0FFFF"+"F0" {
		t.Errorf("11111A0 encoded as %s", cw)
	}

	cmd, _ = ParseCommand("11111B1")
	cw, _ = cmd.Codeword()
	if cw != "00000"+"F0FFF"+"0F" {
		t.Errorf("11111B1 encoded as %s", cw)
	}
}

func TestParseCommandErrors(t *testing.T) {
	cases := []struct {
		raw  string
		err  error
		pos  int
		char rune
	}{
		{"11111A", ErrInvalidLength, 6, 0},
		{"", ErrInvalidLength, 0, 0},
		{"1111XA1", ErrInvalidAddressChar, 4, 'X'},
		{"21111A1", ErrInvalidAddressChar, 0, '2'},
		{"11111E1", ErrInvalidChannelChar, 5, 'E'},
		{"11111a1", ErrInvalidChannelChar, 5, 'a'},
		{"11111A2", ErrInvalidStateChar, 6, '2'},
		{"11111A\n", ErrInvalidStateChar, 6, '\n'},
		{"1111éA1", ErrInvalidAddressChar, 4, 'é'},
		{"11111Ä1", ErrInvalidChannelChar, 5, 'Ä'},
		{"11111A\xff", ErrInvalidStateChar, 6, utf8.RuneError},
	}

	for _, c := range cases {
		_, err := ParseCommand(c.raw)
		if !errors.Is(err, c.err) {
			t.Errorf("ParseCommand(%q) error = %v, want %v", c.raw, err, c.err)
			continue
		}

		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Errorf("ParseCommand(%q) error is not a *CommandError", c.raw)
			continue
		}
		if cmdErr.Pos != c.pos || cmdErr.Char != c.char {
			t.Errorf("ParseCommand(%q) reported %q at %d, want %q at %d", c.raw, cmdErr.Char, cmdErr.Pos, c.char, c.pos)
		}
		if c.char != 0 && !strings.Contains(err.Error(), fmt.Sprintf("%q", c.char)) {
			t.Errorf("ParseCommand(%q) message %q does not show %q", c.raw, err.Error(), c.char)
		}
	}
}

func TestCommandString(t *testing.T) {
	for _, raw := range []string{"11111A0", "01010D1", "00000B1"} {
		cmd, err := ParseCommand(raw)
		if err != nil {
			t.Fatal(err)
		}
		if cmd.String() != raw {
			t.Errorf("String() = %s, want %s", cmd.String(), raw)
		}
	}
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"1", "on", "ON", "On "} {
		if st, err := ParseState(s); err != nil || st != On {
			t.Errorf("ParseState(%q) = %v, %v", s, st, err)
		}
	}
	for _, s := range []string{"0", "off", "OFF"} {
		if st, err := ParseState(s); err != nil || st != Off {
			t.Errorf("ParseState(%q) = %v, %v", s, st, err)
		}
	}
	if _, err := ParseState("maybe"); err != ErrInvalidState {
		t.Errorf("ParseState(maybe) error = %v", err)
	}
}

func TestBuildCommand(t *testing.T) {
	raw, err := BuildCommand("11111", "b", "ON")
	if err != nil {
		t.Fatal(err)
	}
	if raw != "11111B1" {
		t.Errorf("BuildCommand = %s, want 11111B1", raw)
	}

	if _, err := BuildCommand("1111", "A", "on"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("short address error = %v", err)
	}
	if _, err := BuildCommand("11111", "AB", "on"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("long channel error = %v", err)
	}
	if _, err := BuildCommand("11111", "E", "on"); !errors.Is(err, ErrInvalidChannelChar) {
		t.Errorf("channel E error = %v", err)
	}
	if _, err := BuildCommand("11111", "A", "dim"); err != ErrInvalidState {
		t.Errorf("bad state error = %v", err)
	}
}
