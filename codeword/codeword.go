// Package codeword builds the 12 symbol tri-state codewords understood by
// 433MHz remote power switches.
package codeword

import "github.com/pkg/errors"

// Symbol is a single tri-state bit.
type Symbol byte

const (
	Zero  Symbol = '0'
	One   Symbol = '1'
	Float Symbol = 'F'
)

const (
	// AddressLen is the number of address symbols in a codeword.
	AddressLen = 5
	// Len is the total number of symbols in a codeword.
	Len = 12

	MinChannel = 1
	MaxChannel = 5
)

var ErrInvalidEncoding = errors.New("invalid address or channel for codeword")

// channels has one active '0' at the position of the channel number. Row 0 is
// never produced by a valid channel.
var channels = [...]string{"FFFFF", "0FFFF", "F0FFF", "FF0FF", "FFF0F", "FFFF0"}

// Codeword is a sequence of tri-state symbols ready to be transmitted.
type Codeword string

// Encode maps a 5 bit address, a channel in [1,5] and an on/off state onto a
// codeword. Address bit '0' becomes 'F' and '1' becomes '0'.
func Encode(address string, channel int, on bool) (Codeword, error) {
	if channel < MinChannel || channel > MaxChannel || len(address) != AddressLen {
		return "", ErrInvalidEncoding
	}

	ret := make([]byte, 0, Len)
	for i := 0; i < AddressLen; i++ {
		switch address[i] {
		case '0':
			ret = append(ret, byte(Float))
		case '1':
			ret = append(ret, byte(Zero))
		default:
			return "", ErrInvalidEncoding
		}
	}

	ret = append(ret, channels[channel]...)

	if on {
		ret = append(ret, byte(Zero), byte(Float))
	} else {
		ret = append(ret, byte(Float), byte(Zero))
	}

	return Codeword(ret), nil
}

// Symbols returns the codeword as a slice of symbols.
func (cw Codeword) Symbols() []Symbol {
	symbols := make([]Symbol, len(cw))
	for i := 0; i < len(cw); i++ {
		symbols[i] = Symbol(cw[i])
	}
	return symbols
}

// Valid reports whether cw has the right length and only tri-state symbols.
func (cw Codeword) Valid() bool {
	if len(cw) != Len {
		return false
	}
	for _, s := range cw.Symbols() {
		switch s {
		case Zero, One, Float:
		default:
			return false
		}
	}
	return true
}
