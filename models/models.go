package models

import "github.com/alittlebrighter/rcswitch"

// SwitchCommand is the message bus payload for switching an outlet. Either
// Command carries a raw AAAAACS string, or Address, Channel and State are set.
type SwitchCommand struct {
	Command string `json:"command,omitempty"`
	Address string `json:"address,omitempty"`
	Channel string `json:"channel,omitempty"`
	State   string `json:"state,omitempty"`
}

// Raw returns the command string to hand to the control interface. A raw
// Command is passed through untouched.
func (c *SwitchCommand) Raw() (string, error) {
	if c.Command != "" {
		return c.Command, nil
	}
	return rcswitch.BuildCommand(c.Address, c.Channel, c.State)
}
