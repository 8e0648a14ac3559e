package model

// This module defines implementation neutral pixel color and audio state
// data structures shared between the effects, the panel and its sinks

import (
	"fmt"
)

// Color is a single pixel value with an alpha channel, each channel is
// clamped to 0..255 by whatever arithmetic produced it
type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// Black is the all zero color, including the alpha channel
var Black = Color{}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
