package ledeffects

// This file contains the color utility functions the effects use to turn
// configured color strings and HSV values into pixel colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// HexToColor parses color strings of the form #RRGGBB, RRGGBB, 0xRRGGBB with
// an optional trailing alpha byte.  Colors without an alpha byte are opaque
func HexToColor(hex string) (c model.Color, err errors.Error) {
	digits := strings.TrimSpace(hex)
	digits = strings.TrimPrefix(digits, "#")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	alpha := uint8(0xFF)
	switch len(digits) {
	case 6:
	case 8:
		a, errGo := strconv.ParseUint(digits[6:], 16, 8)
		if errGo != nil {
			return c, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
		}
		alpha = uint8(a)
		digits = digits[:6]
	default:
		errGo := fmt.Errorf("color %q must have 6 or 8 hex digits", hex)
		return c, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}

	// colorful.Hex stops quietly at the first non hex digit
	if _, errGo := strconv.ParseUint(digits, 16, 32); errGo != nil {
		return c, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}

	rgb, errGo := colorful.Hex("#" + digits)
	if errGo != nil {
		return c, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}
	c.R, c.G, c.B = rgb.RGB255()
	c.A = alpha
	return c, nil
}

// HSVToColor converts a hue in degrees together with a saturation and value
// in the range 0..1 into an opaque color.  Hues outside 0..360 wrap around
func HSVToColor(h float64, s float64, v float64) (c model.Color) {
	h = math.Mod(h, 360.0)
	if h < 0 {
		h += 360.0
	}
	c.R, c.G, c.B = colorful.Hsv(h, clamp01(s), clamp01(v)).Clamped().RGB255()
	c.A = 0xFF
	return c
}

// FadeColor scales a color toward black, factor 1 leaves the color as is and
// factor 0 results in black
func FadeColor(c model.Color, factor float64) (faded model.Color) {
	return calcShade(c, model.Black, factor)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
