package ledeffects

import (
	"math"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// calcShade blends two colors channel by channel.  A percent of 0 yields the
// end color and 1 yields the start color.  Each channel is truncated toward
// zero and then clamped to 0..255
func calcShade(start model.Color, end model.Color, percent float64) (res model.Color) {
	res = model.Color{
		R: shadeChannel(start.R, end.R, percent),
		G: shadeChannel(start.G, end.G, percent),
		B: shadeChannel(start.B, end.B, percent),
		A: shadeChannel(start.A, end.A, percent),
	}

	if logger.IsTrace() {
		logger.Trace("shade", "percent", percent, "start", start, "end", end, "result", res)
	}
	return res
}

func shadeChannel(start uint8, end uint8, percent float64) uint8 {
	v := math.Trunc(float64(end) + percent*(float64(start)-float64(end)))
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// gradientTable holds the two parallel color sweeps used by the symmetric bar.
// Index 0 is the panel center and the index increases toward the panel edge
type gradientTable struct {
	hues   []model.Color // HSV hue sweep from 360 down to 0 degrees
	shades []model.Color // end color at the center blending to the start color at the edge
}

// gradientFraction is the position of entry i within a table of n meaningful
// entries.  A single entry table, from a panel of height 1, sits at 0
func gradientFraction(i int, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// calcColors fills the first round(midPos) entries of the tables.  The
// tables themselves are sized to the full panel height so that the lower
// band may index one entry past the meaningful range, such entries remain
// the zero color
func calcColors(cfg *SymmetricBarConfig, midPos float64, size int) (tbl *gradientTable) {
	tbl = &gradientTable{
		hues:   make([]model.Color, size),
		shades: make([]model.Color, size),
	}

	numMidPix := int(math.Round(midPos))
	if numMidPix > size {
		numMidPix = size
	}
	for i := 0; i < numMidPix; i++ {
		fraction := gradientFraction(i, numMidPix)
		h := 360.0 - fraction*360.0
		tbl.hues[i] = HSVToColor(h, cfg.Saturation, cfg.Value)
		tbl.shades[i] = calcShade(cfg.startColor, cfg.endColor, fraction)

		if logger.IsTrace() {
			logger.Trace("gradient", "index", i, "hue", h, "saturation", cfg.Saturation, "value", cfg.Value, "color", tbl.hues[i])
		}
	}
	return tbl
}

// table returns the gradient selected by the configured color mode, 1 picks
// the hue sweep and everything else the shade blend
func (tbl *gradientTable) table(colorMode int) []model.Color {
	if colorMode == ColorModeHue {
		return tbl.hues
	}
	return tbl.shades
}
