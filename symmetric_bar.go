package ledeffects

// This file contains the symmetric bar effect.  A band of color grows out of
// the vertical middle of the panel in both directions, its height driven by
// the audio level.  While the audio is quiet an animated cursor sweeps the band
// open and closed so that the panel is never idle

import (
	"math"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// SymmetricBarName is the name the effect is registered under
const SymmetricBarName = "ANIM_SYMMETRIC_BAR"

func init() {
	if err := RegisterSymmetricBar(Effects); err != nil {
		logger.Warn("symmetric bar could not be registered", "error", err.Error())
	}
}

// RegisterSymmetricBar adds the symmetric bar to an effect registry
func RegisterSymmetricBar(reg *Registry) (err errors.Error) {
	logger.Info("registering effect", "effect", SymmetricBarName)
	return reg.Add(SymmetricBarName, func(cfg *Config) (effect Effect, err errors.Error) {
		if cfg == nil {
			cfg = DefaultConfig()
		}
		sb, err := NewSymmetricBar(cfg.Effects.SymmetricBar)
		if err != nil {
			return nil, err
		}
		return sb, nil
	})
}

// barGeometry is derived from the panel once during init
type barGeometry struct {
	width     int
	height    int
	numPix    int
	midPos    float64 // height / 2, may be fractional
	midPosCut int     // last row of the lower half, -1 for panels shorter than 2 rows
}

func newBarGeometry(width int, height int) barGeometry {
	return barGeometry{
		width:     width,
		height:    height,
		numPix:    width * height,
		midPos:    float64(height) / 2.0,
		midPosCut: (height >> 1) - 1,
	}
}

// SymmetricBar holds the state of a single activation of the effect
type SymmetricBar struct {
	cfg SymmetricBarConfig

	geom       barGeometry
	colors     *gradientTable
	background model.Color
	black      model.Color

	// atd is owned by the panel
	atd *model.AudioTrigger
}

// NewSymmetricBar validates the settings for the effect, nothing is
// allocated until Init
func NewSymmetricBar(cfg SymmetricBarConfig) (sb *SymmetricBar, err errors.Error) {
	if err = cfg.resolve(); err != nil {
		return nil, err
	}
	return &SymmetricBar{cfg: cfg}, nil
}

func (sb *SymmetricBar) Init(panel *Panel) (err errors.Error) {
	if panel == nil {
		return errors.New("symmetric bar needs a panel").With("stack", stack.Trace().TrimRuntime())
	}

	if panel.Audio == nil {
		panel.Audio = &model.AudioTrigger{Fade: 1.0}
	}
	sb.atd = panel.Audio
	sb.geom = newBarGeometry(panel.Width, panel.Height)
	sb.colors = calcColors(&sb.cfg, sb.geom.midPos, panel.Height)
	sb.background = sb.cfg.background
	sb.black = model.Black

	panel.Timeout = sb.cfg.Timeout
	panel.DimAll = sb.cfg.DimAll

	logger.Debug("symmetric bar geometry", "width", sb.geom.width, "height", sb.geom.height,
		"pixels", sb.geom.numPix, "mid", sb.geom.midPos, "midCut", sb.geom.midPosCut)
	return nil
}

// internalPixPos folds a cursor sweeping over the full panel height into the
// lower half so the band opens and then closes again
func (sb *SymmetricBar) internalPixPos(pixPos int) int {
	if pixPos > sb.geom.midPosCut {
		return sb.geom.height - 1 - pixPos
	}
	return pixPos
}

// bandRange is the number of rows lit on each side of the middle
func (sb *SymmetricBar) bandRange(level float64, internalPixPos int) int {
	return int(math.Round(level*float64(sb.geom.midPosCut))) + internalPixPos
}

func (sb *SymmetricBar) Step(panel *Panel) (err errors.Error) {
	if panel == nil {
		return errors.New("symmetric bar needs a panel").With("stack", stack.Trace().TrimRuntime())
	}
	if sb.colors == nil || sb.atd == nil {
		return errors.New("symmetric bar stepped before init").With("stack", stack.Trace().TrimRuntime())
	}
	if panel.Width != sb.geom.width || panel.Height != sb.geom.height {
		return errors.New("panel resized while the symmetric bar was running").
			With("width", panel.Width).With("height", panel.Height).With("stack", stack.Trace().TrimRuntime())
	}

	numRows := sb.geom.height
	numCols := sb.geom.width
	atd := sb.atd

	if atd.IsNoisy {
		panel.PixPos = 0
	} else {
		atd.Fade = 1.0
	}

	internalPixPos := sb.internalPixPos(panel.PixPos)
	rng := sb.bandRange(atd.Level, internalPixPos)

	if logger.IsTrace() {
		logger.Trace("symmetric bar", "level", atd.Level, "average", atd.LevelAverage,
			"pixPos", internalPixPos, "range", rng, "fade", atd.Fade)
	}

	midUpper := int(math.Ceil(sb.geom.midPos))
	midLower := int(math.Floor(sb.geom.midPos))

	usedColors := sb.colors.table(sb.cfg.ColorMode)

	panel.SetAll(sb.background)

	// Upper half, colors run outward from the middle
	startRow := min(midUpper, numRows)
	endRow := min(midUpper+rng, numRows)
	for row := startRow; row < endRow; row++ {
		outPix := calcShade(usedColors[row-midUpper], sb.black, atd.Fade)
		for col := 0; col < numCols; col++ {
			panel.PlotPixel(col, numRows-1-row, outPix, false)
		}
	}

	// Lower half, colors are indexed from the end of the band rather than
	// the middle so this half never uses the first gradient entry
	startRow = max(midLower-rng, 0)
	endRow = min(midLower, numRows)
	for row := startRow; row < endRow; row++ {
		outPix := calcShade(usedColors[endRow-row], sb.black, atd.Fade)
		for col := 0; col < numCols; col++ {
			panel.PlotPixel(col, numRows-1-row, outPix, false)
		}
	}

	err = panel.Show()

	if !atd.IsNoisy {
		if panel.PixPos == sb.geom.midPosCut {
			panel.Delay(time.Duration(sb.cfg.Sleep) * time.Millisecond)
		}
		if numRows > 0 {
			panel.PixPos = (panel.PixPos + 1) % numRows
		}
	}
	return err
}

// Exit drops the gradients and the reference to the audio state
func (sb *SymmetricBar) Exit(panel *Panel) {
	if sb == nil {
		return
	}
	sb.colors = nil
	sb.atd = nil
}
