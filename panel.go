package ledeffects

// This file contains the pixel panel the effects draw into.  The panel owns
// the frame buffer and the per effect settings, showing a frame hands a copy
// of the buffer to every registered sink, fadecandy boards, terminals etc

import (
	"time"

	"github.com/karlmutch/errors"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

// FrameSink is implemented by anything that can display a finished frame
type FrameSink interface {
	Send(frame *Frame) (err errors.Error)
}

// Frame is an immutable copy of the panel buffer at the time Show was called.
// Pixels are stored row major with row 0 at the top of the panel
type Frame struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Serpentine bool          `json:"serpentine"`
	Pixels     []model.Color `json:"pixels"`
}

// At returns the color of a pixel, out of range positions are black
func (frame *Frame) At(col int, row int) model.Color {
	if col < 0 || col >= frame.Width || row < 0 || row >= frame.Height {
		return model.Black
	}
	return frame.Pixels[row*frame.Width+col]
}

// Index maps a panel position to the position of the LED along the strip
// that is wired through the panel
func (frame *Frame) Index(col int, row int) int {
	if frame.Serpentine && row%2 == 1 {
		return row*frame.Width + frame.Width - 1 - col
	}
	return row*frame.Width + col
}

// Strip returns the pixels in the order they are wired along the strip
func (frame *Frame) Strip() (strip []model.Color) {
	strip = make([]model.Color, len(frame.Pixels))
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			strip[frame.Index(col, row)] = frame.Pixels[row*frame.Width+col]
		}
	}
	return strip
}

// Panel is the state shared between the host and the running effect.  It is
// only ever touched from the host frame loop
type Panel struct {
	Width  int
	Height int

	// PixPos is the animation cursor, effects are free to move it
	PixPos int

	// Timeout and DimAll are written by an effect during its init
	Timeout    int
	DimAll     bool
	Brightness float64
	Serpentine bool

	// Audio is the latest audio trigger state, refreshed by the host before
	// every frame
	Audio *model.AudioTrigger

	pixels []model.Color
	sinks  []FrameSink
	sleep  func(time.Duration)
	shown  uint64
}

func NewPanel(cfg PanelConfig) (panel *Panel) {
	return &Panel{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Brightness: cfg.Brightness,
		Serpentine: cfg.Serpentine,
		Audio:      &model.AudioTrigger{Fade: 1.0},
		pixels:     make([]model.Color, cfg.Width*cfg.Height),
		sleep:      time.Sleep,
	}
}

// AddSink registers a display for the frames produced by Show
func (panel *Panel) AddSink(sink FrameSink) {
	panel.sinks = append(panel.sinks, sink)
}

// SetSleep replaces the function used by Delay
func (panel *Panel) SetSleep(sleep func(time.Duration)) {
	panel.sleep = sleep
}

// Delay blocks the frame loop
func (panel *Panel) Delay(d time.Duration) {
	if d <= 0 || panel.sleep == nil {
		return
	}
	panel.sleep(d)
}

// SetAll fills the whole panel with one color
func (panel *Panel) SetAll(c model.Color) {
	for i := range panel.pixels {
		panel.pixels[i] = c
	}
}

// PlotPixel sets a single pixel, positions outside the panel are ignored.
// When blend is set the color is mixed over the existing pixel using its
// alpha channel
func (panel *Panel) PlotPixel(col int, row int, c model.Color, blend bool) {
	if col < 0 || col >= panel.Width || row < 0 || row >= panel.Height {
		return
	}
	idx := row*panel.Width + col
	if blend {
		c = calcShade(c, panel.pixels[idx], float64(c.A)/255.0)
	}
	panel.pixels[idx] = c
}

// Pixel returns the current buffer value at a position
func (panel *Panel) Pixel(col int, row int) model.Color {
	if col < 0 || col >= panel.Width || row < 0 || row >= panel.Height {
		return model.Black
	}
	return panel.pixels[row*panel.Width+col]
}

// Shown is the number of frames passed to Show so far
func (panel *Panel) Shown() uint64 {
	return panel.shown
}

// Frame copies the current buffer, applying the global brightness when
// dimming is enabled
func (panel *Panel) Frame() (frame *Frame) {
	frame = &Frame{
		Width:      panel.Width,
		Height:     panel.Height,
		Serpentine: panel.Serpentine,
		Pixels:     make([]model.Color, len(panel.pixels)),
	}
	copy(frame.Pixels, panel.pixels)

	if panel.DimAll {
		for i, c := range frame.Pixels {
			frame.Pixels[i] = FadeColor(c, panel.Brightness)
		}
	}
	return frame
}

// Show submits the current buffer to every sink.  All sinks are given the
// frame, the first failure is returned
func (panel *Panel) Show() (err errors.Error) {
	panel.shown++
	if len(panel.sinks) == 0 {
		return nil
	}

	frame := panel.Frame()
	for _, sink := range panel.sinks {
		if errSink := sink.Send(frame); errSink != nil && err == nil {
			err = errSink
		}
	}
	return err
}
