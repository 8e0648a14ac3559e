package ledeffects

import (
	"testing"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

type recordingSink struct {
	frames []*Frame
	fail   bool
}

func (sink *recordingSink) Send(frame *Frame) (err errors.Error) {
	sink.frames = append(sink.frames, frame)
	if sink.fail {
		return errors.New("sink failed").With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

var (
	red   = model.Color{R: 255, A: 255}
	green = model.Color{G: 255, A: 255}
	blue  = model.Color{B: 255, A: 255}
)

func TestPanelPlotPixel(t *testing.T) {
	panel := NewPanel(PanelConfig{Width: 3, Height: 2, FPS: 30})

	panel.SetAll(red)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, red, panel.Pixel(col, row))
		}
	}

	panel.PlotPixel(2, 1, green, false)
	assert.Equal(t, green, panel.Pixel(2, 1))

	// Outside the panel nothing happens
	panel.PlotPixel(3, 0, green, false)
	panel.PlotPixel(0, -1, green, false)
	panel.PlotPixel(-1, 0, green, false)
	assert.Equal(t, red, panel.Pixel(0, 0))
	assert.Equal(t, model.Black, panel.Pixel(5, 5))

	// Blending uses the incoming alpha
	panel.PlotPixel(0, 0, model.Color{B: 255, A: 0}, true)
	assert.Equal(t, red, panel.Pixel(0, 0))
	panel.PlotPixel(0, 0, blue, true)
	assert.Equal(t, blue, panel.Pixel(0, 0))
}

func TestFrameStrip(t *testing.T) {
	frame := &Frame{
		Width:  3,
		Height: 2,
		Pixels: []model.Color{red, green, blue, blue, green, red},
	}
	assert.Equal(t, frame.Pixels, frame.Strip())
	assert.Equal(t, 4, frame.Index(1, 1))

	frame.Serpentine = true
	assert.Equal(t, []model.Color{red, green, blue, red, green, blue}, frame.Strip())
	assert.Equal(t, 5, frame.Index(0, 1))
	assert.Equal(t, 2, frame.Index(2, 0))

	assert.Equal(t, blue, frame.At(0, 1))
	assert.Equal(t, model.Black, frame.At(3, 1))
}

func TestPanelShow(t *testing.T) {
	panel := NewPanel(PanelConfig{Width: 2, Height: 1, Brightness: 0.5, FPS: 30})
	first := &recordingSink{}
	second := &recordingSink{}
	panel.AddSink(first)
	panel.AddSink(second)

	panel.SetAll(model.Color{R: 200, G: 100, B: 50, A: 255})
	require.Nil(t, panel.Show())

	require.Len(t, first.frames, 1)
	require.Len(t, second.frames, 1)
	assert.Equal(t, model.Color{R: 200, G: 100, B: 50, A: 255}, first.frames[0].At(1, 0))

	// Later drawing does not leak into frames already shown
	panel.SetAll(red)
	assert.Equal(t, model.Color{R: 200, G: 100, B: 50, A: 255}, first.frames[0].At(0, 0))

	panel.DimAll = true
	require.Nil(t, panel.Show())
	assert.Equal(t, model.Color{R: 127, A: 127}, first.frames[1].At(0, 0))
	assert.Equal(t, red, panel.Pixel(0, 0), "dimming only applies to shown frames")

	second.fail = true
	assert.NotNil(t, panel.Show())
	assert.Len(t, first.frames, 3)
	assert.Equal(t, uint64(3), panel.Shown())
}

func TestPanelDelay(t *testing.T) {
	panel := NewPanel(PanelConfig{Width: 1, Height: 1, FPS: 30})
	slept := time.Duration(0)
	panel.SetSleep(func(d time.Duration) { slept += d })

	panel.Delay(0)
	panel.Delay(-time.Second)
	assert.Equal(t, time.Duration(0), slept)

	panel.Delay(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, slept)
}
