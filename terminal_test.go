package ledeffects

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

func TestTerminalSink(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	sink := NewTerminalSink(screen)
	defer sink.Close()

	frame := &Frame{Width: 2, Height: 1, Pixels: []model.Color{red, blue}}
	require.Nil(t, sink.Send(frame))

	for x, want := range []tcell.Color{
		tcell.NewRGBColor(255, 0, 0),
		tcell.NewRGBColor(255, 0, 0),
		tcell.NewRGBColor(0, 0, 255),
		tcell.NewRGBColor(0, 0, 255),
	} {
		_, _, style, _ := screen.GetContent(x, 0)
		_, bg, _ := style.Decompose()
		assert.Equal(t, want, bg, "cell %d", x)
	}
}
