package ledeffects

// This file contains a sink that previews frames inside a terminal, each
// pixel is drawn as two character cells so that the panel keeps its aspect

import (
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/gdamore/tcell/v2"
)

type TerminalSink struct {
	screen tcell.Screen
}

// OpenTerminal takes over the controlling terminal for the preview
func OpenTerminal() (sink *TerminalSink, err errors.Error) {
	screen, errGo := tcell.NewScreen()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = screen.Init(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return NewTerminalSink(screen), nil
}

// NewTerminalSink draws into an already initialized screen
func NewTerminalSink(screen tcell.Screen) (sink *TerminalSink) {
	screen.Clear()
	return &TerminalSink{
		screen: screen,
	}
}

func (sink *TerminalSink) Send(frame *Frame) (err errors.Error) {
	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			c := frame.At(col, row)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			sink.screen.SetContent(col*2, row, ' ', nil, style)
			sink.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}
	sink.screen.Show()
	return nil
}

// Close restores the terminal
func (sink *TerminalSink) Close() {
	sink.screen.Fini()
}
