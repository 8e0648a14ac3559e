package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledeffects "github.com/mamuesp-libs/ledeffects-symmetric-bar"
	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

func TestParseScript(t *testing.T) {
	script, err := parseScript(strings.NewReader("# levels\n0.5\n\n 1.0 !\n0\n"))
	require.Nil(t, err)
	require.Len(t, script, 3)

	assert.Equal(t, 0.5, script[0].Level)
	assert.False(t, script[0].IsNoisy)
	assert.Equal(t, 1.0, script[1].Level)
	assert.True(t, script[1].IsNoisy)
	assert.Equal(t, 1.0, script[2].Fade)
	assert.True(t, script[1].LevelAverage > script[0].LevelAverage)

	_, err = parseScript(strings.NewReader("loud\n"))
	assert.NotNil(t, err)

	_, err = parseScript(strings.NewReader("# nothing\n"))
	assert.NotNil(t, err)
}

func TestRenderText(t *testing.T) {
	frame := &ledeffects.Frame{
		Width:  2,
		Height: 2,
		Pixels: []model.Color{{R: 0xFF}, {G: 0x10}, {B: 0x01}, {}},
	}
	assert.Equal(t, "FF0000 001000\n000001 000000\n", renderText(frame))
}

func TestServeFrame(t *testing.T) {
	w := httptest.NewRecorder()
	serveFrame(w, httptest.NewRequest(http.MethodGet, "/frame", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.Nil(t, frames.Send(&ledeffects.Frame{Width: 1, Height: 1, Pixels: []model.Color{{R: 1}}}))

	w = httptest.NewRecorder()
	serveFrame(w, httptest.NewRequest(http.MethodGet, "/frame", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"width":1`)

	w = httptest.NewRecorder()
	serveText(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "010000\n", w.Body.String())
}
