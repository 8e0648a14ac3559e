package ledeffects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamuesp-libs/ledeffects-symmetric-bar/model"
)

func TestHexToColor(t *testing.T) {
	cases := []struct {
		in   string
		want model.Color
	}{
		{"#FF8000", model.Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}},
		{"ff8000", model.Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}},
		{"0x102030", model.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}},
		{" #00000080 ", model.Color{A: 0x80}},
	}
	for _, tc := range cases {
		got, err := HexToColor(tc.in)
		require.Nil(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestHexToColorMalformed(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#GG0000", "#FF00000G", "red", "#12345Z", "#FF000G", "0x12 456"} {
		_, err := HexToColor(in)
		assert.NotNil(t, err, in)
	}
}

func TestHSVToColor(t *testing.T) {
	assert.Equal(t, model.Color{R: 255, A: 255}, HSVToColor(0, 1, 1))
	assert.Equal(t, model.Color{G: 255, A: 255}, HSVToColor(120, 1, 1))
	assert.Equal(t, model.Color{B: 255, A: 255}, HSVToColor(240, 1, 1))

	// The ends of the hue sweep are the same red
	assert.Equal(t, HSVToColor(0, 1, 0.5), HSVToColor(360, 1, 0.5))
	assert.Equal(t, HSVToColor(240, 1, 1), HSVToColor(-120, 1, 1))

	assert.Equal(t, model.Color{R: 128, A: 255}, HSVToColor(360, 1, 0.5))
	assert.Equal(t, model.Color{A: 255}, HSVToColor(200, 1, 0))
}

func TestFadeColor(t *testing.T) {
	c := model.Color{R: 200, G: 100, B: 50, A: 255}

	assert.Equal(t, c, FadeColor(c, 1.0))
	assert.Equal(t, model.Black, FadeColor(c, 0))
	assert.Equal(t, model.Color{R: 100, G: 50, B: 25, A: 127}, FadeColor(c, 0.5))
}
