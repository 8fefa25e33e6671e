package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(m.Pix); i += 4 {
		// Alternate between two colors.
		if i%8 == 0 {
			m.Pix[i] = 0xff
		} else {
			m.Pix[i+2] = 0xff
		}
		m.Pix[i+3] = 0xff
	}

	p := Extract(m, 4)
	require.NotEmpty(t, p)
	assert.True(t, len(p) <= 4)
}

func TestExtractPaletted(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{0xff, 0, 0, 0xff},
		color.NRGBA{0, 0xff, 0, 0xff},
	}
	m := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)

	// A source that already fits keeps its palette untouched.
	assert.Equal(t, color.Palette(palette), Extract(m, 16))
}

func TestStrip(t *testing.T) {
	p := color.Palette{
		color.NRGBA{0xff, 0, 0, 0xff},
		color.NRGBA{0, 0xff, 0, 0xff},
		color.NRGBA{0, 0, 0xff, 0xff},
	}

	m := Strip(p)
	assert.Equal(t, 3, m.Rect.Dx())
	assert.Equal(t, 1, m.Rect.Dy())
	for x, c := range p {
		assert.Equal(t, c, color.Color(m.NRGBAAt(x, 0)))
	}
}
