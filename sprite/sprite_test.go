package sprite

import (
	"bytes"
	"image"
	"testing"

	"github.com/pixellab-tools/pixellab/png"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeFrame(t *testing.T, width, height int, pix []byte) []byte {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(m.Pix, pix)

	b := new(bytes.Buffer)
	require.NoError(t, png.Encode(b, m))
	return b.Bytes()
}

func TestCompose(t *testing.T) {
	frames := [][]byte{
		encodeFrame(t, 2, 1, []byte{
			200, 0, 0, 255, 0, 150, 0, 255,
		}),
		encodeFrame(t, 2, 1, []byte{
			0, 0, 99, 255, 0, 0, 99, 255,
		}),
	}

	sheet, err := Compose(frames)
	require.NoError(t, err)

	m, err := png.Decode(bytes.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Rect.Dx())
	assert.Equal(t, 1, m.Rect.Dy())
	assert.Equal(t, []byte{
		200, 0, 0, 255, 0, 150, 0, 255,
		0, 0, 99, 255, 0, 0, 99, 255,
	}, m.Pix)
}

func TestComposeWidths(t *testing.T) {
	widths := []int{1, 2, 3}
	height := 2

	var frames [][]byte
	for k, w := range widths {
		pix := make([]byte, w*height*4)
		for i := range pix {
			pix[i] = byte(k + 1)
		}
		frames = append(frames, encodeFrame(t, w, height, pix))
	}

	sheet, err := Compose(frames)
	require.NoError(t, err)

	m, err := png.Decode(bytes.NewReader(sheet))
	require.NoError(t, err)
	assert.Equal(t, 6, m.Rect.Dx())
	assert.Equal(t, height, m.Rect.Dy())

	// Pixel (x, y) belongs to the frame owning that column range.
	for y := 0; y < height; y++ {
		offset := 0
		for k, w := range widths {
			for x := offset; x < offset+w; x++ {
				assert.Equal(t, byte(k+1), m.Pix[y*m.Stride+x*4], "frame %d column %d", k, x)
			}
			offset += w
		}
	}
}

func TestComposeEmpty(t *testing.T) {
	sheet, err := Compose(nil)
	require.NoError(t, err)
	assert.Nil(t, sheet)
}

func TestComposeHeightMismatch(t *testing.T) {
	frames := [][]byte{
		encodeFrame(t, 1, 1, make([]byte, 4)),
		encodeFrame(t, 1, 2, make([]byte, 8)),
	}

	sheet, err := Compose(frames)
	assert.Nil(t, sheet)
	assert.Equal(t, ErrHeightMismatch, err)
}

func TestComposeBadFrame(t *testing.T) {
	frames := [][]byte{
		encodeFrame(t, 1, 1, make([]byte, 4)),
		[]byte("not a png"),
	}

	sheet, err := Compose(frames)
	assert.Nil(t, sheet)
	assert.Error(t, err)
}

func TestMergeEmpty(t *testing.T) {
	m, err := Merge(nil)
	require.NoError(t, err)
	assert.Nil(t, m)
}
