package png

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	stdpng "image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomImage(t *testing.T, width, height int, opaque bool) *image.NRGBA {
	t.Helper()

	// Deterministic pixels so failures reproduce.
	r := rand.New(rand.NewSource(int64(width)<<16 | int64(height)))

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.Read(m.Pix)
	if opaque {
		for i := 3; i < len(m.Pix); i += 4 {
			m.Pix[i] = 0xff
		}
	}

	return m
}

func TestRoundTrip(t *testing.T) {
	tables := []struct {
		width, height int
	}{
		{1, 1},
		{3, 2},
		{2, 3},
		{64, 64},
		{400, 400},
	}

	for _, table := range tables {
		m := randomImage(t, table.width, table.height, false)

		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, m))

		got, err := Decode(b)
		require.NoError(t, err)
		assert.Equal(t, m.Rect, got.Rect)
		assert.Equal(t, m.Pix, got.Pix)
	}
}

func TestEncodeLayout(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, randomImage(t, 2, 1, false)))
	data := b.Bytes()

	assert.Equal(t, []byte(signature), data[:8])

	// IHDR immediately follows the signature: 13 byte payload, width
	// and height big-endian, depth 8, RGBA, trailing methods zero.
	assert.Equal(t, uint32(13), binary.BigEndian.Uint32(data[8:12]))
	assert.Equal(t, "IHDR", string(data[12:16]))
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(data[16:20]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(data[20:24]))
	assert.Equal(t, []byte{8, colorRGBA, 0, 0, 0}, data[24:29])

	// The stream ends with an empty IEND chunk.
	assert.Equal(t, "IEND", string(data[len(data)-8:len(data)-4]))
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(data[len(data)-12:len(data)-8]))
}

// The standard library decoder accepts what we emit, CRCs included.
func TestEncodeStdlibDecodes(t *testing.T) {
	m := randomImage(t, 17, 9, false)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, err := stdpng.Decode(b)
	require.NoError(t, err)

	nm, ok := got.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, m.Pix, nm.Pix)
}

// The standard library encoder picks real filters per scanline, which
// exercises the reconstruction paths on organic data. An opaque image
// additionally comes out as 3 channel truecolor.
func TestDecodeStdlibEncoded(t *testing.T) {
	for _, opaque := range []bool{false, true} {
		m := randomImage(t, 33, 21, opaque)

		b := new(bytes.Buffer)
		require.NoError(t, stdpng.Encode(b, m))

		got, err := Decode(b)
		require.NoError(t, err)
		assert.Equal(t, m.Pix, got.Pix)
	}
}

func TestEncodeConvertsSources(t *testing.T) {
	// A non-NRGBA source is converted rather than rejected.
	m := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i] = 0x80
		m.Pix[i+3] = 0xff
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	got, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0x80, 0, 0, 0xff}, got.NRGBAAt(1, 1))
}
