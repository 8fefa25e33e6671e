package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/draw"
	"io"
)

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) writeChunk(typ string, payload []byte) {
	var tmp [4]byte

	binary.BigEndian.PutUint32(tmp[:], uint32(len(payload)))
	e.write(tmp[:])
	e.write([]byte(typ))
	e.write(payload)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	binary.BigEndian.PutUint32(tmp[:], crc.Sum32())
	e.write(tmp[:])
}

func headerPayload(width, height int) []byte {
	var p [13]byte
	binary.BigEndian.PutUint32(p[0:4], uint32(width))
	binary.BigEndian.PutUint32(p[4:8], uint32(height))
	p[8] = 8
	p[9] = colorRGBA
	// Compression, filter and interlace methods are always zero.
	return p[:]
}

// Encode writes the Image m to w in PNG format, always as 8-bit RGBA.
// Every scanline is emitted with the None filter; the compression lost
// by never choosing a better filter is traded for determinism.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()

	nm, _ := m.(*image.NRGBA)
	if nm == nil || nm.Rect.Min != (image.Point{}) {
		nm = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nm, nm.Bounds(), m, b.Min, draw.Src)
	}

	width, height := nm.Rect.Dx(), nm.Rect.Dy()
	stride := width * 4

	scanlines := make([]byte, 0, height*(1+stride))
	for y := 0; y < height; y++ {
		scanlines = append(scanlines, ftNone)
		scanlines = append(scanlines, nm.Pix[y*nm.Stride:y*nm.Stride+stride]...)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(scanlines); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	e := encoder{w: w}
	e.write([]byte(signature))
	e.writeChunk("IHDR", headerPayload(width, height))
	e.writeChunk("IDAT", compressed.Bytes())
	e.writeChunk("IEND", nil)

	return e.err
}
