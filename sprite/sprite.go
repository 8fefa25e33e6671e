/*
Package sprite combines equal height animation frames into a single
horizontal spritesheet.
*/
package sprite

import (
	"bytes"
	"errors"
	"image"
	"sync"

	"github.com/pixellab-tools/pixellab/png"
)

// ErrHeightMismatch is returned when the frames do not all share the
// same height.
var ErrHeightMismatch = errors.New("sprite: frames differ in height")

// Merge places the decoded frames side by side in order and returns
// the combined image. Output width is the sum of the frame widths.
func Merge(frames []*image.NRGBA) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	height := frames[0].Rect.Dy()
	width := 0
	for _, f := range frames {
		if f.Rect.Dy() != height {
			return nil, ErrHeightMismatch
		}
		width += f.Rect.Dx()
	}

	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		dst := m.Pix[y*m.Stride : (y+1)*m.Stride]
		x := 0
		for _, f := range frames {
			w := f.Rect.Dx()
			copy(dst[x*4:], f.Pix[y*f.Stride:y*f.Stride+w*4])
			x += w
		}
	}

	return m, nil
}

// Compose decodes each encoded frame, merges them side by side in
// source order and re-encodes the result. Zero frames produce no
// output. The decodes are independent of each other and run
// concurrently; only the merge imposes an order.
func Compose(frames [][]byte) ([]byte, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	decoded := make([]*image.NRGBA, len(frames))
	errs := make([]error, len(frames))

	var wg sync.WaitGroup
	wg.Add(len(frames))
	for i := range frames {
		go func(i int) {
			defer wg.Done()
			decoded[i], errs[i] = png.Decode(bytes.NewReader(frames[i]))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	m, err := Merge(decoded)
	if err != nil {
		return nil, err
	}

	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
