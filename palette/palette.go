/*
Package palette extracts reduced color palettes from pixel art, for use
as the generation service's color image input.
*/
package palette

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// Extract returns at most n colors representative of m using median
// cut quantization. A paletted source that already fits keeps its
// palette as is.
func Extract(m image.Image, n int) color.Palette {
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= n {
		return append(color.Palette(nil), pm.Palette...)
	}

	q := quantize.MedianCutQuantizer{}
	return q.Quantize(make(color.Palette, 0, n), m)
}

// Strip renders p as a one pixel tall swatch strip, one pixel per
// color, in palette order.
func Strip(p color.Palette) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, len(p), 1))
	for x, c := range p {
		m.Set(x, 0, c)
	}
	return m
}
