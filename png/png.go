/*
Package png implements a decoder and encoder for the subset of the PNG
format produced by the PixelLab generation service: 8-bit truecolor
images, with or without alpha, non-interlaced.

A stream is the fixed 8 byte signature followed by a sequence of chunks,
each framed as a big-endian uint32 payload length, a 4 byte ASCII type,
the payload and a CRC-32 over type plus payload. Only the IHDR, IDAT and
IEND chunks are meaningful here; anything else is skipped. The IDAT
payloads concatenate into one zlib stream holding the scanlines: per
row, a leading filter selector byte followed by the filtered pixel
bytes. Decoded images are always normalized to four channels.
*/
package png

const signature = "\x89PNG\r\n\x1a\n"

// Color types, as per the PNG specification. Grayscale and paletted
// images are deliberately not handled.
const (
	colorRGB  = 2
	colorRGBA = 6
)

// Per-row filter types.
const (
	ftNone = iota
	ftSub
	ftUp
	ftAverage
	ftPaeth
)
