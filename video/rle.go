package video

import "encoding/binary"

// DecodeFrame expands one frame's run-length stream into pix, mapping
// bit 1 to fg and bit 0 to bg, or the other way around when invert is
// set. The swap is resolved once on entry, never per pixel. Runs are
// consumed until the stream or pix is exhausted, with the final run
// clamped to the end of pix; any pixels the stream leaves uncovered are
// set to the background so nothing stale survives from a previous frame.
// Decoding never fails: short, truncated and empty input all produce a
// fully defined frame.
func DecodeFrame(enc []byte, pix []uint16, fg, bg uint16, invert bool) {
	if invert {
		fg, bg = bg, fg
	}

	i := 0
	if len(enc) > 0 {
		bit := enc[0] != 0
		for pos := 1; pos+1 < len(enc) && i < len(pix); pos += 2 {
			run := int(binary.LittleEndian.Uint16(enc[pos:]))
			if run > len(pix)-i {
				run = len(pix) - i
			}

			c := bg
			if bit {
				c = fg
			}
			for end := i + run; i < end; i++ {
				pix[i] = c
			}

			bit = !bit
		}
	}

	for ; i < len(pix); i++ {
		pix[i] = bg
	}
}
