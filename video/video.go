/*
Package video implements the two-tone run-length video container used by
the playback engine.

A resource starts with a fixed 12-byte little-endian header:

	offset 0   width         uint16
	offset 2   height        uint16
	offset 4   total frames  uint32
	offset 8   fps           uint16
	offset 10  flags         uint16 (reserved)

followed by one little-endian uint32 byte offset per frame, relative to
the start of the frame data that follows the table, followed by the
concatenated per-frame streams. A frame's encoded length is the distance
to the next offset, or to the end of the resource for the last frame.

Each frame is a bit-level run-length stream: the first byte holds the
starting bit value, then little-endian uint16 run lengths alternate the
bit after every run. Bit 1 maps to the foreground color and bit 0 to the
background color of whatever palette is active at decode time; the
stream itself carries no color.
*/
package video

const (
	headerLen = 12

	// MaxEncodedFrame is the default capacity of the reused buffer a
	// frame's stream is read into. Frames declaring more bytes are
	// truncated to the buffer, a defined lossy degrade: decoding the
	// leading bytes of a stream is always safe and the uncovered tail
	// of the frame falls back to the background color.
	MaxEncodedFrame = 16384
)
