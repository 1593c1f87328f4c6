/*
Package sprite implements the compact run-length encoded sprite format.

Each sprite is trimmed to the minimal rectangle containing its
non-transparent pixels and stored as a single lowercase hex string: a "0x"
marker, five one-byte header fields (a zero pad byte followed by the top,
right, bottom and left edges of the trimmed bounds), then one (count, value)
byte pair per run of identical palette indices inside the bounds, in
row-major order. The palette is shared by every sprite encoded in one
session with index 0 reserved for transparency, so each encoded sprite can
be expanded against the one session palette.
*/
package sprite

const (
	// maxColors is the number of palette slots addressable by a one-byte
	// run value, including the reserved transparent slot.
	maxColors = 256

	// maxRun is the longest run a one-byte count can describe.
	maxRun = 255

	// maxEdge is the largest image dimension whose trimmed bounds still
	// fit the one-byte header fields. The right edge is exclusive so it
	// can reach the full dimension.
	maxEdge = 255
)
