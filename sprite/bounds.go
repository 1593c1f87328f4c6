package sprite

import "image"

// Bounds is the minimal axis-aligned rectangle containing every pixel with
// non-zero alpha. Top, Bottom and Left are inclusive, Right is exclusive.
// Coordinates are relative to the top-left corner of the scanned image.
type Bounds struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

func alphaAt(m image.Image, x, y int) uint32 {
	b := m.Bounds()
	_, _, _, a := m.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return a
}

func rowClear(m image.Image, y int) bool {
	for x := 0; x < m.Bounds().Dx(); x++ {
		if alphaAt(m, x, y) != 0 {
			return false
		}
	}
	return true
}

func colClear(m image.Image, x int) bool {
	for y := 0; y < m.Bounds().Dy(); y++ {
		if alphaAt(m, x, y) != 0 {
			return false
		}
	}
	return true
}

// Trim scans m for the minimal rectangle containing all non-transparent
// pixels.
//
// A fully transparent image collapses to an empty span rather than an
// error: the row scans clamp at row zero while the column scan runs the
// right edge past the left one, leaving Left == Right. The asymmetry
// between the row and column clamps is part of the wire format and must not
// change.
func Trim(m image.Image) Bounds {
	w, h := m.Bounds().Dx(), m.Bounds().Dy()

	bottom := h - 1
	for bottom > 0 && rowClear(m, bottom) {
		bottom--
	}

	top := 0
	for top < bottom && rowClear(m, top) {
		top++
	}

	right := w - 1
	for right >= 0 && colClear(m, right) {
		right--
	}

	left := 0
	for left < right && colClear(m, left) {
		left++
	}

	return Bounds{Top: top, Right: right + 1, Bottom: bottom, Left: left}
}
