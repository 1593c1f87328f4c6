package sprite

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestImage(w, h int, pixels map[image.Point]color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p, c := range pixels {
		m.SetNRGBA(p.X, p.Y, c)
	}
	return m
}

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestTrim(t *testing.T) {
	t.Run("single pixel", func(t *testing.T) {
		m := newTestImage(8, 8, map[image.Point]color.NRGBA{
			{X: 3, Y: 5}: red,
		})

		require.Equal(t, Bounds{Top: 5, Right: 4, Bottom: 5, Left: 3}, Trim(m))
	})

	t.Run("fully opaque", func(t *testing.T) {
		m := image.NewNRGBA(image.Rect(0, 0, 4, 3))
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				m.SetNRGBA(x, y, red)
			}
		}

		require.Equal(t, Bounds{Top: 0, Right: 4, Bottom: 2, Left: 0}, Trim(m))
	})

	t.Run("transparent border", func(t *testing.T) {
		m := newTestImage(10, 10, map[image.Point]color.NRGBA{
			{X: 2, Y: 3}: red,
			{X: 6, Y: 7}: red,
		})

		require.Equal(t, Bounds{Top: 3, Right: 7, Bottom: 7, Left: 2}, Trim(m))
	})

	t.Run("fully transparent collapses to empty span", func(t *testing.T) {
		m := image.NewNRGBA(image.Rect(0, 0, 6, 4))

		// The degenerate shape is asymmetric: rows clamp at zero while
		// the column scan leaves an empty Left == Right span.
		require.Equal(t, Bounds{Top: 0, Right: 0, Bottom: 0, Left: 0}, Trim(m))
	})

	t.Run("translated rectangle", func(t *testing.T) {
		m := image.NewNRGBA(image.Rect(100, 200, 108, 208))
		m.SetNRGBA(101, 202, red)

		require.Equal(t, Bounds{Top: 2, Right: 2, Bottom: 2, Left: 1}, Trim(m))
	})

	t.Run("partial alpha counts as content", func(t *testing.T) {
		m := newTestImage(5, 5, map[image.Point]color.NRGBA{
			{X: 4, Y: 0}: {R: 0xff, A: 0x01},
		})

		require.Equal(t, Bounds{Top: 0, Right: 5, Bottom: 0, Left: 4}, Trim(m))
	})
}
