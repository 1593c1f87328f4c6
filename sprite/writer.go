package sprite

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// ErrImageTooLarge is returned when an image dimension exceeds 255 pixels
// and the trimmed bounds could no longer fit the one-byte header fields.
var ErrImageTooLarge = errors.New("sprite: image too large")

// Encoder encodes images against a shared session palette.
type Encoder struct {
	palette *Palette

	// MaxImageColors, when non-zero, median-cut quantizes any image
	// carrying more opaque colors than this down to the budget before
	// its colors are registered. Zero disables quantization and an
	// oversized image surfaces ErrPaletteFull once the palette runs out
	// of slots.
	MaxImageColors int
}

// NewEncoder returns an encoder registering colors in p.
func NewEncoder(p *Palette) *Encoder {
	return &Encoder{palette: p}
}

// Palette returns the session palette the encoder registers colors in.
func (e *Encoder) Palette() *Palette {
	return e.palette
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func opaqueColors(m image.Image) map[string]struct{} {
	colors := make(map[string]struct{})
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			colors[hexColor(c)] = struct{}{}
		}
	}
	return colors
}

// Encode trims m to its non-transparent bounds, maps every remaining pixel
// to its palette index in row-major order and returns the encoded hex
// string. Fully transparent pixels always map to index 0 no matter which
// color they carry.
func (e *Encoder) Encode(m image.Image) (string, error) {
	b := m.Bounds()
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		return "", ErrImageTooLarge
	}

	if e.MaxImageColors > 0 && len(opaqueColors(m)) > e.MaxImageColors {
		q := quantize.MedianCutQuantizer{AddTransparent: true}
		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, e.MaxImageColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
		m = pm
	}

	bounds := Trim(m)

	stream := make([]uint8, 0, (bounds.Bottom-bounds.Top+1)*(bounds.Right-bounds.Left))
	for y := bounds.Top; y <= bounds.Bottom; y++ {
		for x := bounds.Left; x < bounds.Right; x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				stream = append(stream, 0)
				continue
			}

			i, err := e.palette.Index(hexColor(c))
			if err != nil {
				return "", err
			}
			stream = append(stream, i)
		}
	}

	_, body := EncodeRuns(stream)

	header := hex.EncodeToString([]byte{
		0x00,
		byte(bounds.Top),
		byte(bounds.Right),
		byte(bounds.Bottom),
		byte(bounds.Left),
	})

	return "0x" + header + body, nil
}
