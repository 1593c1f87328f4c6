package sprite

import (
	"errors"
	"sync"
)

// ErrPaletteFull is returned when registering a new color would exceed the
// 256 palette slots addressable by a one-byte run value.
var ErrPaletteFull = errors.New("sprite: palette full")

// Transparent is the sentinel palette entry fixed at index 0.
const Transparent = ""

// Palette assigns stable one-byte indices to colors, each a lowercase
// 6-hex-digit RGB string. Index 0 is reserved for the transparent sentinel;
// every other color receives the next free index the first time it is seen
// and keeps it for the lifetime of the palette. One Palette is shared by
// every sprite encoded in a session, which is what makes the encoded
// sprites mutually decodable.
//
// Palette is safe for concurrent use, though index assignment order then
// depends on scheduling.
type Palette struct {
	mu     sync.Mutex
	colors []string
	index  map[string]uint8
}

// NewPalette returns a palette containing only the transparent sentinel.
func NewPalette() *Palette {
	return &Palette{
		colors: []string{Transparent},
		index:  map[string]uint8{Transparent: 0},
	}
}

// NewPaletteWith returns a palette pre-seeded with an ordered list of
// colors, their indices fixed by list order starting after the transparent
// slot. A leading transparent sentinel is skipped so a list previously
// obtained from Colors round-trips unchanged.
func NewPaletteWith(colors []string) (*Palette, error) {
	p := NewPalette()
	for i, c := range colors {
		if i == 0 && c == Transparent {
			continue
		}
		if _, err := p.Index(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Index returns the palette index for color, assigning the next free index
// on first sight. Registering a color the palette has no room for returns
// ErrPaletteFull; already known colors always resolve.
func (p *Palette) Index(color string) (uint8, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i, ok := p.index[color]; ok {
		return i, nil
	}

	if len(p.colors) >= maxColors {
		return 0, ErrPaletteFull
	}

	i := uint8(len(p.colors))
	p.colors = append(p.colors, color)
	p.index[color] = i

	return i, nil
}

// Colors returns a copy of the palette in index order, transparent sentinel
// first.
func (p *Palette) Colors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.colors...)
}

// Len returns the number of palette entries including the transparent slot.
func (p *Palette) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.colors)
}
