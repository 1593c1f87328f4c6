/*
Package spritepack converts a directory tree of layered sprite artwork into
a compact palette-indexed, run-length encoded collection suitable for
embedding as static data.
*/
package spritepack

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bodgit/spritepack/collection"
	"github.com/bodgit/spritepack/sprite"
	"github.com/klauspost/compress/gzip"
)

// SpritePack orchestrates one encoding session: the shared palette, the
// collection being assembled and an optional encode cache.
type SpritePack struct {
	db      *EncodeDB
	logger  *log.Logger
	palette *sprite.Palette
	encoder *sprite.Encoder
	coll    *collection.Collection
	pending []cachedSprite
}

// New returns a new encoding session. A non-nil db pre-seeds the palette
// from the cache so previously cached encodings keep their indices; the
// background colors are carried through verbatim to the serialized wrapper.
func New(db *EncodeDB, logger *log.Logger, backgrounds ...string) (*SpritePack, error) {
	palette := sprite.NewPalette()

	if db != nil {
		colors, err := db.Palette()
		if err != nil {
			return nil, err
		}
		if palette, err = sprite.NewPaletteWith(colors); err != nil {
			return nil, err
		}
	}

	return &SpritePack{
		db:      db,
		logger:  logger,
		palette: palette,
		encoder: sprite.NewEncoder(palette),
		coll:    collection.New(palette, backgrounds...),
	}, nil
}

// Palette returns the session palette.
func (s *SpritePack) Palette() *sprite.Palette {
	return s.palette
}

// Collection returns the collection being assembled.
func (s *SpritePack) Collection() *collection.Collection {
	return s.coll
}

// Quantize caps the number of opaque colors a single image may contribute;
// images over the budget are median-cut quantized down to it before their
// colors register in the palette. Zero disables quantization.
func (s *SpritePack) Quantize(maxColors int) {
	s.encoder.MaxImageColors = maxColors
}

// Flatten controls whether serialization folds every category into root.
func (s *SpritePack) Flatten(flatten bool) {
	s.coll.Flatten = flatten
}

// Write serializes the collection to w as JSON.
func (s *SpritePack) Write(w io.Writer) error {
	b, err := json.Marshal(s.coll)
	if err != nil {
		return err
	}

	_, err = w.Write(b)

	return err
}

// WriteFile serializes the collection and writes it to path in one shot; a
// path ending in .gz is gzip-compressed. Nothing is written when
// serialization fails.
func (s *SpritePack) WriteFile(path string) error {
	b, err := json.Marshal(s.coll)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".gz") {
		buf := new(bytes.Buffer)
		zw := gzip.NewWriter(buf)
		if _, err := zw.Write(b); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		b = buf.Bytes()
	}

	return os.WriteFile(path, b, 0o644)
}

// Close releases the encode cache, if any.
func (s *SpritePack) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
