/*
Package collection assembles encoded sprites into the serializable output
structure: the shared session palette followed by one ordered list of
filename/data pairs per category.
*/
package collection

import (
	"bytes"
	"encoding/json"
)

// Root is the implicit category for images not assigned to one.
const Root = "root"

// Entry pairs an encoded sprite with the filename it came from.
type Entry struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

// PaletteSource yields the session palette in index order at marshal time.
type PaletteSource interface {
	Colors() []string
}

// Collection accumulates encoded sprites under optional categories and
// serializes the final palette + images structure. It is built once per
// encoding session, fully materialized, then serialized.
type Collection struct {
	palette     PaletteSource
	backgrounds []string

	// Flatten folds every category into root on serialization,
	// preserving overall insertion order.
	Flatten bool

	images     []Entry
	position   map[string]int
	categories []string
	members    map[string][]string
	assigned   map[string]string
}

// New returns an empty collection serializing the palette from p. The
// background colors are caller-supplied static configuration carried
// through verbatim to the serialized wrapper.
func New(p PaletteSource, backgrounds ...string) *Collection {
	return &Collection{
		palette:     p,
		backgrounds: backgrounds,
		position:    make(map[string]int),
		members:     make(map[string][]string),
		assigned:    make(map[string]string),
	}
}

// Add records the encoded sprite data under filename. An empty category
// leaves the image in the implicit root category; categories are created on
// first use and keep their first-use order. Re-adding a filename overwrites
// its data in place, so re-running an encode over the same tree is
// idempotent.
func (c *Collection) Add(filename, data, category string) {
	if i, ok := c.position[filename]; ok {
		c.images[i].Data = data
		if c.assigned[filename] != category {
			c.remove(c.assigned[filename], filename)
			c.insert(category, filename)
		}
		return
	}

	c.position[filename] = len(c.images)
	c.images = append(c.images, Entry{Filename: filename, Data: data})
	c.insert(category, filename)
}

// Len returns the number of images in the collection.
func (c *Collection) Len() int {
	return len(c.images)
}

func (c *Collection) insert(category, filename string) {
	c.assigned[filename] = category
	if category == "" {
		return
	}
	if _, ok := c.members[category]; !ok {
		c.categories = append(c.categories, category)
	}
	c.members[category] = append(c.members[category], filename)
}

func (c *Collection) remove(category, filename string) {
	if category == "" {
		return
	}
	names := c.members[category]
	for i, n := range names {
		if n == filename {
			c.members[category] = append(names[:i], names[i+1:]...)
			break
		}
	}
}

// Format returns the category view of the collection. With flatten set, or
// when no category was ever used, every image sits under root in overall
// insertion order; otherwise each category lists its images in
// first-occurrence order and root collects the uncategorized remainder.
func (c *Collection) Format(flatten bool) map[string][]Entry {
	out := make(map[string][]Entry)

	if flatten || len(c.categories) == 0 {
		out[Root] = append([]Entry(nil), c.images...)
		return out
	}

	for _, cat := range c.categories {
		entries := make([]Entry, 0, len(c.members[cat]))
		for _, name := range c.members[cat] {
			entries = append(entries, c.images[c.position[name]])
		}
		out[cat] = entries
	}

	var root []Entry
	for _, e := range c.images {
		if c.assigned[e.Filename] == "" {
			root = append(root, e)
		}
	}
	if len(root) > 0 {
		out[Root] = root
	}

	return out
}

func writeField(b *bytes.Buffer, name string, v interface{}) error {
	if b.Len() > 1 {
		b.WriteByte(',')
	}

	k, err := json.Marshal(name)
	if err != nil {
		return err
	}
	b.Write(k)
	b.WriteByte(':')

	j, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Write(j)

	return nil
}

// MarshalJSON writes the wrapper structure: the background colors, the
// session palette in index order with the transparent sentinel first, then
// one array of filename/data pairs per category with root last, honoring
// Flatten. Key order is written by hand so the artifact is reproducible.
func (c *Collection) MarshalJSON() ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteByte('{')

	if len(c.backgrounds) > 0 {
		if err := writeField(b, "bgcolors", c.backgrounds); err != nil {
			return nil, err
		}
	}

	if err := writeField(b, "palette", c.palette.Colors()); err != nil {
		return nil, err
	}

	view := c.Format(c.Flatten)

	keys := make([]string, 0, len(view))
	if c.Flatten || len(c.categories) == 0 {
		keys = append(keys, Root)
	} else {
		keys = append(keys, c.categories...)
		if _, ok := view[Root]; ok {
			keys = append(keys, Root)
		}
	}

	for _, k := range keys {
		if err := writeField(b, k, view[k]); err != nil {
			return nil, err
		}
	}

	b.WriteByte('}')

	return b.Bytes(), nil
}
