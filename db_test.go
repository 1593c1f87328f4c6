package spritepack

import (
	"bytes"
	"encoding/json"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDB(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache.db")

	db, err := NewEncodeDB(file)
	require.NoError(t, err)

	colors, err := db.Palette()
	require.NoError(t, err)
	require.Empty(t, colors)

	require.NoError(t, db.save(
		[]string{"", "ff0000"},
		[]cachedSprite{{hash: "00000000deadbeef", data: "0x00000100000101"}},
	))

	t.Run("lookup", func(t *testing.T) {
		data, err := db.FindSpriteByHash("00000000deadbeef")
		require.NoError(t, err)
		require.Equal(t, "0x00000100000101", data)

		data, err = db.FindSpriteByHash("unknown")
		require.NoError(t, err)
		require.Empty(t, data)
	})

	t.Run("palette grows append-only", func(t *testing.T) {
		require.NoError(t, db.save([]string{"", "ff0000", "00ff00"}, nil))

		colors, err := db.Palette()
		require.NoError(t, err)
		require.Equal(t, []string{"", "ff0000", "00ff00"}, colors)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		require.NoError(t, db.Close())

		db, err = NewEncodeDB(file)
		require.NoError(t, err)

		colors, err := db.Palette()
		require.NoError(t, err)
		require.Equal(t, []string{"", "ff0000", "00ff00"}, colors)
	})

	require.NoError(t, db.Close())
}

func TestEncodeTreeWithCache(t *testing.T) {
	dir := testTree(t)
	file := filepath.Join(t.TempDir(), "cache.db")

	encode := func(logger *log.Logger) []byte {
		db, err := NewEncodeDB(file)
		require.NoError(t, err)

		s, err := New(db, logger)
		require.NoError(t, err)
		defer s.Close()

		require.NoError(t, s.EncodeTree(dir))

		b, err := json.Marshal(s.Collection())
		require.NoError(t, err)

		return b
	}

	first := encode(discard())

	var buf bytes.Buffer
	second := encode(log.New(&buf, "", 0))

	// The second run hits the cache for every image and still produces
	// an identical artifact because the persisted palette pre-seeds the
	// registry.
	require.Equal(t, first, second)
	require.Contains(t, buf.String(), "reusing cached encoding")
}
