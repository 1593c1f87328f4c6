package spritepack

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// EncodeDB is a sqlite-backed cache of encoded sprites keyed by content
// hash, together with the persisted session palette that keeps the cached
// encodings index-stable across runs.
type EncodeDB struct {
	db *sql.DB
}

// NewEncodeDB opens, creating if necessary, the cache database at file.
func NewEncodeDB(file string) (*EncodeDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (idx INTEGER PRIMARY KEY NOT NULL, color TEXT NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (hash TEXT PRIMARY KEY NOT NULL, data TEXT NOT NULL)"); err != nil {
		return nil, err
	}

	return &EncodeDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *EncodeDB) Close() error {
	return db.db.Close()
}

// Palette returns the persisted palette in index order, transparent
// sentinel included. An empty cache yields an empty list.
func (db *EncodeDB) Palette() ([]string, error) {
	rows, err := db.db.Query("SELECT color FROM palette ORDER BY idx")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colors []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}

	return colors, rows.Err()
}

// FindSpriteByHash returns the cached encoding for a content hash, or the
// empty string when the hash is unknown.
func (db *EncodeDB) FindSpriteByHash(hash string) (string, error) {
	var data string
	switch err := db.db.QueryRow("SELECT data FROM sprite WHERE hash = ?", hash).Scan(&data); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return data, nil
	default:
		return "", err
	}
}

type cachedSprite struct {
	hash string
	data string
}

// save persists the session palette and the newly encoded sprites in one
// transaction. The palette is append-only, so INSERT OR IGNORE leaves
// earlier runs' index assignments untouched; a run that fails before save
// leaves the cache exactly as it was.
func (db *EncodeDB) save(colors []string, sprites []cachedSprite) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, c := range colors {
		if _, err := tx.Exec("INSERT OR IGNORE INTO palette (idx, color) VALUES (?, ?)", i, c); err != nil {
			return err
		}
	}

	for _, s := range sprites {
		if _, err := tx.Exec("INSERT OR REPLACE INTO sprite (hash, data) VALUES (?, ?)", s.hash, s.data); err != nil {
			return err
		}
	}

	return tx.Commit()
}
