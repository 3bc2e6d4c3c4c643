// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package photomosaic

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// This file contains the SQLite tile database. It stores the same information
// as the CSV format, the insertion order is kept via the rowid so that tiles
// are always loaded in the order they were added.

const createTilesSQL = `
CREATE TABLE IF NOT EXISTS tiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	top_left INTEGER NOT NULL,
	top_right INTEGER NOT NULL,
	bottom_left INTEGER NOT NULL,
	bottom_right INTEGER NOT NULL
);`

// InitSQLiteDatabase opens (and creates if required) the SQLite database at
// path and makes sure the tiles table exists.
func InitSQLiteDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(createTilesSQL); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "can't create tiles table in %s", path)
	}
	return db, nil
}

// ReadSQLiteTiles reads all tiles from db in insertion order. Rows with
// invalid colors are skipped and logged.
func ReadSQLiteTiles(db *sql.DB) ([]TileEntry, error) {
	rows, err := db.Query(`SELECT path, top_left, top_right, bottom_left, bottom_right
		FROM tiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := make([]TileEntry, 0, 100)
	for rows.Next() {
		var path string
		var packed [NumQuadrants]int64
		if scanErr := rows.Scan(&path, &packed[0], &packed[1], &packed[2], &packed[3]); scanErr != nil {
			log.WithError(errors.Wrap(ErrMalformedRecord, scanErr.Error())).
				Warn("Invalid database entry, skipping")
			continue
		}
		var sig Signature
		for i, v := range packed {
			sig[i] = UnpackRGB(uint32(v))
		}
		res = append(res, NewTileEntry(path, sig))
	}
	return res, rows.Err()
}

// LoadSQLiteDatabase reads all tiles from the SQLite database at path. If the
// file does not exist an error wrapping ErrMissingDatabase is returned (the
// driver would silently create an empty database otherwise).
func LoadSQLiteDatabase(path string) ([]TileEntry, error) {
	if _, statErr := os.Stat(path); statErr != nil {
		if os.IsNotExist(statErr) {
			return nil, errors.Wrap(ErrMissingDatabase, path)
		}
		return nil, statErr
	}
	db, err := InitSQLiteDatabase(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return ReadSQLiteTiles(db)
}

// SQLiteTileWriter implements TileRecordWriter for SQLite databases.
// A tile path that is already in the database is replaced.
type SQLiteTileWriter struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// OpenSQLiteTileWriter opens the database at path for writing, creating it if
// required.
func OpenSQLiteTileWriter(path string) (*SQLiteTileWriter, error) {
	db, err := InitSQLiteDatabase(path)
	if err != nil {
		return nil, err
	}
	stmt, prepErr := db.Prepare(`INSERT OR REPLACE INTO tiles (
		path, top_left, top_right, bottom_left, bottom_right
	) VALUES (?, ?, ?, ?, ?)`)
	if prepErr != nil {
		db.Close()
		return nil, errors.Wrap(prepErr, "can't prepare insert statement")
	}
	return &SQLiteTileWriter{db: db, stmt: stmt}, nil
}

// WriteTile inserts a single tile.
func (w *SQLiteTileWriter) WriteTile(entry TileEntry) error {
	sig := entry.Signature
	_, err := w.stmt.Exec(entry.ID,
		int64(sig[TopLeft].Packed()), int64(sig[TopRight].Packed()),
		int64(sig[BottomLeft].Packed()), int64(sig[BottomRight].Packed()))
	if err != nil {
		return errors.Wrapf(err, "can't insert tile %s", entry.ID)
	}
	return nil
}

// Close closes the statement and the database.
func (w *SQLiteTileWriter) Close() error {
	stmtErr := w.stmt.Close()
	if dbErr := w.db.Close(); dbErr != nil {
		return dbErr
	}
	return stmtErr
}
