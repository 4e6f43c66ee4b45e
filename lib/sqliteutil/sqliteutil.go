package sqliteutil

import (
	"database/sql"
	"os"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens the database at `path` and ensures `schema` is applied.
// `path` is a local sqlite file (created when missing), ":memory:", or
// a libsql:// url for a remote database (append ?authToken=... for
// authenticated servers).
func OpenDB(schema string, path string) (*sql.DB, error) {
	if strings.HasPrefix(path, "libsql://") {
		db, err := sql.Open("libsql", path)
		if err != nil {
			return nil, err
		}
		err = ApplySchema(db, schema)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	if path != ":memory:" {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	err = ApplySchema(db, schema)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// ApplySchema runs `schema` against an open database, tolerating
// tables that already exist.
func ApplySchema(db *sql.DB, schema string) error {
	if schema == "" {
		return nil
	}
	_, err := db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}
	return nil
}
