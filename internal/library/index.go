package library

import (
	"os"
	"path/filepath"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sysmod-lang/sysmod/internal/config"
)

// indexDB is the on-disk qualified-name index cache. It maps every
// qualified name a library file declares to that file, so a lazy load
// can parse only the files it actually needs. The cache is advisory:
// any failure to open, read or write it degrades to eager loading.
type indexDB struct {
	conn *sqlite.Conn
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS decls (
	name  TEXT PRIMARY KEY,
	file  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS files (
	file  TEXT PRIMARY KEY,
	mtime INTEGER NOT NULL
);
`

func openIndex(dir string) (*indexDB, error) {
	path := filepath.Join(dir, config.LibraryCacheName)
	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return nil, err
	}
	if err := sqlitex.ExecuteScript(conn, indexSchema, nil); err != nil {
		conn.Close()
		return nil, err
	}
	return &indexDB{conn: conn}, nil
}

func (db *indexDB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// fresh reports whether the cache matches the current state of every
// manifest file. A stale or incomplete cache must be rebuilt before its
// answers can be trusted.
func (db *indexDB) fresh(dir string, files []string) bool {
	for _, f := range files {
		info, err := os.Stat(filepath.Join(dir, f))
		if err != nil {
			return false
		}
		var got int64
		found := false
		err = sqlitex.Execute(db.conn, "SELECT mtime FROM files WHERE file = ?", &sqlitex.ExecOptions{
			Args: []interface{}{f},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				got = stmt.ColumnInt64(0)
				found = true
				return nil
			},
		})
		if err != nil || !found || got != info.ModTime().Unix() {
			return false
		}
	}
	return true
}

// fileFor returns the file declaring the given qualified name, or "".
func (db *indexDB) fileFor(name string) string {
	var file string
	err := sqlitex.Execute(db.conn, "SELECT file FROM decls WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			file = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return ""
	}
	return file
}

// rebuild replaces the cache content with the given name-to-file map.
func (db *indexDB) rebuild(dir string, decls map[string]string, files []string) error {
	endFn, err := sqlitex.ImmediateTransaction(db.conn)
	if err != nil {
		return err
	}
	defer endFn(&err)

	if err = sqlitex.ExecuteTransient(db.conn, "DELETE FROM decls", nil); err != nil {
		return err
	}
	if err = sqlitex.ExecuteTransient(db.conn, "DELETE FROM files", nil); err != nil {
		return err
	}
	for name, file := range decls {
		err = sqlitex.Execute(db.conn, "INSERT INTO decls (name, file) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{name, file},
		})
		if err != nil {
			return err
		}
	}
	for _, f := range files {
		info, statErr := os.Stat(filepath.Join(dir, f))
		if statErr != nil {
			continue
		}
		err = sqlitex.Execute(db.conn, "INSERT INTO files (file, mtime) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{f, info.ModTime().Unix()},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
