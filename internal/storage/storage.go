package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// Open picks a backend for target: a postgres:// URL selects PostgreSQL, a
// path ending in .db or .sqlite selects SQLite, and anything else is a
// directory for the file store. A leading ~ expands to the home directory.
func Open(target string) Provider {
	if IsPostgresConnString(target) {
		return NewPostgresStore(target)
	}
	path := ExpandHome(target)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	}
	return NewFileStore(path)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
