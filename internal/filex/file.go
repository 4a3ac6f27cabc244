// Package filex prepares local paths used by the SQLite record store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SQLitePath returns the filesystem path behind a SQLite DSN, or "" for
// in-memory databases. "file:" URIs are stripped of scheme and query.
func SQLitePath(dsn string) string {
	if dsn == "" || dsn == ":memory:" {
		return ""
	}
	if rest, ok := strings.CutPrefix(dsn, "file:"); ok {
		path, query, _ := strings.Cut(rest, "?")
		if path == ":memory:" || strings.Contains(query, "mode=memory") {
			return ""
		}
		return path
	}
	return dsn
}

// EnsureParentDir creates the directory holding path. Paths in the current
// directory need nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
