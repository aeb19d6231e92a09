// assets/embed.go
//
// Embedded defaults shipped with the binary:
//   - words.txt:          default lexicon (3–6 letter lowercase words)
//   - migrations/*.sql:   SQLite schema, applied in lexical order by internal/db

package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.txt migrations/*.sql
var FS embed.FS

// Words returns the raw embedded word list.
func Words() ([]byte, error) {
	return FS.ReadFile("words.txt")
}

// Migrations returns the embedded migrations directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		// the directory is embedded at build time; fs.Sub only fails on an invalid path
		panic(err)
	}
	return sub
}
