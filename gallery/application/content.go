package application

import (
	"embed"
	"io/fs"
)

//go:embed content/*.md
var defaultContent embed.FS

// DefaultContent holds the built-in markdown for the static sections.
func DefaultContent() fs.FS {
	sub, err := fs.Sub(defaultContent, "content")
	if err != nil {
		panic(err)
	}
	return sub
}
