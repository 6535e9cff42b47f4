// Package assets embeds the default word lists used when no lexicon files
// are configured.
package assets

import (
	"embed"
	"io/fs"
)

const (
	AnswersName = "answers.txt"
	AllowedName = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Open opens one of the embedded word lists by name.
func Open(name string) (fs.File, error) {
	return FS.Open(name)
}
