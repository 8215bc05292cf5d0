// Package assets embeds the default word lists shipped with the binary.
package assets

import "embed"

// Default list names inside FS.
const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed allowed.txt answers.txt
var FS embed.FS
