// assets/embed.go
//
// Embedded fallback word list, used when no corpus file or URL is configured
// or reachable. The list is ordered most frequent first in the ANC
// token-count layout ("word<TAB>count").
package assets

import (
	"embed"
	"io/fs"
)

// WordsFile is the name of the embedded frequency list inside FS.
const WordsFile = "words.txt"

//go:embed words.txt
var FS embed.FS

// OpenWords opens the embedded frequency list.
func OpenWords() (fs.File, error) {
	return FS.Open(WordsFile)
}
