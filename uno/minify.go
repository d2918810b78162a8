package uno

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Characters around which whitespace carries no meaning in CSS.
const noSpaceAround = "{}();:,>"

// minifyCSS strips comments and collapses whitespace by re-emitting the
// lexer token stream. Whitespace between two word-like tokens (descendant
// combinators, space-separated values) is preserved as a single space.
func minifyCSS(input string) (string, error) {
	lexer := css.NewLexer(parse.NewInputString(input))

	var sb strings.Builder
	pendingSpace := false
	lastByte := byte(0)

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return "", fmt.Errorf("lexing css: %w", err)
			}
			break
		}

		switch tt {
		case css.WhitespaceToken:
			pendingSpace = true
			continue
		case css.CommentToken:
			continue
		}

		if pendingSpace && len(text) > 0 && lastByte != 0 &&
			!strings.ContainsRune(noSpaceAround, rune(lastByte)) &&
			!strings.ContainsRune(noSpaceAround, rune(text[0])) {
			sb.WriteByte(' ')
		}
		pendingSpace = false

		sb.Write(text)
		if len(text) > 0 {
			lastByte = text[len(text)-1]
		}
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
