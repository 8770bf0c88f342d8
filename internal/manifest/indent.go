package manifest

import (
	"bytes"
	"errors"

	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// detectNewline picks the line-ending style from the first line break.
// Documents without a line break default to "\n".
func detectNewline(src []byte) string {
	idx := bytes.IndexByte(src, '\n')
	if idx > 0 && src[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// detectIndent derives the indentation unit from the first indented line
// and validates the rest of the document against it. Mixing tabs and
// spaces, or (for JSON) indentation that is not a whole multiple of the
// unit, fails fast rather than risking silently normalized output later.
func detectIndent(src []byte, format Format) (string, error) {
	unit := ""
	offset := 0

	for offset < len(src) {
		lineEnd := bytes.IndexByte(src[offset:], '\n')
		var line []byte
		if lineEnd < 0 {
			line = src[offset:]
			lineEnd = len(src) - offset
		} else {
			line = src[offset : offset+lineEnd]
		}
		lineStart := offset
		offset += lineEnd + 1

		ws := leadingWhitespace(line)
		if len(ws) == 0 || len(ws) == len(line) {
			continue // unindented or blank line
		}

		if bytes.IndexByte(ws, ' ') >= 0 && bytes.IndexByte(ws, '\t') >= 0 {
			return "", entities.NewDocumentError(
				lineStart, errors.New("indentation mixes tabs and spaces"),
			)
		}

		if unit == "" {
			unit = string(ws)
			continue
		}

		if ws[0] != unit[0] {
			return "", entities.NewDocumentError(
				lineStart, errors.New("inconsistent indentation: tab and space lines are mixed"),
			)
		}
		if format == FormatJSON && len(ws)%len(unit) != 0 {
			return "", entities.NewDocumentError(
				lineStart, errors.New("indentation is not a multiple of the detected unit"),
			)
		}
	}

	return unit, nil
}

func leadingWhitespace(line []byte) []byte {
	for i, c := range line {
		if c != ' ' && c != '\t' {
			return line[:i]
		}
	}
	return line
}
