package source

import (
	"slices"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the (possibly new) slice and whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// Normalize strips a UTF-8 BOM and converts CRLF line endings, so byte
// offsets reported by the parser line up with what callers slice from.
func Normalize(content []byte) []byte {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return content
}
