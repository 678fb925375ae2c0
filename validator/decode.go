package validator

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

type candidateEncoding struct {
	name string
	enc  encoding.Encoding
}

// Tried in order; first decoder that yields clean text wins. Latin-1
// accepts every byte sequence, so the list always terminates with a
// successful decode for non-empty input.
var candidateEncodings = []candidateEncoding{
	{"utf-8", unicode.UTF8},
	{"windows-1252", charmap.Windows1252},
	{"latin-1", charmap.ISO8859_1},
}

// decodeText decodes raw bytes using the candidate encodings in order
// and returns the text together with the name of the chosen encoding.
// ok is false only when no candidate produced clean text.
func decodeText(raw []byte) (text string, encodingName string, ok bool) {
	for _, candidate := range candidateEncodings {
		if candidate.name == "utf-8" {
			if utf8.Valid(raw) {
				return string(raw), candidate.name, true
			}
			continue
		}
		decoded, err := candidate.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		if containsReplacementRune(decoded) {
			continue
		}
		return string(decoded), candidate.name, true
	}
	return "", "unknown", false
}

func containsReplacementRune(decoded []byte) bool {
	for len(decoded) > 0 {
		r, size := utf8.DecodeRune(decoded)
		if r == utf8.RuneError {
			return true
		}
		decoded = decoded[size:]
	}
	return false
}

// countLines matches the semantics of splitting text into lines: a
// trailing newline does not start a new line.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	lines := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines++
		}
	}
	if text[len(text)-1] != '\n' {
		lines++
	}
	return lines
}
