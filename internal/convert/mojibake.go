package convert

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairEncoding fixes double-encoded UTF-8 ("descripciÃ³n" -> "descripción"):
// text that was UTF-8 bytes mistakenly decoded as Latin-1. The telltale
// characters are "Ã" and "Â"; when neither is present the text is returned
// as-is. The repair re-encodes the text as Latin-1 bytes and reinterprets
// them as UTF-8; if either step fails the original text is returned, so the
// transform is safe on text that legitimately contains the telltales.
func RepairEncoding(s string) string {
	if !strings.ContainsAny(s, "ÃÂ") {
		return s
	}

	repaired, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	if !utf8.ValidString(repaired) {
		return s
	}
	return repaired
}
