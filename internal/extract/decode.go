package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// decodePage converts page bytes in the given charset to a valid UTF-8 string.
// Unknown charsets are read as UTF-8. Invalid sequences become U+FFFD.
func decodePage(page []byte, charset string) string {
	label := strings.TrimSpace(charset)
	if label != "" && !strings.EqualFold(label, "utf-8") && !strings.EqualFold(label, "utf8") {
		if enc, err := htmlindex.Get(label); err == nil {
			if out, err := enc.NewDecoder().Bytes(page); err == nil {
				return strings.ToValidUTF8(string(out), string(utf8.RuneError))
			}
		}
	}
	return strings.ToValidUTF8(string(page), string(utf8.RuneError))
}
