package tracker

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText decodes an uploaded text file. ISO-8859-1 is tried first; UTF-8
// is accepted only when that decoder fails and the bytes are valid UTF-8.
// ISO-8859-1 maps every byte, so in practice the first branch always wins and
// UTF-8 text reaches RepairText as mojibake; the fallback keeps the decode
// order explicit.
func decodeText(data []byte) (string, Encoding, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if text, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(text), EncodingLatin1, nil
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}
	return "", "", fmt.Errorf("%w: neither %s nor %s", ErrUnreadable, EncodingLatin1, EncodingUTF8)
}

// RepairText is a best-effort fix for UTF-8 text that was decoded as
// ISO-8859-1: the string is encoded back to single bytes and those bytes are
// read as UTF-8. Byte sequences that are still invalid are dropped. A string
// holding runes outside ISO-8859-1 was not mis-decoded that way and is
// returned unchanged.
//
// "Cliente nÃ£o atendeu" -> "Cliente não atendeu"
func RepairText(s string) string {
	if s == "" {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return strings.ToValidUTF8(raw, "")
}
