package pbit

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// encodeMember serializes v compactly and transcodes the text to
// UTF-16LE prefixed with the 2-byte BOM. The transcode happens after
// serialization on raw bytes, so no text-mode writer can inject
// newline translation or a second BOM.
func encodeMember(v interface{}) ([]byte, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serialize member: %w", err)
	}
	raw, err := utf16le.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("transcode member: %w", err)
	}
	return raw, nil
}

// decodeMember strips the BOM and decodes UTF-16LE back to UTF-8 text.
func decodeMember(raw []byte) ([]byte, error) {
	return utf16le.NewDecoder().Bytes(raw)
}
