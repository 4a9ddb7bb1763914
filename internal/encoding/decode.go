// Package encoding turns spreadsheet exports of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a stream was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

var decoders = map[Charset]encoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO88599:    charmap.ISO8859_9,
}

// Decode sniffs the head of r and returns a UTF-8 reader over the whole
// stream along with the charset it settled on. A UTF-8 byte order mark is
// dropped. Spreadsheets saved by older Excel versions come out as
// Windows-1252, which is also the fallback when detection is inconclusive.
func Decode(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("sniffing charset: %w", err)
	}

	charset, bomLen := Detect(head)

	if charset == UTF8 {
		if _, err := br.Discard(bomLen); err != nil {
			return nil, "", fmt.Errorf("skipping byte order mark: %w", err)
		}

		return br, charset, nil
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}

// Detect guesses the charset of head. bomLen is the length of a UTF-8 byte
// order mark to skip, zero otherwise.
func Detect(head []byte) (charset Charset, bomLen int) {
	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == UTF8 {
			return UTF8, len(bom.prefix)
		}

		return bom.charset, 0
	}

	if utf8.Valid(head) {
		return UTF8, 0
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return Windows1252, 0
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8, 0
	case "ISO-8859-9":
		return ISO88599, 0
	}

	return Windows1252, 0
}
