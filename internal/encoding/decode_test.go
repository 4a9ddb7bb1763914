package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/quotedesk/internal/encoding"
)

const sheet = "Nome;Preço\nPão de mel;3,50\nBolo de maçã;45,00\n"

func TestDecode(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(sheet))
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(sheet))
	require.NoError(t, err)

	type testCase struct {
		name        string
		input       []byte
		wantCharset encoding.Charset
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte(sheet),
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8WithBOM",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, sheet...),
			wantCharset: encoding.UTF8,
		},
		{
			name:  "Windows1252",
			input: latin1,
		},
		{
			name:        "UTF16LE",
			input:       utf16,
			wantCharset: encoding.UTF16LE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Decode(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			} else {
				assert.NotEqual(t, encoding.UTF8, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sheet, string(got))
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	r, charset, err := encoding.Decode(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
