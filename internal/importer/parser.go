// Package importer reads product catalogs from spreadsheet exports and workbooks.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	enc "github.com/MrJamesThe3rd/quotedesk/internal/encoding"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

var ErrNoHeader = errors.New("no product header found: expected Nome;Preço or Produto;Valor")

// Sheet is the outcome of parsing a spreadsheet.
type Sheet struct {
	Charset  enc.Charset
	Profile  Profile
	Products []product.CreateParams
}

// zipMagic opens every .xlsx workbook.
var zipMagic = []byte("PK\x03\x04")

// Parse reads a CSV export or an .xlsx workbook, locates the header row and
// reads one product per data row. Rows without a name are skipped; a row with
// a name but an unreadable price fails the whole sheet.
func Parse(r io.Reader) (*Sheet, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(zipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	var (
		rows    [][]string
		charset enc.Charset
	)

	if bytes.Equal(head, zipMagic) {
		rows, err = readWorkbook(br)
		charset = enc.UTF8
	} else {
		rows, charset, err = readCSV(br)
	}

	if err != nil {
		return nil, err
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoHeader
	}

	params, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, err
	}

	return &Sheet{Charset: charset, Profile: *profile, Products: params}, nil
}

func readCSV(r io.Reader) ([][]string, enc.Charset, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, "", fmt.Errorf("read sheet: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("read csv: %w", err)
	}

	return rows, charset, nil
}

// readWorkbook returns the rows of the first sheet of an .xlsx workbook.
func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}

	return rows, nil
}

// sniffDelimiter picks the most frequent of ';', tab and ',' over the first
// lines. Brazilian Excel exports use ';' because ',' is the decimal separator.
func sniffDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var head strings.Builder

	for i := 0; i < 10 && scanner.Scan(); i++ {
		head.WriteString(scanner.Text())
	}

	best, bestCount := ';', 0

	for _, d := range []rune{';', '\t', ','} {
		if n := strings.Count(head.String(), string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := fold(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			_, hasName := cols[fold(profiles[i].NameCol)]
			_, hasPrice := cols[fold(profiles[i].PriceCol)]

			if hasName && hasPrice {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows reads data rows. headerRowNum is the 0-based header index, used
// for 1-based row numbers in errors.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]product.CreateParams, error) {
	nameIdx := cols[fold(p.NameCol)]
	priceIdx := cols[fold(p.PriceCol)]

	params := make([]product.CreateParams, 0, len(rows))

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		name := cellValue(row, nameIdx)
		if name == "" {
			continue
		}

		raw := cellValue(row, priceIdx)
		if raw == "" {
			return nil, validation.Newf(fmt.Sprintf("row %d", rowNum), "missing price for %q", name)
		}

		price, err := money.ParseString(raw)
		if err != nil {
			return nil, validation.Newf(fmt.Sprintf("row %d", rowNum), "invalid price %q for %q", raw, name)
		}

		params = append(params, product.CreateParams{Name: name, Price: price})
	}

	return params, nil
}

// fold lowercases s and strips accents so "PREÇO" and "preco" compare equal.
func fold(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(folder, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}

	return strings.ToLower(out)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
