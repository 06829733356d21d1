package library

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/wordiz/internal/words"
)

// Format names an import file format.
type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseLines reads one "headword:meaning" entry per line. The headword is
// everything before the first colon; lines without a colon at position > 0
// are skipped.
func ParseLines(r io.Reader) ([]words.Word, error) {
	var out []words.Word
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		out = append(out, words.New(
			strings.TrimSpace(line[:idx]),
			strings.TrimSpace(line[idx+1:]),
		))
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Format: string(FormatText), Err: err}
	}
	return out, nil
}

// ParseCSV reads quoted CSV. The first column is the headword; the remaining
// columns are joined with "," to form the meaning, so unquoted meanings that
// contain commas survive. Rows with fewer than two columns are skipped.
func ParseCSV(r io.Reader) ([]words.Word, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []words.Word
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &ParseError{Format: string(FormatCSV), Line: line, Err: err}
		}
		if w, ok := rowWord(rec); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// ParseJSON reads a JSON array of {"en", "zh"} objects.
func ParseJSON(raw []byte) ([]words.Word, error) {
	if _, err := validate("wordlist", wordListSchema, raw); err != nil {
		return nil, &ParseError{Format: string(FormatJSON), Err: err}
	}
	var out []words.Word
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ParseError{Format: string(FormatJSON), Err: err}
	}
	return out, nil
}

// ParseXLSX reads the first sheet of a workbook with the headword in column A
// and the meaning in the following columns. A leading header row is skipped.
func ParseXLSX(r io.Reader) ([]words.Word, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Format: string(FormatXLSX), Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: string(FormatXLSX), Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: string(FormatXLSX), Err: fmt.Errorf("read rows: %w", err)}
	}

	var out []words.Word
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if w, ok := rowWord(row); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// rowWord converts a tabular row into a word.
func rowWord(row []string) (words.Word, bool) {
	if len(row) < 2 {
		return words.Word{}, false
	}
	parts := make([]string, len(row))
	for i, cell := range row {
		parts[i] = strings.TrimSpace(cell)
	}
	// Spreadsheets pad rows with empty trailing cells.
	end := len(parts)
	for end > 2 && parts[end-1] == "" {
		end--
	}
	return words.New(parts[0], strings.Join(parts[1:end], ",")), true
}

var headerNames = map[string]bool{
	"en": true, "word": true, "english": true, "headword": true,
}

func isHeaderRow(row []string) bool {
	return len(row) > 0 && headerNames[strings.ToLower(strings.TrimSpace(row[0]))]
}
