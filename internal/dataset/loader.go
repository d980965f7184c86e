package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// delimiters tried in order during parsing. The first parse that yields more
// than one column wins; a bare comma parse is the last resort.
var delimiters = []rune{',', ';', '\t'}

// Load reads CSV content, detects its encoding and delimiter, and returns the
// parsed table with typed columns. name is the original upload filename, kept
// for reporting.
func Load(r io.Reader, name string) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	content, encodingName, err := decode(data)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, &ParseError{Reason: "no rows found"}
	}

	// A lone header line cannot go through the dataframe path, which
	// requires at least one data row. It is still a valid parse; the
	// analyzer rejects the empty table later.
	if headerOnly(content) {
		headers, delim := splitHeaderLine(content)
		ds := &Dataset{
			SourceName: name,
			SizeBytes:  int64(len(data)),
			Encoding:   encodingName,
			Delimiter:  delim,
			Headers:    headers,
		}
		ds.buildColumns()
		return ds, nil
	}

	records, delim, err := parseRecords(content)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		SourceName: name,
		SizeBytes:  int64(len(data)),
		Encoding:   encodingName,
		Delimiter:  delim,
		Headers:    records[0],
		Rows:       records[1:],
	}
	ds.buildColumns()
	return ds, nil
}

// LoadFile opens and loads a CSV from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat csv: %w", err)
	}
	if info.Size() == 0 {
		return nil, &ParseError{Reason: "file is empty"}
	}

	return Load(f, filepath.Base(path))
}

// decode converts raw bytes to a UTF-8 string, trying UTF-8 (with or without
// BOM), UTF-16 (BOM required), and Latin-1 in that order.
func decode(data []byte) (string, string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), "utf-8", nil

	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", "", &ParseError{Reason: "undecodable utf-16 content", Err: err}
		}
		return string(out), "utf-16", nil

	case utf8.Valid(data):
		return string(data), "utf-8", nil

	default:
		// Latin-1 maps every byte, so this cannot fail.
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", &ParseError{Reason: "undecodable content", Err: err}
		}
		return string(out), "latin-1", nil
	}
}

// parseRecords runs the delimiter trials and returns header plus data rows.
func parseRecords(content string) ([][]string, rune, error) {
	var firstErr error

	for _, delim := range delimiters {
		records, err := parseWith(content, delim)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(records) > 0 && len(records[0]) > 1 {
			return records, delim, nil
		}
	}

	// Nothing produced multiple columns. Accept a single-column comma
	// parse when it is well formed.
	records, err := parseWith(content, ',')
	if err == nil && len(records) > 0 {
		return records, ',', nil
	}

	return nil, 0, &ParseError{Reason: "unable to parse with supported delimiters", Err: firstErr}
}

// parseWith parses the content as CSV with one fixed delimiter.
func parseWith(content string, delim rune) ([][]string, error) {
	df := dataframe.ReadCSV(
		strings.NewReader(content),
		dataframe.WithDelimiter(delim),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return nil, df.Err
	}
	return df.Records(), nil
}

// headerOnly reports whether the content holds exactly one non-blank line.
func headerOnly(content string) bool {
	nonBlank := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
			if nonBlank > 1 {
				return false
			}
		}
	}
	return nonBlank == 1
}

// splitHeaderLine splits a lone header on the delimiter that yields the most
// fields.
func splitHeaderLine(content string) ([]string, rune) {
	line := strings.TrimSpace(content)
	best := []string{line}
	bestDelim := ','
	for _, delim := range delimiters {
		parts := strings.Split(line, string(delim))
		if len(parts) > len(best) {
			best = parts
			bestDelim = delim
		}
	}
	for i := range best {
		best[i] = strings.TrimSpace(best[i])
	}
	return best, bestDelim
}
