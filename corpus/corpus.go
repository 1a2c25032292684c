// Package corpus reads COGS data files and pairs gold rows with system rows.
//
// A data file is tab-separated with three columns: the sentence, its logical
// form and the generalization type. An OpenNMT output file has source,
// target and prediction columns and yields gold and system rows at once.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMalformedRow indicates a line with fewer columns than required.
	ErrMalformedRow = errors.New("corpus: malformed row")

	// ErrLengthMismatch indicates gold and system data of different length.
	ErrLengthMismatch = errors.New("corpus: gold and system row counts differ")
)

// Row is one line of a data file.
type Row struct {
	Sentence    string
	LogicalForm string
	GenType     string
	Line        int // 1-based line number in the source file
}

// String returns the row in file format, without the trailing newline.
func (r Row) String() string {
	return strings.Join([]string{r.Sentence, r.LogicalForm, r.GenType}, "\t")
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// ReadRows reads a three-column TSV data file. Columns past the third are
// ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := newReader(r)
	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read tsv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, fmt.Errorf("%w: line %d has %d columns, want 3", ErrMalformedRow, line, len(rec))
		}
		rows = append(rows, Row{
			Sentence:    rec[0],
			LogicalForm: rec[1],
			GenType:     rec[2],
			Line:        line,
		})
	}
}

// ReadOpenNMT reads "source \t target \t prediction" lines. The returned
// slices have equal length; generalization types are empty.
func ReadOpenNMT(r io.Reader) (gold, system []Row, err error) {
	cr := newReader(r)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return gold, system, nil
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read opennmt: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return nil, nil, fmt.Errorf("%w: line %d has %d columns, want 3", ErrMalformedRow, line, len(rec))
		}
		gold = append(gold, Row{Sentence: rec[0], LogicalForm: rec[1], Line: line})
		system = append(system, Row{Sentence: rec[0], LogicalForm: rec[2], Line: line})
	}
}

// ReadRowsFile reads a TSV data file from disk.
func ReadRowsFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadOpenNMTFile reads an OpenNMT output file from disk.
func ReadOpenNMTFile(path string) (gold, system []Row, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open opennmt file: %w", err)
	}
	defer func() { _ = f.Close() }()

	gold, system, err = ReadOpenNMT(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return gold, system, nil
}
