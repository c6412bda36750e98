// Package preview turns a CSV file into an ordered list of rows ready to be
// rendered as a table.
package preview

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"scraperdashboard/internal/utils"
	"scraperdashboard/models"
)

var (
	// ErrNotFound is returned when the requested path is empty or missing.
	ErrNotFound = errors.New("file not found")
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("csv parse failure")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseError reports malformed CSV content.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Document is the loaded preview of one CSV file.
type Document struct {
	Name   string
	Path   string
	Header []string
	Rows   []models.Row
}

// Total returns the number of data rows.
func (d *Document) Total() int {
	return len(d.Rows)
}

// Load validates path and reads the whole file. Either every row is returned
// or an error; a parse failure never yields a partial document.
func Load(ctx context.Context, path string) (*Document, error) {
	if !utils.Exists(path) {
		return nil, ErrNotFound
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var rows []models.Row
	err = Stream(ctx, file, func(row models.Row) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	return &Document{
		Name:   filepath.Base(path),
		Path:   path,
		Header: Header(rows),
		Rows:   rows,
	}, nil
}

// Header returns the columns shown in the table head. Only the first row is
// consulted; keys that appear in later rows alone are not part of it.
func Header(rows []models.Row) []string {
	if len(rows) == 0 {
		return []string{}
	}
	return rows[0].Keys()
}

// Stream reads CSV records from r and calls fn for each data row in file
// order. The first record names the columns. Rows shorter than the header
// only carry the keys they have values for; extra cells are keyed "_<index>".
// Stream stops at the first error from the reader, from fn or from ctx.
func Stream(ctx context.Context, r io.Reader, fn func(models.Row) error) error {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return wrapParseError(err)
	}
	columns := make([]string, len(header))
	copy(columns, header)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return wrapParseError(err)
		}

		if err := fn(buildRow(columns, record)); err != nil {
			return err
		}
	}
}

func buildRow(columns, record []string) models.Row {
	row := models.NewRow(len(columns))
	for i, value := range record {
		key := "_" + strconv.Itoa(i)
		if i < len(columns) {
			key = columns[i]
		}
		row.Set(key, value)
	}
	return row
}

func wrapParseError(err error) error {
	pe := &ParseError{Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.Line
	}
	return pe
}
