// file: internal/catalog/persistence.go
// version: 1.0.0
// guid: 1d3f5b7c-9e1a-4d3f-b5c7-9e1a3d5f7b9c

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jdfalk/library-catalog/internal/fileops"
	"github.com/jdfalk/library-catalog/internal/models"
)

// Header is the column layout of the backing file and of import files.
var Header = []string{"id", "title", "author", "year"}

const filePerm = 0o644

// save rewrites the backing file from memory: header, then one row per book.
func (c *Catalog) save() error {
	write := func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return err
		}
		for _, b := range c.books {
			if err := cw.Write(b.Record()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	var err error
	if c.atomic {
		err = fileops.WriteFileAtomic(c.path, filePerm, write)
	} else {
		err = fileops.WriteFile(c.path, filePerm, write)
	}
	if err != nil {
		c.logger.Error("failed to save catalog", "path", c.path, "error", err)
		return fmt.Errorf("save catalog %s: %w", c.path, err)
	}

	c.logger.Debug("catalog saved", "path", c.path, "books", len(c.books))
	return nil
}

// ReadFile returns every row of a catalog file as stored, duplicates
// included.
func ReadFile(path string) ([]models.Book, error) {
	return readBooks(path)
}

// readBooks parses a CSV file with an id,title,author,year header. Columns
// may appear in any order and extra columns are ignored. An empty file
// yields no books. Malformed quoting fails with a *csv.ParseError rather
// than merging later rows into one field. Errors from os.Open are returned unwrapped so callers can
// test for fs.ErrNotExist.
func readBooks(path string) ([]models.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var books []models.Book
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		books = append(books, models.Book{
			ID:     cell(rec, cols[0]),
			Title:  cell(rec, cols[1]),
			Author: cell(rec, cols[2]),
			Year:   cell(rec, cols[3]),
		})
	}
	return books, nil
}

// indexHeader maps each Header column to its position in header.
func indexHeader(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		pos[name] = i
	}

	cols := make([]int, len(Header))
	for i, name := range Header {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = p
	}
	return cols, nil
}

// cell returns rec[i], or "" for short rows.
func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}
