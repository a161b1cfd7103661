// Package tables loads flat tables (CSV, XLSX or an HTML <table>) with a header row.
package tables

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/dtnitsch/cohortviz/models"
)

// ErrColumnNotFound is returned when a requested header is not present.
var ErrColumnNotFound = errors.New("column not found")

// Table is a header row plus data rows. Rows may be shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read loads a table, picking the format from the file extension.
// Unknown extensions are read as CSV.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".html", ".htm":
		return readHTML(path)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads CSV data. A leading UTF-8 byte order mark is dropped.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return fromRecords(records), nil
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRecords(rows), nil
}

func readHTML(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseHTML(f)
}

// ParseHTML reads the first <table> of an HTML document.
func ParseHTML(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records [][]string
	doc.Find("table").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			records = append(records, row)
		}
	})
	return fromRecords(records), nil
}

func fromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return &Table{Header: header, Rows: records[1:]}
}

// Index returns the position of the named header column.
func (t *Table) Index(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %s)", ErrColumnNotFound, name, strings.Join(t.Header, ", "))
}

// ColumnAt returns the values in column i. Missing cells are empty strings.
func (t *Table) ColumnAt(i int) []string {
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	i, err := t.Index(name)
	if err != nil {
		return nil, err
	}
	return t.ColumnAt(i), nil
}

// Names returns the first column, which holds the names in every input we read.
func (t *Table) Names() []string {
	return t.ColumnAt(0)
}

// Records pairs the first column with the named category column.
func (t *Table) Records(category string) ([]models.NameRecord, error) {
	ci, err := t.Index(category)
	if err != nil {
		return nil, err
	}

	names := t.ColumnAt(0)
	categories := t.ColumnAt(ci)
	records := make([]models.NameRecord, len(names))
	for i := range names {
		records[i] = models.NameRecord{Name: names[i], Category: categories[i]}
	}
	return records, nil
}
