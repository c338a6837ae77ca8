// Package importer loads contact records from spreadsheet exports.
package importer

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/wildcast/wildcast/internal/model"
)

// columnFields maps normalized header names to contact field setters.
// Headers are matched case-insensitively with spaces/underscores collapsed.
var columnFields = map[string]func(*model.Contact, string){
	"firstname":   func(c *model.Contact, v string) { c.FirstName = v },
	"lastname":    func(c *model.Contact, v string) { c.LastName = v },
	"title":       func(c *model.Contact, v string) { c.Title = v },
	"company":     func(c *model.Contact, v string) { c.Company = v },
	"email":       func(c *model.Contact, v string) { c.Email = v },
	"phone":       func(c *model.Contact, v string) { c.Phone = v },
	"description": func(c *model.Contact, v string) { c.Description = v },
	"industries":  func(c *model.Contact, v string) { c.Industries = v },
	"linkedin":    func(c *model.Contact, v string) { c.LinkedIn = v },
	"website":     func(c *model.Contact, v string) { c.Website = v },
	"tags":        func(c *model.Contact, v string) { c.Tags = v },
	"region":      func(c *model.Contact, v string) { c.Region = v },
	"city":        func(c *model.Contact, v string) { c.City = v },
	"state":       func(c *model.Contact, v string) { c.State = v },
}

// ReadXLSX reads contacts from the first sheet of an XLSX export. The first
// row must be a header row; unrecognized columns are ignored.
func ReadXLSX(path string) ([]model.Contact, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("importer: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := rowToStrings(sheet.Rows[0])
	setters, err := headerSetters(header)
	if err != nil {
		return nil, err
	}

	var contacts []model.Contact
	for _, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if c, ok := buildContact(setters, cells); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts, nil
}

// ReadCSV reads contacts from a CSV export with a header row.
func ReadCSV(path string) ([]model.Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "importer: open csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports are ragged more often than not

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "importer: read csv header")
	}

	setters, err := headerSetters(header)
	if err != nil {
		return nil, err
	}

	var contacts []model.Contact
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "importer: read csv row")
		}
		if c, ok := buildContact(setters, record); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts, nil
}

// headerSetters resolves a header row to per-column field setters. At least
// one recognized column is required; otherwise the file is the wrong shape.
func headerSetters(header []string) ([]func(*model.Contact, string), error) {
	setters := make([]func(*model.Contact, string), len(header))
	recognized := 0
	for i, h := range header {
		if setter, ok := columnFields[normalizeHeader(h)]; ok {
			setters[i] = setter
			recognized++
		}
	}
	if recognized == 0 {
		return nil, eris.New("importer: no recognized columns in header")
	}
	return setters, nil
}

// buildContact maps one row through the header setters. Rows with no values
// in recognized columns are skipped.
func buildContact(setters []func(*model.Contact, string), cells []string) (model.Contact, bool) {
	var c model.Contact
	filled := false
	for i, v := range cells {
		if i >= len(setters) || setters[i] == nil {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		setters[i](&c, v)
		filled = true
	}
	return c, filled
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
