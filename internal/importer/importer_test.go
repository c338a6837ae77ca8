package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"First Name,Last Name,Title,Company,Email,Unknown Column\n"+
			"Dana,Reyes,Head of Partnerships,Brightcart,dana@brightcart.com,ignored\n"+
			",,,,,\n"+
			"Sam,Ortiz,CMO,Acme,sam@acme.com\n"), 0o600))

	contacts, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Dana", contacts[0].FirstName)
	assert.Equal(t, "Head of Partnerships", contacts[0].Title)
	assert.Equal(t, "Brightcart", contacts[0].Company)
	assert.Equal(t, "Sam", contacts[1].FirstName)
	assert.Equal(t, "sam@acme.com", contacts[1].Email)
}

func TestReadCSVRejectsUnknownHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o600))

	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	contacts, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.xlsx")
	writeTestXLSX(t, path, [][]string{
		{"first_name", "last_name", "title", "company", "tags"},
		{"Dana", "Reyes", "Head of Partnerships", "Brightcart", "Podcast Spend"},
		{"", "", "", "", ""},
		{"Sam", "Ortiz", "CMO", "Acme", ""},
	})

	contacts, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Dana", contacts[0].FirstName)
	assert.Equal(t, "Podcast Spend", contacts[0].Tags)
	assert.Equal(t, "CMO", contacts[1].Title)
}

func TestReadXLSXMissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func writeTestXLSX(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Contacts")
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))
}
