package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(t.TempDir(), "listings.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"name", "full_address", "city", "state", "country", "reviews", "working_hours", "cuisine"},
		{"Shawarma Palace", "464 Rideau St", "Ottawa", "Ontario", "Canada", "120", `{"Monday":"9-5"}`, "Middle Eastern"},
		{"", "1 Main St", "Toronto", "Ontario", "Canada", "", "", ""}, // missing name -> skipped
		{"Lahore Tikka", "1365 Gerrard St E", "Toronto", "Ontario", "", "notanumber", "not json", "Pakistani"},
	})

	res, err := ParseWorkbook(path, "Canada")
	require.NoError(t, err)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Restaurants, 2)

	first := res.Restaurants[0]
	require.Equal(t, "Shawarma Palace", first.Name)
	require.Equal(t, "464 Rideau St", first.Address)
	require.Equal(t, 120, first.Reviews)
	require.Equal(t, "9-5", first.WorkingHours["Monday"])
	// missing days are defaulted
	require.Equal(t, "Closed", first.WorkingHours["Tuesday"])
	// province falls back to state when the column is absent
	require.Equal(t, "Ontario", first.Province)

	second := res.Restaurants[1]
	// empty country takes the default, bad reviews and hours fall back
	require.Equal(t, "Canada", second.Country)
	require.Equal(t, 0, second.Reviews)
	require.Equal(t, "Closed", second.WorkingHours["Monday"])
}

func TestParseWorkbook_MissingFile(t *testing.T) {
	_, err := ParseWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"), "Canada")
	require.Error(t, err)
}
