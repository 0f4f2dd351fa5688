package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadIndicators_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indicators.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"GHO (DISPLAY)", "YEAR (DISPLAY)", "DIMENSION (NAME)", "Value"},
		{"Stunting prevalence", "2020", "Rural", "32.1"},
		{"Wasting prevalence", "2015", "", "4.5"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(got))
	}
	if got[0].Indicator != "Stunting prevalence" || got[0].Year != 2020 || got[0].Value != 32.1 {
		t.Errorf("row 0 = %+v", got[0])
	}
	// Trailing empty cells are padded back to header width.
	if got[1].DimensionName != "" || got[1].Value != 4.5 {
		t.Errorf("row 1 = %+v", got[1])
	}
}
