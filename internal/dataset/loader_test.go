package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadIndicators_ParsesRows(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY),DIMENSION (NAME),DIMENSION (CODE),Value,Low,High\n"+
			"Stunting prevalence,2020,Rural,RUR,32.1,29.0,35.2\n"+
			"Wasting prevalence,2015,,,4.5,,\n")

	rows, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	got := rows[0]
	if got.Indicator != "Stunting prevalence" {
		t.Errorf("Indicator = %q", got.Indicator)
	}
	if got.Year != 2020 || got.YearDisplay != "2020" {
		t.Errorf("Year = %d (%q), want 2020", got.Year, got.YearDisplay)
	}
	if got.Value != 32.1 {
		t.Errorf("Value = %v, want 32.1", got.Value)
	}
	if got.DimensionName != "Rural" || got.DimensionCode != "RUR" {
		t.Errorf("Dimension = %q/%q", got.DimensionName, got.DimensionCode)
	}
	if got.Low != "29.0" || got.High != "35.2" {
		t.Errorf("Low/High = %q/%q", got.Low, got.High)
	}
}

func TestLoadIndicators_QuotedFieldKeepsDelimiter(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY),Value\n"+
			`"Anaemia in women, aged 15-49",2019,17.3`+"\n")

	rows, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if got, want := rows[0].Indicator, "Anaemia in women, aged 15-49"; got != want {
		t.Errorf("Indicator = %q, want %q", got, want)
	}
}

func TestLoadIndicators_DropsMismatchedAndNonNumericRows(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY),Value\n"+
			"Stunting,2020,32.1\n"+
			"Broken row with,too,many,fields\n"+
			"Wasting,2018,not-a-number\n")

	rows, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1 (mismatched and non-numeric rows dropped)", len(rows))
	}
	if rows[0].Indicator != "Stunting" {
		t.Errorf("Indicator = %q, want Stunting", rows[0].Indicator)
	}
}

func TestLoadIndicators_MissingColumnFailsLoudly(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY)\n"+
			"Stunting,2020\n")

	_, err := LoadIndicators(path)
	if err == nil {
		t.Fatal("LoadIndicators() error = nil, want missing-column error")
	}
	if !strings.Contains(err.Error(), `"Value"`) {
		t.Errorf("error = %v, want it to name the missing column", err)
	}
}

func TestLoadIndicators_UnknownColumnsLandInExtra(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY),Value,COMMENTS\n"+
			"Stunting,2020,32.1,preliminary\n")

	rows, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if got, want := rows[0].Extra["COMMENTS"], "preliminary"; got != want {
		t.Errorf("Extra[COMMENTS] = %q, want %q", got, want)
	}
}

func TestLoadIndicators_RangedYearKeepsLeadingYear(t *testing.T) {
	path := writeFile(t, "indicators.csv",
		"GHO (DISPLAY),YEAR (DISPLAY),Value\n"+
			"Stunting,2019-2020,32.1\n"+
			"Wasting,n/a,4.5\n")

	rows, err := LoadIndicators(path)
	if err != nil {
		t.Fatalf("LoadIndicators() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (odd year displays keep the row)", len(rows))
	}
	// Ranged displays parse to their first year so the recency boost
	// still applies.
	if rows[0].Year != 2019 || rows[0].YearDisplay != "2019-2020" {
		t.Errorf("Year = %d (%q), want 2019 (2019-2020)", rows[0].Year, rows[0].YearDisplay)
	}
	if rows[1].Year != 0 || rows[1].YearDisplay != "n/a" {
		t.Errorf("Year = %d (%q), want 0 (n/a)", rows[1].Year, rows[1].YearDisplay)
	}
}

func TestLoadSurveys_ParsesRows(t *testing.T) {
	path := writeFile(t, "surveys.csv",
		"titl,authenty,data_coll_start,data_coll_end\n"+
			"Demographic and Health Survey 2020,NISR,2019-11,2020-07\n"+
			"\"EICV, round 5\",NISR,,\n")

	rows, err := LoadSurveys(path)
	if err != nil {
		t.Fatalf("LoadSurveys() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Title != "Demographic and Health Survey 2020" || rows[0].Authority != "NISR" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].CollectStart != "2019-11" || rows[0].CollectEnd != "2020-07" {
		t.Errorf("period = %q - %q", rows[0].CollectStart, rows[0].CollectEnd)
	}
	if got, want := rows[1].Title, "EICV, round 5"; got != want {
		t.Errorf("quoted title = %q, want %q", got, want)
	}
}

func TestLoadSurveys_MissingColumnFailsLoudly(t *testing.T) {
	path := writeFile(t, "surveys.csv", "titl,period\nDHS,2020\n")

	_, err := LoadSurveys(path)
	if err == nil {
		t.Fatal("LoadSurveys() error = nil, want missing-column error")
	}
	if !strings.Contains(err.Error(), `"authenty"`) {
		t.Errorf("error = %v, want it to name the missing column", err)
	}
}
