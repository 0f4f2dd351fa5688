package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"ubuzima-ai/internal/models"
)

// Column names are part of the contract with the source files; a
// renamed column must fail loudly at load time, not surface as an
// empty result set.
const (
	ColIndicator = "GHO (DISPLAY)"
	ColYear      = "YEAR (DISPLAY)"
	ColDimName   = "DIMENSION (NAME)"
	ColDimCode   = "DIMENSION (CODE)"
	ColDimType   = "DIMENSION (TYPE)"
	ColValue     = "Value"
	ColLow       = "Low"
	ColHigh      = "High"

	ColSurveyTitle     = "titl"
	ColSurveyAuthority = "authenty"
	ColCollStart       = "data_coll_start"
	ColCollEnd         = "data_coll_end"
)

var (
	indicatorRequired = []string{ColIndicator, ColYear, ColValue}
	surveyRequired    = []string{ColSurveyTitle, ColSurveyAuthority}
)

// LoadIndicators reads the nutrition indicator dataset. Rows whose
// value does not parse as a number are dropped and counted as loss.
func LoadIndicators(path string) ([]models.IndicatorRow, error) {
	header, records, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if err := checkColumns(path, header, indicatorRequired); err != nil {
		return nil, err
	}

	idx := columnIndex(header)
	rows := make([]models.IndicatorRow, 0, len(records))
	dropped := 0
	for _, rec := range records {
		value, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[ColValue]]), 64)
		if err != nil {
			dropped++
			continue
		}
		yearRaw := rec[idx[ColYear]]
		year := parseLeadingInt(strings.TrimSpace(yearRaw))

		row := models.IndicatorRow{
			Indicator:   rec[idx[ColIndicator]],
			Year:        year,
			YearDisplay: yearRaw,
			Value:       value,
		}
		if i, ok := idx[ColDimName]; ok {
			row.DimensionName = rec[i]
		}
		if i, ok := idx[ColDimCode]; ok {
			row.DimensionCode = rec[i]
		}
		if i, ok := idx[ColDimType]; ok {
			row.DimensionType = rec[i]
		}
		if i, ok := idx[ColLow]; ok {
			row.Low = rec[i]
		}
		if i, ok := idx[ColHigh]; ok {
			row.High = rec[i]
		}
		row.Extra = extraColumns(header, rec, map[string]bool{
			ColIndicator: true, ColYear: true, ColDimName: true,
			ColDimCode: true, ColDimType: true, ColValue: true,
			ColLow: true, ColHigh: true,
		})
		rows = append(rows, row)
	}

	if dropped > 0 {
		log.Warn().Str("path", path).Int("dropped", dropped).Msg("Dropped indicator rows with non-numeric values")
	}
	return rows, nil
}

// LoadSurveys reads the survey catalog dataset.
func LoadSurveys(path string) ([]models.SurveyRow, error) {
	header, records, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if err := checkColumns(path, header, surveyRequired); err != nil {
		return nil, err
	}

	idx := columnIndex(header)
	rows := make([]models.SurveyRow, 0, len(records))
	for _, rec := range records {
		row := models.SurveyRow{
			Title:     rec[idx[ColSurveyTitle]],
			Authority: rec[idx[ColSurveyAuthority]],
		}
		if i, ok := idx[ColCollStart]; ok {
			row.CollectStart = rec[i]
		}
		if i, ok := idx[ColCollEnd]; ok {
			row.CollectEnd = rec[i]
		}
		row.Extra = extraColumns(header, rec, map[string]bool{
			ColSurveyTitle: true, ColSurveyAuthority: true,
			ColCollStart: true, ColCollEnd: true,
		})
		rows = append(rows, row)
	}
	return rows, nil
}

func readRows(path string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readDelimited(path)
}

// readDelimited parses a comma-delimited file. Quoted fields may
// contain the delimiter; one leading and one trailing quote are
// stripped per field, doubled quotes are left as-is. Lines whose field
// count does not match the header are dropped, not repaired.
func readDelimited(path string) ([]string, [][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}

	var header []string
	for _, h := range strings.Split(lines[0], ",") {
		header = append(header, stripQuote(strings.TrimSpace(h)))
	}

	var records [][]string
	for _, line := range lines[1:] {
		values := splitFields(line)
		if len(values) != len(header) {
			continue
		}
		records = append(records, values)
	}
	return header, records, nil
}

func splitFields(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, stripQuote(strings.TrimSpace(current.String())))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, stripQuote(strings.TrimSpace(current.String())))
	return values
}

// parseLeadingInt reads the leading digit run, so ranged displays like
// "2019-2020" keep their first year for the recency boost.
func parseLeadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}

func stripQuote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// readXLSX reads the first sheet, first row as header. Short rows are
// padded (excelize omits trailing empty cells), long rows are dropped.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: empty sheet", path)
	}

	header := rows[0]
	var records [][]string
	for _, row := range rows[1:] {
		if len(row) > len(header) {
			continue
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		records = append(records, row)
	}
	return header, records, nil
}

func checkColumns(path string, header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("%s: missing required column %q", path, col)
		}
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}

func extraColumns(header, rec []string, known map[string]bool) map[string]string {
	var extra map[string]string
	for i, h := range header {
		if known[h] {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[h] = rec[i]
	}
	return extra
}
