package vectorindex

import (
	"testing"

	"ubuzima-ai/internal/models"
)

func TestIndicatorDocument(t *testing.T) {
	row := &models.IndicatorRow{
		Indicator:     "Stunting prevalence",
		YearDisplay:   "2020",
		DimensionType: "RESIDENCE",
		DimensionName: "Rural",
		Value:         32.1,
		Low:           "29.0",
		High:          "35.2",
	}
	got := IndicatorDocument(row)
	want := "Rwanda Nutrition Data (2020): Stunting prevalence for Rural. Value: 32.1 (Range: 29.0-35.2)"
	if got != want {
		t.Fatalf("IndicatorDocument() = %q, want %q", got, want)
	}
}

func TestIndicatorDocument_MinimalRow(t *testing.T) {
	row := &models.IndicatorRow{Indicator: "Wasting prevalence", YearDisplay: "2015", Value: 4.5}
	got := IndicatorDocument(row)
	want := "Rwanda Nutrition Data (2015): Wasting prevalence. Value: 4.5"
	if got != want {
		t.Fatalf("IndicatorDocument() = %q, want %q", got, want)
	}
}

func TestSurveyDocument(t *testing.T) {
	row := &models.SurveyRow{
		Title:        "Demographic and Health Survey 2020",
		Authority:    "NISR",
		CollectStart: "2019-11",
		CollectEnd:   "2020-07",
	}
	got := SurveyDocument(row)
	want := "Rwanda Survey: Demographic and Health Survey 2020. Conducted by NISR (2019-11 to 2020-07)"
	if got != want {
		t.Fatalf("SurveyDocument() = %q, want %q", got, want)
	}
}

func TestMetadata(t *testing.T) {
	indicator := &models.IndicatorRow{Indicator: "Stunting prevalence", YearDisplay: "2020", Value: 32.1}
	meta := indicatorMetadata(indicator)
	if meta["type"] != "nutrition_data" || meta["country"] != "Rwanda" || meta["year"] != "2020" {
		t.Errorf("indicatorMetadata() = %v", meta)
	}

	survey := &models.SurveyRow{Title: "DHS 2020", Authority: "NISR"}
	smeta := surveyMetadata(survey)
	if smeta["type"] != "survey_metadata" || smeta["survey_title"] != "DHS 2020" {
		t.Errorf("surveyMetadata() = %v", smeta)
	}
}
