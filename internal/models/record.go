package models

// IndicatorRow and SurveyRow are parsed rows from the delimited source
// files. Typed fields cover the columns the pipeline depends on;
// anything else from the source header lands in the row's Extra bag
// untouched.

// SourceIndicators and SourceSurveys tag which dataset a candidate
// came from.
const (
	SourceIndicators = "indicator"
	SourceSurveys    = "survey"
)

// IndicatorRow is one nutrition measurement from the indicator dataset.
type IndicatorRow struct {
	Indicator     string
	Year          int
	YearDisplay   string
	DimensionName string
	DimensionCode string
	DimensionType string
	Value         float64
	Low           string
	High          string
	Extra         map[string]string
}

// SurveyRow is one survey-catalog entry.
type SurveyRow struct {
	Title        string
	Authority    string
	CollectStart string
	CollectEnd   string
	Extra        map[string]string
}

// ScoredCandidate pairs a row with its relevance score for one query.
// Exactly one of Indicator/Survey is set, matching Source.
type ScoredCandidate struct {
	Source    string
	Score     int
	Indicator *IndicatorRow
	Survey    *SurveyRow
}

// SourceRef describes a dataset cited in an answer.
type SourceRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AnswerEnvelope is the full result of one pipeline run.
type AnswerEnvelope struct {
	Answer     string      `json:"answer"`
	Sources    []SourceRef `json:"sources"`
	DataUsed   bool        `json:"dataUsed"`
	IsRelevant bool        `json:"isRelevant"`
}
