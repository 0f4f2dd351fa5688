package retrieval

import (
	"sort"
	"strings"

	"ubuzima-ai/internal/models"
)

// Recency thresholds for the year boost.
const (
	recentYear      = 2018
	olderRecentYear = 2015
)

var regionalKeywords = []string{
	"rural", "urban", "province", "district", "kigali", "city", "village", "area",
}

// Keywords tokenizes a question into lowercased words longer than
// three characters.
func Keywords(question string) []string {
	var keywords []string
	for _, w := range strings.Split(strings.ToLower(question), " ") {
		if len(w) > 3 {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

// RankIndicators scores indicator rows against the question and keeps
// the top maxResults. Ties preserve source-file order.
func RankIndicators(question string, rows []models.IndicatorRow, maxResults int) []models.ScoredCandidate {
	keywords := Keywords(question)
	hasRegional := containsAnyKeyword(strings.ToLower(question), regionalKeywords)

	var candidates []models.ScoredCandidate
	for i := range rows {
		row := &rows[i]
		searchText := strings.ToLower(row.Indicator + " " + row.DimensionName + " " + row.DimensionCode + " " + row.YearDisplay)

		score := 0
		for _, kw := range keywords {
			if strings.Contains(searchText, kw) {
				score++
			}
		}

		if row.Year >= recentYear {
			score += 2
		} else if row.Year >= olderRecentYear {
			score++
		}

		if hasRegional {
			for _, rk := range regionalKeywords {
				if strings.Contains(searchText, rk) {
					score += 3
				}
			}
		}

		if score > 0 {
			candidates = append(candidates, models.ScoredCandidate{
				Source:    models.SourceIndicators,
				Score:     score,
				Indicator: row,
			})
		}
	}
	return top(candidates, maxResults)
}

// RankSurveys scores survey rows by keyword hits alone.
func RankSurveys(question string, rows []models.SurveyRow, maxResults int) []models.ScoredCandidate {
	keywords := Keywords(question)

	var candidates []models.ScoredCandidate
	for i := range rows {
		row := &rows[i]
		searchText := strings.ToLower(row.Title + " " + row.Authority)

		score := 0
		for _, kw := range keywords {
			if strings.Contains(searchText, kw) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, models.ScoredCandidate{
				Source: models.SourceSurveys,
				Score:  score,
				Survey: row,
			})
		}
	}
	return top(candidates, maxResults)
}

// top sorts descending by score. The sort must stay stable: equal
// scores keep their source-file order, which test fixtures depend on.
func top(candidates []models.ScoredCandidate, maxResults int) []models.ScoredCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates
}

func containsAnyKeyword(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
