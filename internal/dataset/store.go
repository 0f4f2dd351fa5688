package dataset

import (
	"sync"

	"github.com/rs/zerolog/log"

	"ubuzima-ai/internal/config"
	"ubuzima-ai/internal/models"
)

// Store caches parsed datasets for the life of the process. Each
// source is read at most once on success; a failed read is logged and
// yields an empty slice so the pipeline degrades to "no data found"
// instead of erroring. There is no invalidation (no TTL, no
// file-watch), which is a known limitation of the service.
type Store struct {
	data config.DataConfig

	mu         sync.Mutex
	indicators []models.IndicatorRow
	surveys    []models.SurveyRow
	indLoaded  bool
	surLoaded  bool
	loads      map[string]int
}

func NewStore(data config.DataConfig) *Store {
	return &Store{
		data:  data,
		loads: make(map[string]int),
	}
}

// Indicators returns the cached indicator rows, loading on first call.
func (s *Store) Indicators() []models.IndicatorRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indLoaded {
		return s.indicators
	}
	s.loads[models.SourceIndicators]++
	rows, err := LoadIndicators(s.data.IndicatorsPath)
	if err != nil {
		log.Error().Err(err).Str("path", s.data.IndicatorsPath).Msg("Error loading nutrition data")
		return nil
	}
	s.indicators = rows
	s.indLoaded = true
	log.Info().Int("rows", len(rows)).Str("path", s.data.IndicatorsPath).Msg("Loaded nutrition indicators")
	return rows
}

// Surveys returns the cached survey rows, loading on first call.
func (s *Store) Surveys() []models.SurveyRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surLoaded {
		return s.surveys
	}
	s.loads[models.SourceSurveys]++
	rows, err := LoadSurveys(s.data.SurveysPath)
	if err != nil {
		log.Error().Err(err).Str("path", s.data.SurveysPath).Msg("Error loading survey data")
		return nil
	}
	s.surveys = rows
	s.surLoaded = true
	log.Info().Int("rows", len(rows)).Str("path", s.data.SurveysPath).Msg("Loaded survey catalog")
	return rows
}

// LoadCount reports how many times a source file was actually read.
func (s *Store) LoadCount(source string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[source]
}

// Counts returns the number of loaded indicator and survey rows.
func (s *Store) Counts() (int, int) {
	return len(s.Indicators()), len(s.Surveys())
}
