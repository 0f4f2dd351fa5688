package rag

import (
	"context"

	"github.com/rs/zerolog/log"

	"ubuzima-ai/internal/config"
	"ubuzima-ai/internal/dataset"
	"ubuzima-ai/internal/llmservice"
	"ubuzima-ai/internal/models"
	"ubuzima-ai/internal/retrieval"
	"ubuzima-ai/internal/scope"
)

// Pipeline answers questions grounded in the cached NISR datasets:
// classify, rank, assemble, generate. Rejections and the no-data case
// resolve to canned envelopes without touching the generator.
type Pipeline struct {
	store     *dataset.Store
	generator llmservice.Generator
	retrieval config.RetrievalConfig
}

func NewPipeline(store *dataset.Store, generator llmservice.Generator, retrieval config.RetrievalConfig) *Pipeline {
	return &Pipeline{store: store, generator: generator, retrieval: retrieval}
}

var answerSources = []models.SourceRef{
	{Name: "NISR Nutrition Indicators", Type: "nutrition_data"},
	{Name: "NISR Survey Catalog", Type: "survey_metadata"},
}

// Answer runs one question through the full pipeline. A non-nil error
// means the generation provider failed; every other outcome resolves
// to an envelope.
func (p *Pipeline) Answer(ctx context.Context, question string) (models.AnswerEnvelope, error) {
	if res := scope.Classify(question); !res.Allowed {
		log.Debug().Str("question", question).Msg("Question rejected by scope classifier")
		return models.AnswerEnvelope{
			Answer:  res.Answer,
			Sources: []models.SourceRef{},
		}, nil
	}

	indicators := retrieval.RankIndicators(question, p.store.Indicators(), p.retrieval.MaxIndicators)
	surveys := retrieval.RankSurveys(question, p.store.Surveys(), p.retrieval.MaxSurveys)

	contextBlock := retrieval.AssembleContext(indicators, surveys)
	if contextBlock == retrieval.NoDataSentinel {
		return models.AnswerEnvelope{
			Answer:     scope.NoDataAnswer,
			Sources:    []models.SourceRef{},
			IsRelevant: scope.IsRelated(question),
		}, nil
	}

	log.Debug().Int("indicators", len(indicators)).Int("surveys", len(surveys)).Msg("Assembled context")

	answer, err := p.generator.Generate(ctx, llmservice.SystemPrompt, llmservice.UserPrompt(contextBlock, question))
	if err != nil {
		return models.AnswerEnvelope{}, err
	}

	return models.AnswerEnvelope{
		Answer:     answer,
		Sources:    answerSources,
		DataUsed:   true,
		IsRelevant: true,
	}, nil
}

// Stats describes the loaded datasets for the metadata endpoints.
type Stats struct {
	NutritionIndicators int `json:"nutritionIndicators"`
	Surveys             int `json:"surveys"`
	Total               int `json:"total"`
}

func (p *Pipeline) Stats() Stats {
	indicators, surveys := p.store.Counts()
	return Stats{
		NutritionIndicators: indicators,
		Surveys:             surveys,
		Total:               indicators + surveys,
	}
}
