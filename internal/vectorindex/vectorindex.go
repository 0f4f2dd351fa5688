package vectorindex

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"ubuzima-ai/internal/config"
	"ubuzima-ai/internal/dataset"
	"ubuzima-ai/internal/models"
)

// Index wraps a chromem collection of dataset rows rendered as short
// text documents. It backs the semantic search CLI commands; the HTTP
// query path stays on the keyword ranker.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   *embeddings.EmbedderImpl
	name       string
}

// Result is one semantic search hit.
type Result struct {
	ID         string            `json:"id"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata"`
	Similarity float32           `json:"similarity"`
}

func New(cfg config.VectorConfig, embedder *embeddings.EmbedderImpl) (*Index, error) {
	var db *chromem.DB
	var err error
	if cfg.InMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(cfg.DBPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create vector database: %w", err)
		}
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}

	return &Index{
		db:         db,
		collection: collection,
		embedder:   embedder,
		name:       cfg.Collection,
	}, nil
}

// Build embeds every dataset row and stores it in the collection.
func (x *Index) Build(ctx context.Context, store *dataset.Store) error {
	indicators := store.Indicators()
	surveys := store.Surveys()

	docs := make([]chromem.Document, 0, len(indicators)+len(surveys))
	for i := range indicators {
		row := &indicators[i]
		embedding, err := x.embedder.EmbedQuery(ctx, IndicatorDocument(row))
		if err != nil {
			return fmt.Errorf("embedding indicator %d: %w", i, err)
		}
		docs = append(docs, chromem.Document{
			ID:        fmt.Sprintf("nutrition_%d", i),
			Content:   IndicatorDocument(row),
			Metadata:  indicatorMetadata(row),
			Embedding: embedding,
		})
	}
	for i := range surveys {
		row := &surveys[i]
		embedding, err := x.embedder.EmbedQuery(ctx, SurveyDocument(row))
		if err != nil {
			return fmt.Errorf("embedding survey %d: %w", i, err)
		}
		docs = append(docs, chromem.Document{
			ID:        fmt.Sprintf("survey_%d", i),
			Content:   SurveyDocument(row),
			Metadata:  surveyMetadata(row),
			Embedding: embedding,
		})
	}

	log.Info().Int("documents", len(docs)).Str("collection", x.name).Msg("Indexing documents")
	if err := x.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search embeds the query and returns the k nearest documents.
func (x *Index) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if query == "" {
		return nil, fmt.Errorf("query must be provided")
	}
	embedding, err := x.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if count := x.collection.Count(); k > count {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	hits, err := x.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		results[i] = Result{
			ID:         hit.ID,
			Content:    hit.Content,
			Metadata:   hit.Metadata,
			Similarity: hit.Similarity,
		}
	}
	return results, nil
}

// Count returns the number of indexed documents.
func (x *Index) Count() int {
	return x.collection.Count()
}

// IndicatorDocument renders one indicator row as indexable text.
func IndicatorDocument(row *models.IndicatorRow) string {
	text := fmt.Sprintf("Rwanda Nutrition Data (%s): %s", row.YearDisplay, row.Indicator)
	if row.DimensionType != "" && row.DimensionName != "" {
		text += fmt.Sprintf(" for %s", row.DimensionName)
	}
	text += fmt.Sprintf(". Value: %v", row.Value)
	if row.Low != "" && row.High != "" {
		text += fmt.Sprintf(" (Range: %s-%s)", row.Low, row.High)
	}
	return text
}

// SurveyDocument renders one survey row as indexable text.
func SurveyDocument(row *models.SurveyRow) string {
	text := fmt.Sprintf("Rwanda Survey: %s. Conducted by %s", row.Title, row.Authority)
	if row.CollectStart != "" && row.CollectEnd != "" {
		text += fmt.Sprintf(" (%s to %s)", row.CollectStart, row.CollectEnd)
	}
	return text
}

func indicatorMetadata(row *models.IndicatorRow) map[string]string {
	return map[string]string{
		"source":    "NISR Nutrition Indicators",
		"indicator": row.Indicator,
		"year":      row.YearDisplay,
		"country":   "Rwanda",
		"type":      "nutrition_data",
	}
}

func surveyMetadata(row *models.SurveyRow) map[string]string {
	return map[string]string{
		"source":       "NISR Survey Catalog",
		"survey_title": row.Title,
		"year_start":   row.CollectStart,
		"year_end":     row.CollectEnd,
		"country":      "Rwanda",
		"type":         "survey_metadata",
	}
}
