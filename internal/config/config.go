package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	LLM       LLMConfig       `yaml:"llm"`
	EmbedLLM  LLMConfig       `yaml:"embed_llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Vector    VectorConfig    `yaml:"vector"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DataConfig struct {
	IndicatorsPath string `yaml:"indicators_path"`
	SurveysPath    string `yaml:"surveys_path"`
}

type LLMConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Key            string  `yaml:"key"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

type RetrievalConfig struct {
	MaxIndicators int `yaml:"max_indicators"`
	MaxSurveys    int `yaml:"max_surveys"`
}

type VectorConfig struct {
	DBPath     string `yaml:"db_path"`
	Collection string `yaml:"collection"`
	InMemory   bool   `yaml:"in_memory"`
}

const (
	defaultAddr          = ":8080"
	defaultBaseURL       = "https://api.groq.com/openai"
	defaultModel         = "llama-3.3-70b-versatile"
	defaultTemperature   = 0.1
	defaultMaxTokens     = 500
	defaultTimeout       = 30
	defaultMaxIndicators = 8
	defaultMaxSurveys    = 3
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a config file; secrets still
// come from the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Data.IndicatorsPath == "" {
		c.Data.IndicatorsPath = "data/nutrition_indicators_rwa.csv"
	}
	if c.Data.SurveysPath == "" {
		c.Data.SurveysPath = "data/survey_catalog.csv"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = defaultTemperature
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultMaxTokens
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = defaultTimeout
	}
	if c.LLM.Key == "" {
		c.LLM.Key = os.Getenv("GROQ_API_KEY")
	}
	if c.EmbedLLM.BaseURL == "" {
		c.EmbedLLM.BaseURL = "http://localhost:11434"
	}
	if c.EmbedLLM.Model == "" {
		c.EmbedLLM.Model = "nomic-embed-text"
	}
	if c.Retrieval.MaxIndicators == 0 {
		c.Retrieval.MaxIndicators = defaultMaxIndicators
	}
	if c.Retrieval.MaxSurveys == 0 {
		c.Retrieval.MaxSurveys = defaultMaxSurveys
	}
	if c.Vector.DBPath == "" {
		c.Vector.DBPath = "./vectordb"
	}
	if c.Vector.Collection == "" {
		c.Vector.Collection = "nisr_rwanda_data"
	}
}

// Timeout is the bound applied to each outbound generation call.
func (l *LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}
