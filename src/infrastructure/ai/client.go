package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
	"gopkg.in/yaml.v3"

	"raum-bot/src/domain"
)

// Config структура конфигурации приложения
type Config struct {
	AI struct {
		APIKey          string `yaml:"api_key"`
		EmbeddingModel  string `yaml:"embedding_model"`
		GenerationModel string `yaml:"generation_model"`
	} `yaml:"ai"`
	Retrieval struct {
		TopN               int     `yaml:"top_n"`
		RelevanceThreshold float64 `yaml:"relevance_threshold"`
		TokenBudget        int     `yaml:"token_budget"`
	} `yaml:"retrieval"`
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	Corpus struct {
		Path   string `yaml:"path"`
		DBPath string `yaml:"db_path"`
	} `yaml:"corpus"`
}

// LoadConfig загружает конфигурацию из YAML файла
func LoadConfig(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	return config, nil
}

// ApplyEnv переопределяет значения конфигурации переменными окружения:
// GEMINI_KEYS — ключи Gemini API через запятую (используется первый),
// API_TOKEN — токен Telegram бота
func (c *Config) ApplyEnv() {
	if keys := os.Getenv("GEMINI_KEYS"); keys != "" {
		c.AI.APIKey = strings.Split(keys, ",")[0]
	}
	if token := os.Getenv("API_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
}

// RetrievalConfig возвращает параметры отбора контекста; незаполненные
// значения заменяются параметрами исходного бота
func (c Config) RetrievalConfig() domain.RetrievalConfig {
	cfg := domain.DefaultRetrievalConfig()
	if c.Retrieval.TopN > 0 {
		cfg.TopN = c.Retrieval.TopN
	}
	if c.Retrieval.RelevanceThreshold > 0 {
		cfg.RelevanceThreshold = c.Retrieval.RelevanceThreshold
	}
	if c.Retrieval.TokenBudget > 0 {
		cfg.TokenBudget = c.Retrieval.TokenBudget
	}
	return cfg
}

// GeminiClient клиент Gemini API: эмбеддинги, подсчет токенов и генерация.
// Реализует domain.EmbeddingService, domain.TokenCounter и domain.GenerationService
type GeminiClient struct {
	client *genai.Client
	config Config
}

// NewGeminiClient создает клиент Gemini по конфигурации
func NewGeminiClient(ctx context.Context, config Config) (*GeminiClient, error) {
	if config.AI.APIKey == "" {
		return nil, fmt.Errorf("не установлен API ключ Gemini (переменная GEMINI_KEYS или ai.api_key в конфигурации)")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.AI.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать клиент Gemini: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Embed возвращает эмбеддинг текста; модель задается конфигурацией и должна
// совпадать с моделью, которой векторизовался корпус
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Models.EmbedContent(ctx, c.config.AI.EmbeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса эмбеддинга: %w", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("сервис эмбеддингов вернул пустой результат")
	}

	values := resp.Embeddings[0].Values
	embedding := make([]float64, len(values))
	for i, v := range values {
		embedding[i] = float64(v)
	}

	return embedding, nil
}

// CountTokens возвращает количество токенов текста для указанной модели
func (c *GeminiClient) CountTokens(ctx context.Context, model, text string) (int, error) {
	resp, err := c.client.Models.CountTokens(ctx, model, genai.Text(text), nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета токенов: %w", err)
	}

	return int(resp.TotalTokens), nil
}

// GenerateContent отправляет промпт модели и возвращает текст ответа
func (c *GeminiClient) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации ответа: %w", err)
	}

	return resp.Text(), nil
}
