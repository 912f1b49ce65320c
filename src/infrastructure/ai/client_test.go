package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `ai:
  api_key: "ключ-из-файла"
  embedding_model: "gemini-embedding-001"
  generation_model: "gemini-2.5-flash-lite-preview-06-17"

retrieval:
  top_n: 25
  relevance_threshold: 0.8
  token_budget: 5000

telegram:
  token: "токен-из-файла"

corpus:
  path: "embeddings.jsonl"
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeTempConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "ключ-из-файла", config.AI.APIKey)
	assert.Equal(t, "gemini-embedding-001", config.AI.EmbeddingModel)
	assert.Equal(t, "gemini-2.5-flash-lite-preview-06-17", config.AI.GenerationModel)
	assert.Equal(t, 25, config.Retrieval.TopN)
	assert.Equal(t, 0.8, config.Retrieval.RelevanceThreshold)
	assert.Equal(t, 5000, config.Retrieval.TokenBudget)
	assert.Equal(t, "токен-из-файла", config.Telegram.Token)
	assert.Equal(t, "embeddings.jsonl", config.Corpus.Path)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "нет.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, "ai: [незакрытый"))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	config, err := LoadConfig(writeTempConfig(t, testYAML))
	require.NoError(t, err)

	// Переменные окружения имеют приоритет; из GEMINI_KEYS берется первый ключ
	t.Setenv("GEMINI_KEYS", "первый-ключ,второй-ключ")
	t.Setenv("API_TOKEN", "токен-из-окружения")

	config.ApplyEnv()
	assert.Equal(t, "первый-ключ", config.AI.APIKey)
	assert.Equal(t, "токен-из-окружения", config.Telegram.Token)
}

func TestApplyEnvKeepsConfigWithoutEnv(t *testing.T) {
	config, err := LoadConfig(writeTempConfig(t, testYAML))
	require.NoError(t, err)

	t.Setenv("GEMINI_KEYS", "")
	t.Setenv("API_TOKEN", "")

	config.ApplyEnv()
	assert.Equal(t, "ключ-из-файла", config.AI.APIKey)
	assert.Equal(t, "токен-из-файла", config.Telegram.Token)
}

func TestRetrievalConfig(t *testing.T) {
	config, err := LoadConfig(writeTempConfig(t, testYAML))
	require.NoError(t, err)

	cfg := config.RetrievalConfig()
	assert.Equal(t, 25, cfg.TopN)
	assert.Equal(t, 0.8, cfg.RelevanceThreshold)
	assert.Equal(t, 5000, cfg.TokenBudget)
}

func TestRetrievalConfigDefaults(t *testing.T) {
	// Незаполненная секция retrieval заменяется параметрами исходного бота
	var config Config
	cfg := config.RetrievalConfig()

	assert.Equal(t, 50, cfg.TopN)
	assert.Equal(t, 0.7, cfg.RelevanceThreshold)
	assert.Equal(t, 10000, cfg.TokenBudget)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	var config Config

	_, err := NewGeminiClient(context.Background(), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API ключ")
}
