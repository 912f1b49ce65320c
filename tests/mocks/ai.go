package mocks

import (
	"context"
	"strings"
	"sync"
)

// MockEmbeddingService имитация сервиса эмбеддингов для тестирования
type MockEmbeddingService struct {
	// EmbedFn переопределяет поведение; если не задана, возвращается Embedding
	EmbedFn   func(ctx context.Context, text string) ([]float64, error)
	Embedding []float64
}

func (m *MockEmbeddingService) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.EmbedFn != nil {
		return m.EmbedFn(ctx, text)
	}
	return m.Embedding, nil
}

// MockTokenCounter имитация сервиса подсчета токенов.
// По умолчанию токеном считается каждое слово текста
type MockTokenCounter struct {
	CountTokensFn func(ctx context.Context, model, text string) (int, error)

	mu    sync.Mutex
	calls int
}

func (m *MockTokenCounter) CountTokens(ctx context.Context, model, text string) (int, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.CountTokensFn != nil {
		return m.CountTokensFn(ctx, model, text)
	}
	return len(strings.Fields(text)), nil
}

// Calls возвращает количество обращений к счетчику
func (m *MockTokenCounter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockGenerationService имитация генеративной модели; запоминает полученные промпты
type MockGenerationService struct {
	GenerateFn func(ctx context.Context, model, prompt string) (string, error)
	Response   string

	mu      sync.Mutex
	Prompts []string
}

func (m *MockGenerationService) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, model, prompt)
	}
	return m.Response, nil
}
