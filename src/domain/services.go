package domain

import "context"

// EmbeddingService интерфейс сервиса векторизации текста.
// Корпус и запросы должны векторизоваться одной и той же версией модели
type EmbeddingService interface {
	// Embed возвращает эмбеддинг текста
	Embed(ctx context.Context, text string) ([]float64, error)
}

// TokenCounter интерфейс сервиса подсчета токенов конкретной модели
type TokenCounter interface {
	// CountTokens возвращает количество токенов текста для указанной модели
	CountTokens(ctx context.Context, model, text string) (int, error)
}

// GenerationService интерфейс генеративной модели
type GenerationService interface {
	// GenerateContent отправляет промпт модели и возвращает текст ответа
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// CorpusRepository источник заранее векторизованного корпуса
type CorpusRepository interface {
	// LoadCorpus загружает корпус целиком в память
	LoadCorpus() (Corpus, error)
}
