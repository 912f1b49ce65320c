package application

import (
	"context"
	"strings"

	"raum-bot/src/domain"
)

// NoAnswerFallback текст, возвращаемый пользователю при пустом ответе модели
const NoAnswerFallback = "Нет ответа."

// RAGService отвечает на вопросы пользователей по корпусу форума
type RAGService struct {
	corpus    domain.Corpus
	builder   *PromptBuilder
	generator domain.GenerationService
	model     string
}

// NewRAGService создает новый экземпляр RAG сервиса
func NewRAGService(corpus domain.Corpus, builder *PromptBuilder, generator domain.GenerationService, model string) *RAGService {
	return &RAGService{
		corpus:    corpus,
		builder:   builder,
		generator: generator,
		model:     model,
	}
}

// AnswerQuery выполняет полный конвейер: эмбеддинг запроса, ранжирование корпуса,
// сборка промпта и генерация ответа. Возвращает ответ и фрагменты, вошедшие в промпт.
// Пустой ответ модели не является ошибкой: вместо него возвращается NoAnswerFallback
func (s *RAGService) AnswerQuery(ctx context.Context, query string) (string, []string, error) {
	build, err := s.builder.BuildPrompt(ctx, query, s.corpus)
	if err != nil {
		return "", nil, err
	}

	answer, err := s.generator.GenerateContent(ctx, s.model, build.Prompt)
	if err != nil {
		return "", nil, &domain.UpstreamServiceError{Service: "generation", Err: err}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return NoAnswerFallback, build.UsedChunks, nil
	}

	return answer, build.UsedChunks, nil
}

// CorpusSize возвращает количество фрагментов в корпусе
func (s *RAGService) CorpusSize() int {
	return len(s.corpus)
}

// ExampleChunk возвращает первый фрагмент корпуса (используется в справке бота)
func (s *RAGService) ExampleChunk() string {
	if len(s.corpus) == 0 {
		return ""
	}
	return s.corpus[0].Chunk
}
