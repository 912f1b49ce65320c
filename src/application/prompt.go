package application

import (
	"context"
	"fmt"

	"raum-bot/src/domain"
)

// Тексты промпта исходного бота: системная установка, заголовок вопроса
// и заключительная инструкция
const (
	systemPrompt = "Ты помогаешь пользователям находить решения технических проблем с автомобилями. " +
		"Ответ должен основываться только на информации из автомобильного форума, предоставленной в контексте."
	closingInstruction = "\nДай краткий и точный ответ, основываясь только на контексте. " +
		"Не добавляй ничего не касающегося вопроса."
)

// PromptBuilder собирает промпт с контекстом из корпуса в пределах бюджета токенов
type PromptBuilder struct {
	embedder      domain.EmbeddingService
	counter       domain.TokenCounter
	model         string // модель, токенизатором которой измеряется бюджет
	relatednessFn RelatednessFunc
	config        domain.RetrievalConfig
}

// NewPromptBuilder создает сборщик промптов с косинусной схожестью по умолчанию
func NewPromptBuilder(embedder domain.EmbeddingService, counter domain.TokenCounter, model string, config domain.RetrievalConfig) *PromptBuilder {
	return &PromptBuilder{
		embedder:      embedder,
		counter:       counter,
		model:         model,
		relatednessFn: CosineSimilarity,
		config:        config,
	}
}

// WithRelatednessFn заменяет функцию схожести
func (b *PromptBuilder) WithRelatednessFn(fn RelatednessFunc) *PromptBuilder {
	b.relatednessFn = fn
	return b
}

// BuildPrompt векторизует запрос, ранжирует корпус и жадно добавляет фрагменты
// в промпт, пока не исчерпается бюджет токенов. Возвращает итоговый промпт
// и фрагменты, реально вошедшие в него
func (b *PromptBuilder) BuildPrompt(ctx context.Context, query string, corpus domain.Corpus) (domain.PromptBuild, error) {
	queryEmbedding, err := b.embedder.Embed(ctx, query)
	if err != nil {
		return domain.PromptBuild{}, &domain.UpstreamServiceError{Service: "embedding", Err: err}
	}

	ranked, err := Rank(queryEmbedding, corpus, b.relatednessFn, b.config.TopN)
	if err != nil {
		return domain.PromptBuild{}, err
	}

	// Фрагменты с оценкой не выше порога отбрасываются целиком,
	// даже если после фильтра не останется ни одного
	related := make([]string, 0, len(ranked))
	for _, r := range ranked {
		if r.Score > b.config.RelevanceThreshold {
			related = append(related, r.Chunk)
		}
	}

	prompt := systemPrompt + fmt.Sprintf("Вопрос: %s\n\nКонтекст:\n", query) + "\n\n"

	used := make([]string, 0, len(related))
	for i, text := range related {
		candidate := fmt.Sprintf("%d. %s\n", i+1, text)

		total, err := b.counter.CountTokens(ctx, b.model, prompt+candidate)
		if err != nil {
			return domain.PromptBuild{}, &domain.UpstreamServiceError{Service: "tokenizer", Err: err}
		}

		// Первый фрагмент, не влезающий в бюджет, обрывает добавление:
		// последующие, даже более короткие, не рассматриваются
		if total > b.config.TokenBudget {
			break
		}

		prompt += candidate
		used = append(used, text)
	}

	return domain.PromptBuild{
		Prompt:     prompt + closingInstruction,
		UsedChunks: used,
	}, nil
}
