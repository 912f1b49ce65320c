package application

import "context"

// QueryService интерфейс сервиса ответов на вопросы, используемый транспортным слоем
type QueryService interface {
	// AnswerQuery возвращает ответ на вопрос и фрагменты корпуса, на которых он основан
	AnswerQuery(ctx context.Context, query string) (string, []string, error)

	// CorpusSize возвращает количество фрагментов в корпусе
	CorpusSize() int

	// ExampleChunk возвращает пример фрагмента корпуса
	ExampleChunk() string
}
