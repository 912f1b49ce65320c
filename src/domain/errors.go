package domain

import "fmt"

// InvalidEmbeddingError несовпадение размерности эмбеддинга запроса и корпуса.
// Запрос с такой ошибкой не повторяется
type InvalidEmbeddingError struct {
	Expected int
	Actual   int
}

func (e *InvalidEmbeddingError) Error() string {
	return fmt.Sprintf("несовпадение размерности эмбеддинга: ожидалось %d, получено %d", e.Expected, e.Actual)
}

// UpstreamServiceError ошибка внешнего сервиса (эмбеддинги, подсчет токенов, генерация).
// Передается вызывающему без повторных попыток
type UpstreamServiceError struct {
	Service string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("ошибка сервиса %s: %v", e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Err
}
