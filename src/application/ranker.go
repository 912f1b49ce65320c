package application

import (
	"math"
	"sort"

	"raum-bot/src/domain"
)

// RelatednessFunc функция схожести двух эмбеддингов одинаковой размерности
type RelatednessFunc func(a, b []float64) float64

// CosineSimilarity косинусная схожесть векторов (1 - косинусное расстояние).
// Для нулевого вектора возвращает 0
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank оценивает каждый фрагмент корпуса функцией схожести и возвращает
// не более topN фрагментов по убыванию оценки. Корпус сканируется целиком,
// без индексных структур. При равных оценках сохраняется исходный порядок корпуса
func Rank(queryEmbedding []float64, corpus domain.Corpus, relatednessFn RelatednessFunc, topN int) ([]domain.RankedResult, error) {
	results := make([]domain.RankedResult, 0, len(corpus))

	for _, entry := range corpus {
		if len(entry.Embedding) != len(queryEmbedding) {
			return nil, &domain.InvalidEmbeddingError{
				Expected: len(entry.Embedding),
				Actual:   len(queryEmbedding),
			}
		}

		results = append(results, domain.RankedResult{
			Chunk: entry.Chunk,
			Score: relatednessFn(queryEmbedding, entry.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN < 0 {
		topN = 0
	}
	if topN < len(results) {
		results = results[:topN]
	}

	return results, nil
}
