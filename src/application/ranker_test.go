package application

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raum-bot/src/domain"
)

// embeddingWithScore возвращает единичный вектор с косинусной схожестью score
// относительно запроса [1, 0]
func embeddingWithScore(score float64) []float64 {
	return []float64{score, math.Sqrt(1 - score*score)}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 0}, []float64{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{2, 0}, []float64{5, 0}), 1e-9)

	// Нулевой вектор не имеет направления
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 0}))
}

func TestRankOrdering(t *testing.T) {
	corpus := domain.Corpus{
		{Chunk: "слабый", Embedding: embeddingWithScore(0.3)},
		{Chunk: "сильный", Embedding: embeddingWithScore(0.95)},
		{Chunk: "средний", Embedding: embeddingWithScore(0.6)},
	}

	results, err := Rank([]float64{1, 0}, corpus, CosineSimilarity, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "сильный", results[0].Chunk)
	assert.Equal(t, "средний", results[1].Chunk)
	assert.Equal(t, "слабый", results[2].Chunk)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score,
			"оценки должны не возрастать")
	}
}

func TestRankStability(t *testing.T) {
	// Два фрагмента с одинаковыми эмбеддингами: порядок корпуса сохраняется
	same := embeddingWithScore(0.8)
	corpus := domain.Corpus{
		{Chunk: "первый", Embedding: same},
		{Chunk: "второй", Embedding: same},
	}

	results, err := Rank([]float64{1, 0}, corpus, CosineSimilarity, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "первый", results[0].Chunk)
	assert.Equal(t, "второй", results[1].Chunk)
}

func TestRankTopNBound(t *testing.T) {
	corpus := domain.Corpus{
		{Chunk: "a", Embedding: embeddingWithScore(0.1)},
		{Chunk: "b", Embedding: embeddingWithScore(0.2)},
		{Chunk: "c", Embedding: embeddingWithScore(0.3)},
	}

	results, err := Rank([]float64{1, 0}, corpus, CosineSimilarity, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = Rank([]float64{1, 0}, corpus, CosineSimilarity, 100)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = Rank([]float64{1, 0}, corpus, CosineSimilarity, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankEmptyCorpus(t *testing.T) {
	results, err := Rank([]float64{1, 0}, domain.Corpus{}, CosineSimilarity, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankDimensionMismatch(t *testing.T) {
	corpus := domain.Corpus{
		{Chunk: "a", Embedding: []float64{1, 0, 0}},
	}

	_, err := Rank([]float64{1, 0}, corpus, CosineSimilarity, 5)
	require.Error(t, err)

	var dimErr *domain.InvalidEmbeddingError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 3, dimErr.Expected)
	assert.Equal(t, 2, dimErr.Actual)
}
