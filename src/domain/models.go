package domain

// CorpusEntry представляет фрагмент текста форума с заранее вычисленным эмбеддингом
type CorpusEntry struct {
	Chunk     string    `json:"chunk"`
	Embedding []float64 `json:"embedding"`
}

// Corpus упорядоченная коллекция фрагментов; после загрузки только читается,
// поэтому может использоваться из нескольких горутин без блокировок
type Corpus []CorpusEntry

// Dimension возвращает размерность эмбеддингов корпуса (0 для пустого корпуса)
func (c Corpus) Dimension() int {
	if len(c) == 0 {
		return 0
	}
	return len(c[0].Embedding)
}

// RankedResult фрагмент с оценкой схожести относительно запроса
type RankedResult struct {
	Chunk string  `json:"chunk"`
	Score float64 `json:"score"`
}

// PromptBuild результат сборки промпта для генеративной модели
type PromptBuild struct {
	// Prompt итоговый текст, отправляемый модели
	Prompt string `json:"prompt"`
	// UsedChunks фрагменты, реально вошедшие в промпт, в порядке убывания релевантности
	UsedChunks []string `json:"used_chunks"`
}

// RetrievalConfig параметры отбора контекста; задаются конфигурацией,
// а не зашиваются в код ранжирования и сборки
type RetrievalConfig struct {
	// TopN сколько фрагментов запрашивать у ранжировщика
	TopN int `yaml:"top_n"`
	// RelevanceThreshold минимальная оценка схожести (строго больше) для попадания в контекст
	RelevanceThreshold float64 `yaml:"relevance_threshold"`
	// TokenBudget максимальное количество токенов в собранном промпте
	TokenBudget int `yaml:"token_budget"`
}

// DefaultRetrievalConfig возвращает параметры отбора, использовавшиеся в исходном боте
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopN:               50,
		RelevanceThreshold: 0.7,
		TokenBudget:        10000,
	}
}
