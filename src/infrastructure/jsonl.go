package infrastructure

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"raum-bot/src/domain"
)

// JSONLCorpusRepository читает корпус из файла с построчными JSON записями
// вида {"chunk": "...", "embedding": [...]}
type JSONLCorpusRepository struct {
	path string
}

// NewJSONLCorpusRepository создает источник корпуса из JSONL файла
func NewJSONLCorpusRepository(path string) *JSONLCorpusRepository {
	return &JSONLCorpusRepository{path: path}
}

// LoadCorpus загружает корпус целиком в память. Размерность эмбеддингов
// должна быть одинаковой во всех записях
func (r *JSONLCorpusRepository) LoadCorpus() (domain.Corpus, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл корпуса: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// Фрагменты форума вместе с эмбеддингами могут быть длиннее стандартного буфера
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var corpus domain.Corpus
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry domain.CorpusEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("ошибка разбора строки %d: %w", lineNo, err)
		}

		if len(corpus) > 0 && len(entry.Embedding) != corpus.Dimension() {
			return nil, fmt.Errorf("строка %d: %w", lineNo, &domain.InvalidEmbeddingError{
				Expected: corpus.Dimension(),
				Actual:   len(entry.Embedding),
			})
		}

		corpus = append(corpus, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения файла корпуса: %w", err)
	}

	return corpus, nil
}
