package infrastructure

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"raum-bot/src/domain"
)

// SQLiteCorpusRepository хранение заранее векторизованного корпуса в SQLite.
// Во время работы бота база только читается
type SQLiteCorpusRepository struct {
	db *sqlx.DB
}

// NewSQLiteCorpusRepository создает новый экземпляр репозитория
func NewSQLiteCorpusRepository(dbPath string) (*SQLiteCorpusRepository, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	repo := &SQLiteCorpusRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("не удалось инициализировать схему: %w", err)
	}

	return repo, nil
}

// initSchema инициализирует схему базы данных
func (r *SQLiteCorpusRepository) initSchema() error {
	schema := `CREATE TABLE IF NOT EXISTS corpus (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chunk TEXT NOT NULL,
		embedding TEXT NOT NULL
	)`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("ошибка при создании таблицы: %w", err)
	}

	return nil
}

// SaveCorpus сохраняет корпус в базе данных, эмбеддинги кодируются в JSON
func (r *SQLiteCorpusRepository) SaveCorpus(corpus domain.Corpus) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO corpus (chunk, embedding) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("не удалось подготовить SQL для фрагмента: %w", err)
	}
	defer stmt.Close()

	for i, entry := range corpus {
		embedding, err := json.Marshal(entry.Embedding)
		if err != nil {
			return fmt.Errorf("не удалось закодировать эмбеддинг %d: %w", i, err)
		}

		if _, err := stmt.Exec(entry.Chunk, string(embedding)); err != nil {
			return fmt.Errorf("не удалось вставить фрагмент %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}

	return nil
}

// LoadCorpus загружает корпус целиком в память в порядке вставки
func (r *SQLiteCorpusRepository) LoadCorpus() (domain.Corpus, error) {
	rows, err := r.db.Queryx("SELECT chunk, embedding FROM corpus ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var corpus domain.Corpus
	for rows.Next() {
		var chunk, encoded string
		if err := rows.Scan(&chunk, &encoded); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки: %w", err)
		}

		var embedding []float64
		if err := json.Unmarshal([]byte(encoded), &embedding); err != nil {
			return nil, fmt.Errorf("ошибка разбора эмбеддинга: %w", err)
		}

		if len(corpus) > 0 && len(embedding) != corpus.Dimension() {
			return nil, &domain.InvalidEmbeddingError{
				Expected: corpus.Dimension(),
				Actual:   len(embedding),
			}
		}

		corpus = append(corpus, domain.CorpusEntry{Chunk: chunk, Embedding: embedding})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения результатов: %w", err)
	}

	return corpus, nil
}

// Close закрывает соединение с базой данных
func (r *SQLiteCorpusRepository) Close() error {
	return r.db.Close()
}
