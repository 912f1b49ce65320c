package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"raum-bot/src/application"
	"raum-bot/src/domain"
	"raum-bot/src/infrastructure"
	"raum-bot/src/infrastructure/ai"
	"raum-bot/src/infrastructure/telegram"
)

func main() {
	// Определяем флаги командной строки
	configPath := flag.String("config", "config/config.yaml", "Путь к файлу конфигурации")
	corpusPath := flag.String("corpus", "", "Путь к JSONL файлу корпуса (переопределяет конфигурацию)")
	dbPath := flag.String("db", "", "Путь к базе данных SQLite с корпусом (переопределяет конфигурацию)")
	action := flag.String("action", "serve", "Действие: serve, ask, import")
	query := flag.String("query", "", "Вопрос (для действия ask)")

	flag.Parse()

	// Загружаем .env, если он есть
	_ = godotenv.Load()

	config, err := ai.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	config.ApplyEnv()

	if *corpusPath != "" {
		config.Corpus.Path = *corpusPath
	}
	if *dbPath != "" {
		config.Corpus.DBPath = *dbPath
	}

	switch *action {
	case "serve":
		if err := runServe(config); err != nil {
			log.Fatalf("Ошибка запуска бота: %v", err)
		}
	case "ask":
		if *query == "" {
			log.Fatal("Для действия 'ask' требуется указать вопрос (-query)")
		}
		if err := runAsk(config, *query); err != nil {
			log.Fatalf("Ошибка обработки вопроса: %v", err)
		}
	case "import":
		if err := runImport(config); err != nil {
			log.Fatalf("Ошибка импорта корпуса: %v", err)
		}
	default:
		fmt.Println("Неизвестное действие. Доступные действия:")
		fmt.Println("  -action=serve                          # Запустить Telegram бота")
		fmt.Println("  -action=ask -query='ваш вопрос'        # Разовый вопрос из командной строки")
		fmt.Println("  -action=import -corpus=... -db=...     # Импортировать JSONL корпус в SQLite")
	}
}

// loadCorpus выбирает источник корпуса: SQLite, если задан путь к базе, иначе JSONL
func loadCorpus(config ai.Config) (domain.Corpus, error) {
	if config.Corpus.DBPath != "" {
		repo, err := infrastructure.NewSQLiteCorpusRepository(config.Corpus.DBPath)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		return repo.LoadCorpus()
	}
	return infrastructure.NewJSONLCorpusRepository(config.Corpus.Path).LoadCorpus()
}

// newService собирает конвейер ответов на вопросы
func newService(ctx context.Context, config ai.Config) (*application.RAGService, error) {
	corpus, err := loadCorpus(config)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить корпус: %w", err)
	}
	log.Printf("Корпус загружен: %d фрагментов, размерность %d", len(corpus), corpus.Dimension())

	client, err := ai.NewGeminiClient(ctx, config)
	if err != nil {
		return nil, err
	}

	builder := application.NewPromptBuilder(client, client, config.AI.GenerationModel, config.RetrievalConfig())
	return application.NewRAGService(corpus, builder, client, config.AI.GenerationModel), nil
}

// runServe запускает Telegram бота
func runServe(config ai.Config) error {
	ctx := context.Background()

	service, err := newService(ctx, config)
	if err != nil {
		return err
	}

	bot, err := telegram.NewBot(config.Telegram.Token, service)
	if err != nil {
		return err
	}

	return bot.Run(ctx)
}

// runAsk выполняет разовый вопрос из командной строки
func runAsk(config ai.Config, query string) error {
	ctx := context.Background()

	service, err := newService(ctx, config)
	if err != nil {
		return err
	}

	answer, usedChunks, err := service.AnswerQuery(ctx, query)
	if err != nil {
		return err
	}

	fmt.Printf("Ответ: %s\n", answer)
	if len(usedChunks) > 0 {
		fmt.Println("\nРелевантные тексты:")
		for i, chunk := range usedChunks {
			fmt.Printf("%d. %s\n", i+1, chunk)
		}
	}

	return nil
}

// runImport перекладывает JSONL корпус в базу данных SQLite
func runImport(config ai.Config) error {
	if config.Corpus.DBPath == "" {
		return fmt.Errorf("для импорта требуется указать путь к базе данных (-db)")
	}

	corpus, err := infrastructure.NewJSONLCorpusRepository(config.Corpus.Path).LoadCorpus()
	if err != nil {
		return fmt.Errorf("не удалось загрузить корпус: %w", err)
	}

	repo, err := infrastructure.NewSQLiteCorpusRepository(config.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SaveCorpus(corpus); err != nil {
		return err
	}

	fmt.Printf("Импортировано %d фрагментов в %s\n", len(corpus), config.Corpus.DBPath)
	return nil
}
