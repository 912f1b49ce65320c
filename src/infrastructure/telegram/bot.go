package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"raum-bot/src/application"
)

// Тексты бота
const (
	startText = "Привет! Я бот, отвечающий на вопросы по базе знаний об обслуживании автомобилей Toyota Raum.\n\n" +
		"Просто задай вопрос, например:\n" +
		"- Почему двигатель теряет мощность?\n" +
		"- Какое масло заливать зимой в W211?\n\n" +
		"Для подробной информации используй команду /help."
	helpTopic      = "Тематика: Автомобильный форум по решению технических проблем с автомобилем Toyota Raum (1997-2003)."
	helpText       = "Задавайте любой вопрос по техническим проблемам с автомобилем и я отвечу на него, основываясь на информации из автомобильного форума."
	processingText = "Бот обрабатывает ваш запрос, это может занять некоторое время..."
	failureText    = "Произошла ошибка при обработке запроса, попробуйте еще раз позже."
)

// relevantShown сколько релевантных текстов показывать пользователю
const relevantShown = 5

// Bot транспортный слой Telegram: принимает вопросы и отправляет ответы
type Bot struct {
	api     *tgbotapi.BotAPI
	service application.QueryService
}

// NewBot создает бота с указанным токеном
func NewBot(token string, service application.QueryService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Telegram API: %w", err)
	}

	return &Bot{api: api, service: service}, nil
}

// Run запускает обработку входящих сообщений через long polling.
// Каждый вопрос обрабатывается в отдельной горутине, чтобы долгие обращения
// к внешним сервисам не блокировали остальных пользователей
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Бот @%s запущен", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage разбирает команды; любой текст без команды считается вопросом
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.send(msg.Chat.ID, startText)
	case "help":
		b.send(msg.Chat.ID, b.buildHelp())
	case "":
		b.handleQuery(ctx, msg)
	default:
		b.send(msg.Chat.ID, "Неизвестная команда. Используй /help.")
	}
}

// buildHelp собирает справку с размером корпуса и примером фрагмента
func (b *Bot) buildHelp() string {
	return fmt.Sprintf(
		"%s\n\nКоличество текстов в базе: %d\n\nПример текста:\n%s\n\n%s",
		helpTopic, b.service.CorpusSize(), b.service.ExampleChunk(), helpText,
	)
}

// handleQuery отправляет заглушку, выполняет конвейер и заменяет заглушку ответом
func (b *Bot) handleQuery(ctx context.Context, msg *tgbotapi.Message) {
	placeholder, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, processingText))
	if err != nil {
		log.Printf("Не удалось отправить сообщение: %v", err)
		return
	}

	answer, usedChunks, err := b.service.AnswerQuery(ctx, msg.Text)
	if err != nil {
		log.Printf("Ошибка обработки запроса: %v", err)
		answer = failureText
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, placeholder.MessageID, answer)
	if _, sendErr := b.api.Send(edit); sendErr != nil {
		log.Printf("Не удалось обновить сообщение: %v", sendErr)
	}

	if err == nil && len(usedChunks) > 0 {
		if len(usedChunks) > relevantShown {
			usedChunks = usedChunks[:relevantShown]
		}
		b.send(msg.Chat.ID, "Релевантные тексты:\n"+strings.Join(usedChunks, "\n"))
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Не удалось отправить сообщение: %v", err)
	}
}
