package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "car-damage-bot/internal/application"
	"car-damage-bot/internal/container"
	"car-damage-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я оцениваю повреждения автомобиля по фотографии.

📸 Отправьте фото повреждённой машины — я найду повреждённые детали, оценю степень повреждений и примерную стоимость ремонта.

📋 Команды:
/car <модель> — указать модель автомобиля
/check — начать проверку
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Укажите модель: /car Toyota Fortuner SUV
2️⃣ Отправьте фото повреждений
3️⃣ Получите отчёт и фото с разметкой

💡 Рекомендации:
• Снимайте при хорошем освещении
• Повреждение должно быть целиком в кадре
• Фото должно быть чётким

📋 Команды:
/car <модель> — указать модель
/check — начать проверку
/cancel — отменить операцию`

	msgAskCarType      = "🚗 Напишите модель автомобиля, например: Honda City Sedan"
	msgCarTypeSaved    = "✅ Модель сохранена: %s\nТеперь отправьте фото повреждений."
	msgAwaitingPhoto   = "📸 Отправьте фото повреждений автомобиля."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото повреждений автомобиля."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgBadImage        = "⚠️ Не удалось прочитать изображение. Отправьте фото в формате JPEG или PNG."
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, appContainer *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api: api,
		app: appContainer,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, user)
		return
	}

	// Ждём модель автомобиля текстом
	if user.State == entity.StateAwaitingCarType && strings.TrimSpace(msg.Text) != "" {
		b.saveCarType(ctx, msg, msg.Text)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	var err error

	switch msg.Command() {
	case "start":
		_, err = b.app.UserService.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "car":
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			b.saveCarType(ctx, msg, args)
			return
		}
		_, err = b.app.UserService.AwaitCarType(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgAskCarType)

	case "check":
		_, err = b.app.UserService.BeginCheck(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "cancel":
		_, err = b.app.UserService.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}

	if err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
	}
}

func (b *Bot) saveCarType(ctx context.Context, msg *tgbotapi.Message, carType string) {
	user, err := b.app.UserService.SetCarType(ctx, msg.From.ID, msg.Chat.ID, carType)
	if err != nil {
		log.Printf("Error saving car type: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgCarTypeSaved, user.CarType))
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	// Устанавливаем состояние "обработка"
	if _, err := b.app.UserService.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
	}
	defer func() {
		if _, err := b.app.UserService.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error updating user %d: %v", user.ID, err)
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imagePath, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	defer os.Remove(imagePath)

	assessment, err := b.app.AssessmentService.Assess(ctx, app.AssessmentRequest{
		ImagePath: imagePath,
		CarType:   user.CarType,
	})
	if err != nil {
		log.Printf("Error assessing photo from user %d: %v", user.ID, err)
		if errors.Is(err, entity.ErrImageIO) {
			b.sendMessage(msg.Chat.ID, msgBadImage)
		} else {
			b.sendMessage(msg.Chat.ID, msgProcessingError)
		}
		return
	}
	if assessment.AnnotatedPath != "" {
		defer os.Remove(assessment.AnnotatedPath)
	}

	text := fmt.Sprintf("Оценка: ₹%d", assessment.Cost.Total)
	if b.app.Describer != nil {
		desc, err := b.app.Describer.Describe(ctx, assessment)
		if err != nil {
			log.Printf("Error describing assessment: %v", err)
		} else {
			text = desc.Text
		}
	}

	if assessment.AnnotatedPath != "" && len(assessment.Summary.RawPredictions) > 0 {
		b.sendPhoto(msg.Chat.ID, assessment.AnnotatedPath, text)
		return
	}
	b.sendMessage(msg.Chat.ID, text)
}

// downloadFile скачивает файл из Telegram во временный файл
func (b *Bot) downloadFile(ctx context.Context, fileID string) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	out, err := os.CreateTemp("", "photo-*.jpg")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("read file: %w", err)
	}

	return out.Name(), nil
}

// sendPhoto отправляет размеченное фото с подписью
func (b *Bot) sendPhoto(chatID int64, path, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
		b.sendMessage(chatID, caption)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
