package port

import (
	"context"

	"car-damage-bot/internal/domain/entity"
)

// DamageDetector внешний сервис детекции повреждений
type DamageDetector interface {
	// Detect отправляет изображение детектору и возвращает найденные области
	Detect(ctx context.Context, imageData []byte) (*entity.DetectionBatch, error)
}
