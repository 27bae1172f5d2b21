package port

import (
	"context"

	"car-damage-bot/internal/domain/entity"
)

// AssessmentDescriber интерфейс описателя результата оценки
type AssessmentDescriber interface {
	// Describe формирует текстовый отчёт по результату оценки
	Describe(ctx context.Context, assessment *entity.Assessment) (*entity.Description, error)
}
