package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation нарушение контракта входных данных детектора.
	ErrValidation = errors.New("validation error")

	// ErrImageIO изображение не удалось прочитать или декодировать.
	ErrImageIO = errors.New("image io error")
)

// ValidationError указывает на конкретное поле, нарушившее контракт.
// Index равен -1, если ошибка относится не к отдельной детекции.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation error: detection %d: %s: %s", e.Index, e.Field, e.Reason)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
