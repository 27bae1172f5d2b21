package port

import "car-damage-bot/internal/domain/entity"

// Visualizer рисует рамки детекций поверх исходного изображения
type Visualizer interface {
	// Render читает srcPath и записывает размеченное изображение в dstPath.
	// При ошибке чтения файл dstPath не создаётся.
	Render(srcPath, dstPath string, detections []entity.Detection) error

	// RenderBytes размечает изображение в памяти и возвращает JPEG
	RenderBytes(imageData []byte, detections []entity.Detection) ([]byte, error)
}
