package damage

import (
	"car-damage-bot/internal/domain/entity"
)

// Aggregate строит сводку по детекциям одного изображения.
// Нулевая ширина или высота изображения даёт площадь 1, отрицательная считается ошибкой.
func Aggregate(imageWidth, imageHeight int, detections []entity.Detection) (*entity.DetectionSummary, error) {
	if imageWidth < 0 {
		return nil, &entity.ValidationError{Index: -1, Field: "image_width", Reason: "negative"}
	}
	if imageHeight < 0 {
		return nil, &entity.ValidationError{Index: -1, Field: "image_height", Reason: "negative"}
	}

	imageArea := float64(imageWidth) * float64(imageHeight)
	if imageArea < 1 {
		imageArea = 1
	}

	parts := make(entity.DamagedParts)
	totalArea := 0.0
	for i, d := range detections {
		if err := d.Validate(i); err != nil {
			return nil, err
		}
		totalArea += d.Area()
		parts[NormalizePart(d.Class)]++
	}

	ratio := totalArea / imageArea

	raw := make([]entity.Detection, len(detections))
	copy(raw, detections)

	return &entity.DetectionSummary{
		Severity:        ClassifySeverity(len(detections), ratio),
		DamageRatio:     ratio,
		DamagedParts:    parts,
		NumDamagedParts: len(parts),
		RawPredictions:  raw,
	}, nil
}
