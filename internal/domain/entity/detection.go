package entity

import (
	"image"
	"math"
)

// Detection одна область повреждения, найденная внешним детектором.
// X, Y задают центр рамки в пикселях.
type Detection struct {
	Class      string  `json:"class"`      // метка класса детектора
	Confidence float64 `json:"confidence"` // уверенность в диапазоне [0,1]
	X          float64 `json:"x"`          // центр рамки по X
	Y          float64 `json:"y"`          // центр рамки по Y
	Width      float64 `json:"width"`      // ширина рамки
	Height     float64 `json:"height"`     // высота рамки
}

// Area возвращает площадь рамки.
func (d Detection) Area() float64 {
	return d.Width * d.Height
}

// Corners переводит рамку из формата центра в углы.
// Координаты отбрасывают дробную часть (усечение к нулю).
func (d Detection) Corners() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(int(d.X-d.Width/2), int(d.Y-d.Height/2)),
		Max: image.Pt(int(d.X+d.Width/2), int(d.Y+d.Height/2)),
	}
}

// Validate проверяет, что геометрия рамки пригодна для подсчёта площади.
func (d Detection) Validate(index int) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"x", d.X},
		{"y", d.Y},
		{"width", d.Width},
		{"height", d.Height},
		{"confidence", d.Confidence},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Index: index, Field: f.name, Reason: "not a finite number"}
		}
	}
	if d.Width < 0 {
		return &ValidationError{Index: index, Field: "width", Reason: "negative"}
	}
	if d.Height < 0 {
		return &ValidationError{Index: index, Field: "height", Reason: "negative"}
	}
	return nil
}

// RawDetection запись детектора до проверки обязательных полей.
type RawDetection struct {
	Class      *string  `json:"class"`
	Confidence *float64 `json:"confidence"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Width      *float64 `json:"width"`
	Height     *float64 `json:"height"`
}

// ToDetection проверяет наличие всех полей и возвращает типизированную запись.
func (r RawDetection) ToDetection(index int) (Detection, error) {
	missing := func(field string) error {
		return &ValidationError{Index: index, Field: field, Reason: "missing"}
	}
	switch {
	case r.Class == nil:
		return Detection{}, missing("class")
	case r.Confidence == nil:
		return Detection{}, missing("confidence")
	case r.X == nil:
		return Detection{}, missing("x")
	case r.Y == nil:
		return Detection{}, missing("y")
	case r.Width == nil:
		return Detection{}, missing("width")
	case r.Height == nil:
		return Detection{}, missing("height")
	}

	d := Detection{
		Class:      *r.Class,
		Confidence: *r.Confidence,
		X:          *r.X,
		Y:          *r.Y,
		Width:      *r.Width,
		Height:     *r.Height,
	}
	if err := d.Validate(index); err != nil {
		return Detection{}, err
	}
	return d, nil
}

// DetectionBatch ответ детектора для одного изображения.
type DetectionBatch struct {
	ImageWidth  int
	ImageHeight int
	Detections  []Detection
}
