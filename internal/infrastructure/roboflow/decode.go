package roboflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"car-damage-bot/internal/domain/entity"
)

type imageInfo struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type response struct {
	Image       *imageInfo            `json:"image"`
	Predictions []entity.RawDetection `json:"predictions"`
}

// Decode разбирает ответ детектора. Принимает как полный ответ
// {"image": {...}, "predictions": [...]}, так и голый массив предсказаний.
func Decode(r io.Reader) (*entity.DetectionBatch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read detector response: %w", err)
	}

	var resp response
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &resp.Predictions)
	} else {
		err = json.Unmarshal(trimmed, &resp)
	}
	if err != nil {
		return nil, fmt.Errorf("decode detector response: %w", err)
	}

	batch := &entity.DetectionBatch{
		Detections: make([]entity.Detection, 0, len(resp.Predictions)),
	}
	if resp.Image != nil {
		batch.ImageWidth = int(resp.Image.Width)
		batch.ImageHeight = int(resp.Image.Height)
	}

	for i, raw := range resp.Predictions {
		d, err := raw.ToDetection(i)
		if err != nil {
			return nil, err
		}
		batch.Detections = append(batch.Detections, d)
	}

	return batch, nil
}
