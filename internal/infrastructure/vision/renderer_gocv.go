//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

const (
	labelFont      = gocv.FontHersheySimplex
	labelFontScale = 0.7
	labelThickness = 2
)

// Renderer рисует рамки детекций через OpenCV.
type Renderer struct {
	Thickness   int
	JPEGQuality int
}

// NewRenderer создаёт рендерер с жёлтыми рамками толщиной 3 пикселя.
func NewRenderer() *Renderer {
	return &Renderer{
		Thickness:   defaultThickness,
		JPEGQuality: defaultJPEGQuality,
	}
}

// Render читает srcPath, рисует рамки и сохраняет результат в dstPath.
// Формат выбирается по расширению dstPath: .png или JPEG.
func (r *Renderer) Render(srcPath, dstPath string, detections []entity.Detection) error {
	data, err := readSource(srcPath)
	if err != nil {
		return err
	}

	ext := gocv.JPEGFileExt
	if isPNG(dstPath) {
		ext = gocv.PNGFileExt
	}

	out, err := r.render(data, srcPath, ext, detections)
	if err != nil {
		return err
	}

	return writeFileAtomic(dstPath, out)
}

// RenderBytes рисует рамки на изображении в памяти и возвращает JPEG.
func (r *Renderer) RenderBytes(imageData []byte, detections []entity.Detection) ([]byte, error) {
	return r.render(imageData, "image", gocv.JPEGFileExt, detections)
}

func (r *Renderer) render(data []byte, name string, ext gocv.FileExt, detections []entity.Detection) ([]byte, error) {
	mat, err := decodeToMat(data)
	if err != nil {
		mat.Close()
		return nil, fmt.Errorf("%w: decode %s: %w", entity.ErrImageIO, name, err)
	}
	defer mat.Close()

	for _, d := range detections {
		box := d.Corners()
		gocv.Rectangle(&mat, box, Highlight, r.Thickness)

		label := Label(d)
		size := gocv.GetTextSize(label, labelFont, labelFontScale, labelThickness)

		background := image.Rect(
			box.Min.X, box.Min.Y-size.Y-labelPadding,
			box.Min.X+size.X+labelPadding, box.Min.Y,
		)
		gocv.Rectangle(&mat, background, Highlight, -1)

		gocv.PutText(&mat, label, image.Pt(box.Min.X+textInset, box.Min.Y-textInset),
			labelFont, labelFontScale, TextColor, labelThickness)
	}

	var params []int
	if ext == gocv.JPEGFileExt {
		params = []int{int(gocv.IMWriteJpegQuality), r.JPEGQuality}
	}
	buf, err := gocv.IMEncodeWithParams(ext, mat, params)
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// Проверка реализации интерфейса
var _ port.Visualizer = (*Renderer)(nil)
