//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

// Renderer рисует рамки детекций средствами image/draw (сборка без OpenCV).
type Renderer struct {
	Thickness   int
	JPEGQuality int
	face        font.Face
}

// NewRenderer создаёт рендерер с жёлтыми рамками толщиной 3 пикселя.
func NewRenderer() *Renderer {
	return &Renderer{
		Thickness:   defaultThickness,
		JPEGQuality: defaultJPEGQuality,
		face:        basicfont.Face7x13,
	}
}

// Render читает srcPath, рисует рамки и сохраняет результат в dstPath.
// Формат выбирается по расширению dstPath: .png или JPEG.
func (r *Renderer) Render(srcPath, dstPath string, detections []entity.Detection) error {
	data, err := readSource(srcPath)
	if err != nil {
		return err
	}

	img, err := decode(data, srcPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	canvas := r.annotate(img, detections)
	if isPNG(dstPath) {
		err = png.Encode(&buf, canvas)
	} else {
		err = jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: r.JPEGQuality})
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", dstPath, err)
	}

	return writeFileAtomic(dstPath, buf.Bytes())
}

// RenderBytes рисует рамки на изображении в памяти и возвращает JPEG.
func (r *Renderer) RenderBytes(imageData []byte, detections []entity.Detection) ([]byte, error) {
	img, err := decode(imageData, "image")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, r.annotate(img, detections), &jpeg.Options{Quality: r.JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", entity.ErrImageIO, name, err)
	}
	return img, nil
}

// annotate копирует изображение и рисует поверх копии.
func (r *Renderer) annotate(img image.Image, detections []entity.Detection) *image.RGBA {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	highlight := image.NewUniform(Highlight)
	textSrc := image.NewUniform(TextColor)
	textHeight := r.face.Metrics().Ascent.Ceil()

	for _, d := range detections {
		box := d.Corners().Add(bounds.Min)
		r.drawBox(canvas, box, highlight)

		label := Label(d)
		textWidth := font.MeasureString(r.face, label).Ceil()

		background := image.Rect(
			box.Min.X, box.Min.Y-textHeight-labelPadding,
			box.Min.X+textWidth+labelPadding, box.Min.Y,
		)
		draw.Draw(canvas, background, highlight, image.Point{}, draw.Src)

		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  textSrc,
			Face: r.face,
			Dot:  fixed.P(box.Min.X+textInset, box.Min.Y-textInset),
		}
		drawer.DrawString(label)
	}

	return canvas
}

// drawBox рисует контур, центрированный по границе рамки.
func (r *Renderer) drawBox(dst draw.Image, box image.Rectangle, src image.Image) {
	half := r.Thickness / 2
	lo, hi := -half, r.Thickness-half

	edges := []image.Rectangle{
		image.Rect(box.Min.X+lo, box.Min.Y+lo, box.Max.X+hi, box.Min.Y+hi),
		image.Rect(box.Min.X+lo, box.Max.Y+lo, box.Max.X+hi, box.Max.Y+hi),
		image.Rect(box.Min.X+lo, box.Min.Y+lo, box.Min.X+hi, box.Max.Y+hi),
		image.Rect(box.Max.X+lo, box.Min.Y+lo, box.Max.X+hi, box.Max.Y+hi),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}

// Проверка реализации интерфейса
var _ port.Visualizer = (*Renderer)(nil)
