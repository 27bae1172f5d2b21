package vision

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"car-damage-bot/internal/domain/entity"
)

var (
	// Highlight цвет рамки и фона подписи.
	Highlight = color.RGBA{R: 255, G: 255, A: 255}
	// TextColor цвет текста подписи.
	TextColor = color.RGBA{A: 255}
)

const (
	defaultThickness   = 3
	defaultJPEGQuality = 90
	labelPadding       = 10
	textInset          = 5
)

// Label формирует подпись рамки: класс и уверенность.
func Label(d entity.Detection) string {
	return fmt.Sprintf("%s (%.2f)", d.Class, d.Confidence)
}

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// writeFileAtomic пишет во временный файл рядом с dst и переименовывает его,
// чтобы по пути dst никогда не оказался частично записанный файл.
func writeFileAtomic(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".render-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", dst, err)
	}
	return nil
}

func readSource(srcPath string) ([]byte, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", entity.ErrImageIO, srcPath, err)
	}
	return data, nil
}
