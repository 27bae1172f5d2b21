package roboflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfnt/resize"

	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

const (
	DefaultURL   = "https://detect.roboflow.com"
	DefaultModel = "car-damage-detection-t0g92/3"
)

// Options параметры клиента детектора.
type Options struct {
	URL       string
	Model     string
	APIKey    string
	MaxSide   int           // 0 отключает уменьшение
	Attempts  int           // число попыток запроса
	BaseDelay time.Duration // начальная пауза между попытками
	Timeout   time.Duration // таймаут одного запроса
}

// Client обращается к хостинговой модели детекции повреждений.
type Client struct {
	opts       Options
	httpClient *http.Client
}

// New создаёт клиента, подставляя значения по умолчанию.
func New(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 200 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// Detect отправляет изображение в детектор. Координаты рамок возвращаются
// в пикселях исходного изображения, даже если на отправку ушла уменьшенная копия.
func (c *Client) Detect(ctx context.Context, imageData []byte) (*entity.DetectionBatch, error) {
	upload, scale, origW, origH, err := c.prepare(imageData)
	if err != nil {
		return nil, err
	}

	var batch *entity.DetectionBatch
	err = retry(ctx, c.opts.Attempts, c.opts.BaseDelay, func() error {
		var postErr error
		batch, postErr = c.post(ctx, upload)
		if postErr != nil {
			log.Printf("roboflow: request failed: %v", postErr)
		}
		return postErr
	})
	if err != nil {
		return nil, err
	}

	if scale != 1 {
		for i := range batch.Detections {
			d := &batch.Detections[i]
			d.X *= scale
			d.Y *= scale
			d.Width *= scale
			d.Height *= scale
		}
	}
	if origW > 0 && origH > 0 {
		batch.ImageWidth, batch.ImageHeight = origW, origH
	}

	return batch, nil
}

// prepare уменьшает изображение, если длинная сторона больше MaxSide.
func (c *Client) prepare(imageData []byte) (upload []byte, scale float64, width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: decode upload: %w", entity.ErrImageIO, err)
	}

	longest := max(cfg.Width, cfg.Height)
	if c.opts.MaxSide <= 0 || longest <= c.opts.MaxSide {
		return imageData, 1, cfg.Width, cfg.Height, nil
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("%w: decode upload: %w", entity.ErrImageIO, err)
	}

	var resized image.Image
	if cfg.Width >= cfg.Height {
		resized = resize.Resize(uint(c.opts.MaxSide), 0, img, resize.Lanczos3)
	} else {
		resized = resize.Resize(0, uint(c.opts.MaxSide), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, 0, 0, 0, fmt.Errorf("encode upload: %w", err)
	}

	scale = float64(cfg.Width) / float64(resized.Bounds().Dx())
	return buf.Bytes(), scale, cfg.Width, cfg.Height, nil
}

func (c *Client) post(ctx context.Context, imageData []byte) (*entity.DetectionBatch, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, permanent(fmt.Errorf("create form file: %w", err))
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, permanent(fmt.Errorf("copy image data: %w", err))
	}
	if err := writer.Close(); err != nil {
		return nil, permanent(fmt.Errorf("close multipart writer: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), body)
	if err != nil {
		return nil, permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("detector returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		return nil, permanent(err)
	}

	batch, err := Decode(resp.Body)
	if err != nil {
		return nil, permanent(err)
	}
	return batch, nil
}

func (c *Client) endpoint() string {
	q := url.Values{}
	q.Set("api_key", c.opts.APIKey)
	return strings.TrimRight(c.opts.URL, "/") + "/" + strings.TrimLeft(c.opts.Model, "/") + "?" + q.Encode()
}

// Проверка реализации интерфейса
var _ port.DamageDetector = (*Client)(nil)
