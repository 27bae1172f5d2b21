package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"car-damage-bot/internal/domain/cost"
	"car-damage-bot/internal/domain/damage"
	"car-damage-bot/internal/domain/entity"
	"car-damage-bot/internal/domain/port"
)

// AssessmentRequest входные данные одной оценки.
type AssessmentRequest struct {
	ImagePath  string // исходная фотография
	OutputPath string // куда сохранить разметку, по умолчанию OutputDir/<uuid>.jpg
	CarType    string // модель автомобиля, по умолчанию из настроек
	Severity   string // метка внешнего классификатора, иначе вычисляется по детекциям
}

// AssessmentService проводит фотографию через детектор, агрегацию,
// визуализацию и расчёт стоимости.
type AssessmentService struct {
	detector       port.DamageDetector
	visualizer     port.Visualizer
	estimator      *cost.Estimator
	outputDir      string
	defaultCarType string
}

// NewAssessmentService создаёт сервис оценки повреждений.
func NewAssessmentService(detector port.DamageDetector, visualizer port.Visualizer, estimator *cost.Estimator, outputDir, defaultCarType string) *AssessmentService {
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &AssessmentService{
		detector:       detector,
		visualizer:     visualizer,
		estimator:      estimator,
		outputDir:      outputDir,
		defaultCarType: defaultCarType,
	}
}

// Assess читает фотографию, получает детекции и строит полный результат.
func (s *AssessmentService) Assess(ctx context.Context, req AssessmentRequest) (*entity.Assessment, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	data, err := os.ReadFile(req.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", entity.ErrImageIO, req.ImagePath, err)
	}

	width, height, err := imageSize(data, req.ImagePath)
	if err != nil {
		return nil, err
	}

	batch, err := s.detector.Detect(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("detect damage: %w", err)
	}

	return s.AssessDetections(ctx, req, width, height, batch.Detections)
}

// AssessDetections строит результат по уже полученным детекциям.
// Агрегация и отрисовка независимы и выполняются параллельно.
func (s *AssessmentService) AssessDetections(ctx context.Context, req AssessmentRequest, width, height int, detections []entity.Detection) (*entity.Assessment, error) {
	var (
		summary   *entity.DetectionSummary
		annotated string
		rendered  bool
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = damage.Aggregate(width, height, detections)
		return err
	})

	if s.visualizer != nil && req.ImagePath != "" {
		annotated = req.OutputPath
		if annotated == "" {
			annotated = filepath.Join(s.outputDir, uuid.NewString()+".jpg")
		}
		g.Go(func() error {
			if err := s.visualizer.Render(req.ImagePath, annotated, detections); err != nil {
				return fmt.Errorf("render detections: %w", err)
			}
			rendered = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if rendered {
			os.Remove(annotated)
		}
		return nil, err
	}

	carType := strings.TrimSpace(req.CarType)
	if carType == "" {
		carType = s.defaultCarType
	}
	severity := strings.TrimSpace(req.Severity)
	if severity == "" {
		severity = string(summary.Severity)
	}

	breakdown := s.estimator.Breakdown(carType, severity, summary.DamagedParts)
	log.Printf("assessment: detections=%d ratio=%.4f severity=%s parts=%d category=%s cost=%d",
		len(detections), summary.DamageRatio, severity, summary.NumDamagedParts, breakdown.Category, breakdown.Total)

	return &entity.Assessment{
		Summary:       summary,
		CarType:       carType,
		Severity:      severity,
		Cost:          breakdown,
		AnnotatedPath: annotated,
	}, nil
}

// ImageSize возвращает размеры изображения из файла.
func ImageSize(path string) (width, height int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read %s: %w", entity.ErrImageIO, path, err)
	}
	return imageSize(data, path)
}

func imageSize(data []byte, name string) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode %s: %w", entity.ErrImageIO, name, err)
	}
	return cfg.Width, cfg.Height, nil
}
