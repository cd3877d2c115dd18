package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"face-detector/internal/domain/entity"
	"face-detector/internal/domain/port"
	"face-detector/internal/infrastructure/render"
	"face-detector/internal/logger"
)

// MsgDecodeFailed текст ошибки, который клиент получает для неразборчивого изображения.
const MsgDecodeFailed = "Could not decode image"

// Options настройки кодирования и декодирования изображений
type Options struct {
	JPEGQuality    int // качество JPEG для размеченного изображения
	MaxImagePixels int // максимальная площадь входного изображения
}

// DetectionService принимает изображение в base64, ищет лица и возвращает размеченную картинку.
type DetectionService struct {
	detector port.FaceDetector
	opts     Options
	log      *logger.Logger
}

// NewDetectionService создаёт сервис поверх готового детектора.
func NewDetectionService(detector port.FaceDetector, opts Options, log *logger.Logger) *DetectionService {
	return &DetectionService{
		detector: detector,
		opts:     opts,
		log:      log,
	}
}

// DetectFaces ищет лица на уже разобранном изображении.
func (s *DetectionService) DetectFaces(ctx context.Context, img image.Image) ([]entity.BoundingBox, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}
	return s.detector.DetectFaces(ctx, img)
}

// DetectFromEncoded обрабатывает изображение в base64 (с data URL префиксом или без).
// Ошибки не возвращаются наружу, а попадают в поле Error результата.
func (s *DetectionService) DetectFromEncoded(ctx context.Context, text string) (result *entity.DetectionResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Detection panicked", "panic", r)
			result = entity.NewErrorResult(fmt.Sprint(r))
		}
	}()

	boxes, annotated, err := s.process(ctx, text)
	if err != nil {
		s.log.Warn("Detection failed", "error", err, "took", time.Since(start))
		if errors.Is(err, entity.ErrDecode) {
			return entity.NewErrorResult(MsgDecodeFailed)
		}
		return entity.NewErrorResult(err.Error())
	}

	s.log.Info("Detection finished", "faces", len(boxes), "took", time.Since(start))
	return entity.NewDetectionResult(boxes, annotated)
}

func (s *DetectionService) process(ctx context.Context, text string) ([]entity.BoundingBox, string, error) {
	raw, err := render.DecodeBase64(text)
	if err != nil {
		return nil, "", err
	}

	decoded, err := render.DecodeImage(raw, s.opts.MaxImagePixels)
	if err != nil {
		return nil, "", err
	}
	s.log.Debug("Image decoded",
		"format", decoded.Format,
		"mime", decoded.MIME,
		"bytes", decoded.Size,
		"width", decoded.Image.Bounds().Dx(),
		"height", decoded.Image.Bounds().Dy(),
	)

	boxes, err := s.DetectFaces(ctx, decoded.Image)
	if err != nil {
		return nil, "", fmt.Errorf("detect faces: %w", err)
	}

	annotated, err := s.detector.HighlightFaces(decoded.Image, boxes)
	if err != nil {
		return nil, "", fmt.Errorf("highlight faces: %w", err)
	}

	url, err := render.EncodeDataURL(annotated, s.opts.JPEGQuality)
	if err != nil {
		return nil, "", err
	}

	return boxes, url, nil
}
