package container

import (
	"context"
	"fmt"

	"face-detector/config"
	app "face-detector/internal/application"
	"face-detector/internal/domain/port"
	"face-detector/internal/infrastructure/storage"
	"face-detector/internal/infrastructure/vision"
	"face-detector/internal/logger"
)

type Container struct {
	DetectionService *app.DetectionService

	closers []func() error
}

// New собирает сервисы вокруг уже готового детектора.
func New(detector port.FaceDetector, cfg *config.Config, log *logger.Logger) *Container {
	return &Container{
		DetectionService: app.NewDetectionService(detector, app.Options{
			JPEGQuality:    cfg.JPEGQuality,
			MaxImagePixels: cfg.MaxImagePixels,
		}, log),
	}
}

// Build скачивает модель при необходимости, загружает каскад и собирает сервисы.
// Ошибка здесь означает, что сервис не может стартовать.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	models := storage.NewModelCache(cfg.ModelURL, cfg.DefaultModelPath(), cfg.ModelFetchTimeout, log)

	cascadePath, err := models.Resolve(ctx, cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("provision model: %w", err)
	}

	detector, err := vision.NewCascadeDetector(cascadePath, cfg.Detection)
	if err != nil {
		return nil, fmt.Errorf("load detector: %w", err)
	}
	log.Info("Face detector initialized",
		"cascade", cascadePath,
		"scale_factor", cfg.Detection.ScaleFactor,
		"min_neighbors", cfg.Detection.MinNeighbors,
		"min_size", fmt.Sprintf("%dx%d", cfg.Detection.MinSize.Width, cfg.Detection.MinSize.Height),
	)

	c := New(detector, cfg, log)
	c.closers = append(c.closers, detector.Close)
	return c, nil
}

// Close освобождает ресурсы детектора.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
