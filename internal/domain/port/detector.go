package port

import (
	"context"
	"image"

	"face-detector/internal/domain/entity"
)

// FaceDetector интерфейс детектора лиц
type FaceDetector interface {
	// DetectFaces ищет лица на изображении и возвращает их рамки
	DetectFaces(ctx context.Context, img image.Image) ([]entity.BoundingBox, error)

	// HighlightFaces возвращает копию изображения с рамками вокруг лиц
	HighlightFaces(img image.Image, boxes []entity.BoundingBox) (image.Image, error)
}
