//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"face-detector/internal/domain/entity"
	"face-detector/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// DefaultThickness толщина рамки в пикселях.
const DefaultThickness = 2

// Green цвет рамки по умолчанию.
var Green = color.RGBA{G: 255, A: 255}

// CascadeDetector заглушка детектора (без OpenCV).
type CascadeDetector struct{}

// NewCascadeDetector возвращает ошибку, если сборка без тега gocv.
func NewCascadeDetector(path string, params entity.DetectionParameters) (*CascadeDetector, error) {
	_ = path
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", entity.ErrInitialization, errNoGoCV)
}

// DetectFaces возвращает ошибку, если сборка без тега gocv.
func (d *CascadeDetector) DetectFaces(ctx context.Context, img image.Image) ([]entity.BoundingBox, error) {
	_ = ctx
	_ = img
	return nil, errNoGoCV
}

// HighlightFaces возвращает ошибку, если сборка без тега gocv.
func (d *CascadeDetector) HighlightFaces(img image.Image, boxes []entity.BoundingBox) (image.Image, error) {
	return DrawBoxes(img, boxes, Green, DefaultThickness)
}

// DrawBoxes возвращает ошибку, если сборка без тега gocv.
func DrawBoxes(img image.Image, boxes []entity.BoundingBox, c color.RGBA, thickness int) (image.Image, error) {
	_ = img
	_ = boxes
	_ = c
	_ = thickness
	return nil, errNoGoCV
}

// Close ничего не делает.
func (d *CascadeDetector) Close() error {
	return nil
}

var _ port.FaceDetector = (*CascadeDetector)(nil)
