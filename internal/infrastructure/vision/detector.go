//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"face-detector/internal/domain/entity"
	"face-detector/internal/domain/port"
)

// DefaultThickness толщина рамки в пикселях.
const DefaultThickness = 2

// Green цвет рамки по умолчанию.
var Green = color.RGBA{G: 255, A: 255}

// CascadeDetector ищет лица каскадом Хаара через OpenCV.
// После создания только читается, поэтому его можно делить между запросами.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	params     entity.DetectionParameters
}

// NewCascadeDetector загружает каскад из path.
func NewCascadeDetector(path string, params entity.DetectionParameters) (*CascadeDetector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: error loading cascade classifier from %s", entity.ErrInitialization, path)
	}

	return &CascadeDetector{
		classifier: classifier,
		params:     params,
	}, nil
}

// DetectFaces ищет лица на изображении. Порядок рамок не гарантируется.
func (d *CascadeDetector) DetectFaces(ctx context.Context, img image.Image) ([]entity.BoundingBox, error) {
	_ = ctx

	gray, err := toGrayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		0,
		d.params.MinSize.Point(),
		image.Point{},
	)

	boxes := make([]entity.BoundingBox, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, entity.BoxFromRect(r))
	}
	return boxes, nil
}

// HighlightFaces рисует зелёные рамки толщиной 2 пикселя на копии изображения.
func (d *CascadeDetector) HighlightFaces(img image.Image, boxes []entity.BoundingBox) (image.Image, error) {
	return DrawBoxes(img, boxes, Green, DefaultThickness)
}

// Close освобождает классификатор.
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}

// DrawBoxes рисует рамки на копии изображения и возвращает её. Исходное изображение не меняется.
func DrawBoxes(img image.Image, boxes []entity.BoundingBox, c color.RGBA, thickness int) (image.Image, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}

	annotated := DrawBoxesMat(mat, boxes, c, thickness)
	defer annotated.Close()

	return annotated.ToImage()
}

// DrawBoxesMat рисует рамки на клоне mat. Закрыть результат должен вызывающий.
func DrawBoxesMat(mat gocv.Mat, boxes []entity.BoundingBox, c color.RGBA, thickness int) gocv.Mat {
	out := mat.Clone()
	if thickness <= 0 {
		thickness = 1
	}
	for _, box := range boxes {
		gocv.Rectangle(&out, box.Rect(), c, thickness)
	}
	return out
}

// toGrayMat переводит изображение в одноканальный gocv.Mat.
// Серое изображение передаётся как есть, цветное конвертируется из BGR.
func toGrayMat(img image.Image) (gocv.Mat, error) {
	if g, ok := img.(*image.Gray); ok {
		mat, err := gocv.ImageGrayToMatGray(g)
		if err != nil {
			return gocv.NewMat(), fmt.Errorf("convert gray image: %w", err)
		}
		return mat, nil
	}

	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image: %w", err)
	}
	defer bgr.Close()

	if bgr.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: empty image", entity.ErrDecode)
	}

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// Проверка реализации интерфейса
var _ port.FaceDetector = (*CascadeDetector)(nil)
