package entity

import "image"

// Size задаёт ширину и высоту в пикселях.
type Size struct {
	Width  int
	Height int
}

// Point переводит размер в image.Point для gocv.
func (s Size) Point() image.Point {
	return image.Pt(s.Width, s.Height)
}

// BoundingBox описывает прямоугольник с найденным лицом
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Rect возвращает прямоугольник в координатах image.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Tuple возвращает координаты в виде [x, y, w, h].
func (b BoundingBox) Tuple() [4]int {
	return [4]int{b.X, b.Y, b.Width, b.Height}
}

// BoxFromRect строит BoundingBox из image.Rectangle.
func BoxFromRect(r image.Rectangle) BoundingBox {
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// DetectionResult хранит итог обработки одного запроса.
// Если Error не пустой, остальные поля не заполняются.
type DetectionResult struct {
	Success        bool          // флаг успешной обработки
	FaceCount      int           // количество найденных лиц
	Boxes          []BoundingBox // найденные лица
	AnnotatedImage string        // data URL с JPEG и рамками
	Error          string        // текст ошибки
}

// NewDetectionResult собирает успешный результат.
func NewDetectionResult(boxes []BoundingBox, annotated string) *DetectionResult {
	if boxes == nil {
		boxes = []BoundingBox{}
	}
	return &DetectionResult{
		Success:        true,
		FaceCount:      len(boxes),
		Boxes:          boxes,
		AnnotatedImage: annotated,
	}
}

// NewErrorResult собирает результат с ошибкой.
func NewErrorResult(message string) *DetectionResult {
	return &DetectionResult{Error: message}
}

// Failed сообщает, завершилась ли обработка ошибкой.
func (r *DetectionResult) Failed() bool {
	return r.Error != ""
}
