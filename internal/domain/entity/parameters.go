package entity

import "fmt"

// DetectionParameters параметры каскадного классификатора.
// Задаются один раз при создании детектора.
type DetectionParameters struct {
	ScaleFactor  float64 // во сколько раз уменьшается изображение на каждом шаге
	MinNeighbors int     // сколько соседей должно быть у кандидата
	MinSize      Size    // объекты меньше этого размера игнорируются
}

// DefaultDetectionParameters возвращает параметры по умолчанию.
func DefaultDetectionParameters() DetectionParameters {
	return DetectionParameters{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      Size{Width: 30, Height: 30},
	}
}

// Validate проверяет допустимость параметров.
func (p DetectionParameters) Validate() error {
	if p.ScaleFactor <= 1.0 {
		return fmt.Errorf("%w: scale factor must be greater than 1.0, got %v", ErrInitialization, p.ScaleFactor)
	}
	if p.MinNeighbors < 0 {
		return fmt.Errorf("%w: min neighbors must be non-negative, got %d", ErrInitialization, p.MinNeighbors)
	}
	if p.MinSize.Width < 0 || p.MinSize.Height < 0 {
		return fmt.Errorf("%w: min size must be non-negative, got %dx%d", ErrInitialization, p.MinSize.Width, p.MinSize.Height)
	}
	return nil
}
