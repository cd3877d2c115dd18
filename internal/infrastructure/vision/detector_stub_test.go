//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"face-detector/internal/domain/entity"
)

func TestNewCascadeDetector_WithoutGoCV(t *testing.T) {
	d, err := NewCascadeDetector("whatever.xml", entity.DefaultDetectionParameters())
	require.Nil(t, d)
	require.ErrorIs(t, err, entity.ErrInitialization)
	require.ErrorContains(t, err, "gocv build tag is not enabled")
}

func TestNewCascadeDetector_ValidatesParams(t *testing.T) {
	_, err := NewCascadeDetector("whatever.xml", entity.DetectionParameters{ScaleFactor: 0.5})
	require.ErrorIs(t, err, entity.ErrInitialization)
	require.ErrorContains(t, err, "scale factor")
}

func TestDrawBoxes_WithoutGoCV(t *testing.T) {
	img, err := DrawBoxes(image.NewRGBA(image.Rect(0, 0, 4, 4)), nil, Green, DefaultThickness)
	require.Nil(t, img)
	require.ErrorContains(t, err, "gocv build tag is not enabled")
}
