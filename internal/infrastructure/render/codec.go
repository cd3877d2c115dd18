package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"face-detector/internal/domain/entity"
)

const (
	// DataURLPrefix префикс, с которым возвращается размеченное изображение.
	DataURLPrefix = "data:image/jpeg;base64,"

	// DefaultJPEGQuality совпадает с качеством JPEG по умолчанию в OpenCV.
	DefaultJPEGQuality = 95

	// DefaultMaxImagePixels предел площади изображения (64 мегапикселя).
	DefaultMaxImagePixels = 1 << 26
)

// Decoded содержит разобранное изображение и сведения о его контейнере.
type Decoded struct {
	Image  image.Image
	Format string // имя кодека, которым разобрано изображение
	MIME   string // тип, определённый по сигнатуре
	Size   int    // размер исходных байтов
}

// StripDataURL отрезает префикс вида data:*;base64, если он есть.
func StripDataURL(text string) string {
	if i := strings.IndexByte(text, ','); i >= 0 {
		return text[i+1:]
	}
	return text
}

// DecodeBase64 декодирует base64 строку в байты, предварительно убрав data URL префикс.
func DecodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(StripDataURL(text))
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// DecodeImage разбирает байты любым зарегистрированным кодеком и поворачивает
// изображение по EXIF Orientation. Размер проверяется по заголовку до выделения
// памяти под пиксели: изображения больше maxPixels не декодируются.
func DecodeImage(data []byte, maxPixels int) (*Decoded, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", entity.ErrDecode, cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: image %dx%d exceeds %d pixels", entity.ErrDecode, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	return &Decoded{
		Image:  img,
		Format: format,
		MIME:   mimetype.Detect(data).String(),
		Size:   len(data),
	}, nil
}

// EncodeJPEG кодирует изображение в JPEG.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL кодирует изображение в JPEG и заворачивает в data URL.
func EncodeDataURL(img image.Image, quality int) (string, error) {
	data, err := EncodeJPEG(img, quality)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}
