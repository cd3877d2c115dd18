package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"face-detector/internal/domain/entity"
)

// DefaultModelURL откуда скачивается каскад, если локального файла нет.
const DefaultModelURL = "https://raw.githubusercontent.com/opencv/opencv/master/data/haarcascades/haarcascade_frontalface_default.xml"

// DefaultModelFile имя файла каскада в каталоге моделей.
const DefaultModelFile = "haarcascade_frontalface_default.xml"

type Config struct {
	Host string
	Port string

	ModelDir          string        // каталог кэша модели
	CascadePath       string        // явный путь к каскаду, скачивание не выполняется
	ModelURL          string        // запасной адрес для скачивания
	ModelFetchTimeout time.Duration // таймаут скачивания модели

	Detection      entity.DetectionParameters
	JPEGQuality    int
	MaxImagePixels int // изображения большей площади не декодируются
	MaxBodyBytes   int64

	LogLevel  string
	LogFormat string
}

// Addr адрес для http.Server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DefaultModelPath путь к каскаду в кэше.
func (c *Config) DefaultModelPath() string {
	return filepath.Join(c.ModelDir, DefaultModelFile)
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	defaults := entity.DefaultDetectionParameters()

	cfg := &Config{
		Host:        os.Getenv("HOST"),
		Port:        getEnv("PORT", "5001"),
		ModelDir:    getEnv("MODEL_DIR", "./models"),
		CascadePath: os.Getenv("CASCADE_PATH"),
		ModelURL:    getEnv("MODEL_URL", DefaultModelURL),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}

	var err error
	if cfg.ModelFetchTimeout, err = getDuration("MODEL_FETCH_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.Detection.ScaleFactor, err = getFloat("SCALE_FACTOR", defaults.ScaleFactor); err != nil {
		return nil, err
	}
	if cfg.Detection.MinNeighbors, err = getInt("MIN_NEIGHBORS", defaults.MinNeighbors); err != nil {
		return nil, err
	}
	if cfg.Detection.MinSize, err = getSize("MIN_SIZE", defaults.MinSize); err != nil {
		return nil, err
	}
	if cfg.JPEGQuality, err = getInt("JPEG_QUALITY", 95); err != nil {
		return nil, err
	}
	if cfg.MaxImagePixels, err = getInt("MAX_IMAGE_PIXELS", 1<<26); err != nil {
		return nil, err
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("JPEG_QUALITY must be in [1, 100], got %d", cfg.JPEGQuality)
	}
	if cfg.MaxImagePixels <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_PIXELS must be positive, got %d", cfg.MaxImagePixels)
	}
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getSize разбирает значение вида 30x30.
func getSize(key string, defaultVal entity.Size) (entity.Size, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(val), "x")
	if !ok {
		return entity.Size{}, fmt.Errorf("invalid %s: expected WIDTHxHEIGHT, got %q", key, val)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return entity.Size{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return entity.Size{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return entity.Size{Width: width, Height: height}, nil
}
