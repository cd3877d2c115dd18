package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"face-detector/internal/domain/entity"
	"face-detector/internal/logger"
)

// ModelCache хранит файл каскада на диске и скачивает его при первом обращении
type ModelCache struct {
	url         string
	defaultPath string
	client      *http.Client
	log         *logger.Logger
}

// NewModelCache создаёт кэш модели.
// url — запасной адрес, defaultPath — куда класть модель, если путь не задан явно.
func NewModelCache(url, defaultPath string, timeout time.Duration, log *logger.Logger) *ModelCache {
	return &ModelCache{
		url:         url,
		defaultPath: defaultPath,
		client:      &http.Client{Timeout: timeout},
		log:         log,
	}
}

// DefaultPath путь к модели в кэше
func (c *ModelCache) DefaultPath() string {
	return c.defaultPath
}

// Resolve возвращает явный путь без изменений, иначе гарантирует наличие модели по пути по умолчанию
func (c *ModelCache) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return c.Ensure(ctx, c.defaultPath)
}

// Ensure скачивает модель в path, если файла там ещё нет
func (c *ModelCache) Ensure(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: stat %s: %v", entity.ErrModelFetch, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create model dir: %v", entity.ErrModelFetch, err)
	}

	c.log.Info("Downloading face detection model", "url", c.url, "path", path)
	start := time.Now()

	n, err := c.download(ctx, path)
	if err != nil {
		return "", err
	}

	c.log.Info("Model downloaded", "path", path, "bytes", n, "took", time.Since(start))
	return path, nil
}

// download пишет тело ответа во временный файл и атомарно переименовывает его в path
func (c *ModelCache) download(ctx context.Context, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: create request: %v", entity.ErrModelFetch, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: download model: %v", entity.ErrModelFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: download model: unexpected status %d", entity.ErrModelFetch, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file: %v", entity.ErrModelFetch, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // после успешного Rename файла уже нет

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("%w: write model: %v", entity.ErrModelFetch, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("%w: sync model: %v", entity.ErrModelFetch, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: close model: %v", entity.ErrModelFetch, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("%w: rename model: %v", entity.ErrModelFetch, err)
	}

	return n, nil
}
