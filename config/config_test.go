package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"face-detector/internal/domain/entity"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "MODEL_DIR", "CASCADE_PATH", "MODEL_URL", "MODEL_FETCH_TIMEOUT",
		"SCALE_FACTOR", "MIN_NEIGHBORS", "MIN_SIZE", "JPEG_QUALITY", "MAX_IMAGE_PIXELS", "MAX_BODY_BYTES",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5001", cfg.Addr())
	require.Equal(t, DefaultModelURL, cfg.ModelURL)
	require.Equal(t, filepath.Join("models", DefaultModelFile), filepath.Clean(cfg.DefaultModelPath()))
	require.Equal(t, entity.DefaultDetectionParameters(), cfg.Detection)
	require.Equal(t, 95, cfg.JPEGQuality)
	require.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	require.Equal(t, 1<<26, cfg.MaxImagePixels)
	require.Equal(t, 60*time.Second, cfg.ModelFetchTimeout)
	require.Empty(t, cfg.CascadePath)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CASCADE_PATH", "/tmp/cascade.xml")
	t.Setenv("SCALE_FACTOR", "1.3")
	t.Setenv("MIN_NEIGHBORS", "3")
	t.Setenv("MIN_SIZE", "40X24")
	t.Setenv("MODEL_FETCH_TIMEOUT", "5s")
	t.Setenv("MAX_IMAGE_PIXELS", "1000000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "/tmp/cascade.xml", cfg.CascadePath)
	require.Equal(t, 1.3, cfg.Detection.ScaleFactor)
	require.Equal(t, 3, cfg.Detection.MinNeighbors)
	require.Equal(t, entity.Size{Width: 40, Height: 24}, cfg.Detection.MinSize)
	require.Equal(t, 5*time.Second, cfg.ModelFetchTimeout)
	require.Equal(t, 1000000, cfg.MaxImagePixels)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"SCALE_FACTOR":        "fast",
		"MIN_NEIGHBORS":       "five",
		"MIN_SIZE":            "30",
		"JPEG_QUALITY":        "101",
		"MODEL_FETCH_TIMEOUT": "soon",
		"MAX_BODY_BYTES":      "0",
		"MAX_IMAGE_PIXELS":    "-1",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)

			_, err := Load()
			require.Error(t, err)
		})
	}
}
