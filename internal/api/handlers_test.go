package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "face-detector/internal/application"
	"face-detector/internal/domain/entity"
	"face-detector/internal/logger"
)

// stubDetector всегда возвращает одни и те же рамки
type stubDetector struct {
	boxes []entity.BoundingBox
	calls int
}

func (s *stubDetector) DetectFaces(ctx context.Context, img image.Image) ([]entity.BoundingBox, error) {
	s.calls++
	return s.boxes, nil
}

func (s *stubDetector) HighlightFaces(img image.Image, boxes []entity.BoundingBox) (image.Image, error) {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

func setupTestServer(t *testing.T, det *stubDetector, maxBody int64) *Server {
	t.Helper()
	log := logger.NewNopLogger()
	svc := app.NewDetectionService(det, app.Options{JPEGQuality: 90, MaxImagePixels: 1 << 20}, log)
	return NewServer(Options{Addr: ":0", MaxBodyBytes: maxBody}, svc, log)
}

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postJSON(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/detect-face", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleDetectFace_Success(t *testing.T) {
	det := &stubDetector{boxes: []entity.BoundingBox{{X: 5, Y: 6, Width: 20, Height: 22}}}
	srv := setupTestServer(t, det, 1<<20)

	body, err := json.Marshal(map[string]string{"image": "data:image/png;base64," + pngBase64(t, 64, 40)})
	require.NoError(t, err)

	w := postJSON(t, srv, string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success       bool    `json:"success"`
		FacesDetected int     `json:"faces_detected"`
		Faces         [][]int `json:"faces"`
		ResultImage   string  `json:"result_image"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.FacesDetected)
	assert.Equal(t, [][]int{{5, 6, 20, 22}}, resp.Faces)

	require.True(t, strings.HasPrefix(resp.ResultImage, "data:image/jpeg;base64,"))
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(resp.ResultImage, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}

func TestHandleDetectFace_NoFacesReturnsEmptyArray(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	w := postJSON(t, srv, `{"image":"`+pngBase64(t, 16, 16)+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["faces"]))
	assert.JSONEq(t, `0`, string(raw["faces_detected"]))
	assert.JSONEq(t, `true`, string(raw["success"]))
}

func TestHandleDetectFace_MissingImage(t *testing.T) {
	det := &stubDetector{}
	srv := setupTestServer(t, det, 1<<20)

	for _, body := range []string{`{}`, `{"other":"x"}`, `{"image":null}`} {
		w := postJSON(t, srv, body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"No image data provided"}`, w.Body.String())
	}
	assert.Zero(t, det.calls)
}

func TestHandleDetectFace_InvalidJSON(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	w := postJSON(t, srv, `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, w.Body.String())
}

func TestHandleDetectFace_BodyTooLarge(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 64)

	w := postJSON(t, srv, `{"image":"`+strings.Repeat("A", 256)+`"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}

func TestHandleDetectFace_MalformedBase64(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	w := postJSON(t, srv, `{"image":"not-base64!!"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestHandleDetectFace_UndecodableImage(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	payload := base64.StdEncoding.EncodeToString([]byte("hello"))
	w := postJSON(t, srv, `{"image":"`+payload+`"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Could not decode image"}`, w.Body.String())
}

func TestHandleHealth(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	req := httptest.NewRequest(http.MethodOptions, "/api/detect-face", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	srv := setupTestServer(t, &stubDetector{}, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "client-id")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "client-id", w.Header().Get("X-Request-ID"))
}
