package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"face-detector/internal/domain/entity"
)

const (
	msgNoImage     = "No image data provided"
	msgInvalidJSON = "Invalid JSON body"
	msgTooLarge    = "Request body too large"
)

// detectRequest тело POST /api/detect-face
type detectRequest struct {
	Image *string `json:"image"`
}

// detectResponse успешный ответ
type detectResponse struct {
	Success       bool     `json:"success"`
	FacesDetected int      `json:"faces_detected"`
	Faces         [][4]int `json:"faces"`
	ResultImage   string   `json:"result_image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newDetectResponse(r *entity.DetectionResult) detectResponse {
	faces := make([][4]int, 0, len(r.Boxes))
	for _, b := range r.Boxes {
		faces = append(faces, b.Tuple())
	}
	return detectResponse{
		Success:       true,
		FacesDetected: r.FaceCount,
		Faces:         faces,
		ResultImage:   r.AnnotatedImage,
	}
}

// handleDetectFace обрабатывает POST /api/detect-face
func (s *Server) handleDetectFace(c *gin.Context) {
	if s.opts.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes)
	}

	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: msgTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidJSON})
		return
	}

	if req.Image == nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgNoImage})
		return
	}

	result := s.detection.DetectFromEncoded(c.Request.Context(), *req.Image)
	if result.Failed() {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: result.Error})
		return
	}

	c.JSON(http.StatusOK, newDetectResponse(result))
}

// handleHealth проверка здоровья сервиса
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
