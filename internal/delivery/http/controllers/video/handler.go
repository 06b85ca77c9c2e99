package video

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/delivery/http/controllers/middleware"
	"LearnStream/internal/models"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Service interface {
	AllVideos(ctx context.Context, user models.ActingUser) ([]models.Video, error)
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	AddVideo(ctx context.Context, user models.ActingUser, courseID string, fields models.VideoFields) (*models.Video, error)
	CourseVideos(ctx context.Context, courseID string) (*models.CourseVideos, error)
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// internalError attaches err to the context for LoggingMiddleware and writes a 500.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	_ = c.Error(err).SetMeta(op)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Something Went Wrong", "error": err.Error()})
}

func (h *Handler) ListVideos(c *gin.Context) {
	user, ok := middleware.ActingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	videos, err := h.service.AllVideos(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, app_errors.ErrNoAccessViewVideos) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.internalError(c, "ListVideos", err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) VideoByID(c *gin.Context) {
	videoID := c.Param("video_id")

	video, err := h.service.VideoByID(c.Request.Context(), videoID)
	if err != nil {
		if errors.Is(err, app_errors.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		h.internalError(c, "VideoByID", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

func (h *Handler) AddVideo(c *gin.Context) {
	user, ok := middleware.ActingUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	courseID := c.Param("course_id")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, err := h.service.AddVideo(c.Request.Context(), user, courseID, models.VideoFieldsFromMap(body))
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrNoAccessAddVideo):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrTitleLinkRequired), errors.Is(err, app_errors.ErrVideoExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err).SetMeta("AddVideo")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong", "error": "Internal Server Error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Video added", "video": video})
}

func (h *Handler) CourseVideos(c *gin.Context) {
	courseID := c.Param("course_id")

	course, err := h.service.CourseVideos(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		h.internalError(c, "CourseVideos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course})
}
