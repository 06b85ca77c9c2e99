package video

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"LearnStream/pkg/logger"
	"context"
	"errors"
	"fmt"
)

type VideoRepo interface {
	AllVideos(ctx context.Context) ([]models.Video, error)
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	VideoByTitleAndLink(ctx context.Context, title, link string) (*models.Video, error)
	CreateVideo(ctx context.Context, video *models.Video) error
}

type CourseRepo interface {
	// AppendVideo atomically pushes videoID onto the course's video list
	// and returns the updated course.
	AppendVideo(ctx context.Context, courseID, videoID string) (*models.Course, error)
	CourseWithVideos(ctx context.Context, courseID string) (*models.CourseVideos, error)
}

type VideoService struct {
	log        logger.Log
	videoRepo  VideoRepo
	courseRepo CourseRepo
}

func NewVideoService(log logger.Log, v VideoRepo, c CourseRepo) *VideoService {
	return &VideoService{
		log:        log,
		videoRepo:  v,
		courseRepo: c,
	}
}

func (s *VideoService) AllVideos(ctx context.Context, user models.ActingUser) ([]models.Video, error) {
	if !user.CanViewAllVideos() {
		return nil, app_errors.ErrNoAccessViewVideos
	}
	videos, err := s.videoRepo.AllVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}

func (s *VideoService) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	return s.videoRepo.VideoByID(ctx, id)
}

// AddVideo creates a video and appends it to the course. The video is
// persisted before the course lookup, so an unknown course leaves it orphaned.
func (s *VideoService) AddVideo(ctx context.Context, user models.ActingUser, courseID string, fields models.VideoFields) (*models.Video, error) {
	if !user.CanAddVideo() {
		return nil, app_errors.ErrNoAccessAddVideo
	}
	if !fields.Valid() {
		return nil, app_errors.ErrTitleLinkRequired
	}

	_, err := s.videoRepo.VideoByTitleAndLink(ctx, fields.Title, fields.Link)
	switch {
	case err == nil:
		return nil, app_errors.ErrVideoExists
	case !errors.Is(err, app_errors.ErrVideoNotFound):
		return nil, fmt.Errorf("duplicate check: %w", err)
	}

	video := &models.Video{
		Title:       fields.Title,
		Description: fields.Description,
		Link:        fields.Link,
		CourseID:    courseID,
		Teacher:     user.Username,
		TeacherID:   user.ID,
		Extra:       fields.Extra,
	}
	if err := s.videoRepo.CreateVideo(ctx, video); err != nil {
		if errors.Is(err, app_errors.ErrVideoExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create video: %w", err)
	}

	if _, err := s.courseRepo.AppendVideo(ctx, courseID, video.ID); err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			s.log.Warn("video stored without course", "video_id", video.ID, "course_id", courseID)
			return nil, err
		}
		return nil, fmt.Errorf("append video to course: %w", err)
	}

	return video, nil
}

func (s *VideoService) CourseVideos(ctx context.Context, courseID string) (*models.CourseVideos, error) {
	course, err := s.courseRepo.CourseWithVideos(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Videos == nil {
		course.Videos = []models.Video{}
	}
	return course, nil
}
