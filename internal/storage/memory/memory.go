package memory

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// Storage keeps courses and videos in process memory. Ids are uuids, and
// lookups with a malformed id fail the same way the database drivers do.
type Storage struct {
	mu      sync.RWMutex
	videos  []models.Video
	byID    map[uuid.UUID]int
	courses map[uuid.UUID]*models.Course
}

func New() *Storage {
	return &Storage{
		byID:    make(map[uuid.UUID]int),
		courses: make(map[uuid.UUID]*models.Course),
	}
}

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", kind, id, err)
	}
	return parsed, nil
}

func cloneVideo(v models.Video) models.Video {
	v.Extra = maps.Clone(v.Extra)
	return v
}

func (s *Storage) AllVideos(_ context.Context) ([]models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		videos = append(videos, cloneVideo(v))
	}
	return videos, nil
}

func (s *Storage) VideoByID(_ context.Context, id string) (*models.Video, error) {
	vid, err := parseID("video", id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[vid]
	if !ok {
		return nil, app_errors.ErrVideoNotFound
	}
	v := cloneVideo(s.videos[idx])
	return &v, nil
}

func (s *Storage) VideoByTitleAndLink(_ context.Context, title, link string) (*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.videos {
		if v.Title == title && v.Link == link {
			found := cloneVideo(v)
			return &found, nil
		}
	}
	return nil, app_errors.ErrVideoNotFound
}

func (s *Storage) CreateVideo(_ context.Context, video *models.Video) error {
	if _, err := parseID("course", video.CourseID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	video.ID = id.String()
	s.byID[id] = len(s.videos)
	s.videos = append(s.videos, cloneVideo(*video))
	return nil
}

// CreateCourse registers a course. It exists for seeding; courses are
// otherwise managed outside this service.
func (s *Storage) CreateCourse(_ context.Context, title, description string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	course := &models.Course{
		ID:          id.String(),
		Title:       title,
		Description: description,
		Videos:      []string{},
	}
	s.courses[id] = course
	out := *course
	return &out, nil
}

func (s *Storage) AppendVideo(_ context.Context, courseID, videoID string) (*models.Course, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[cid]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	course.Videos = append(course.Videos, videoID)

	out := *course
	out.Videos = append([]string(nil), course.Videos...)
	return &out, nil
}

func (s *Storage) CourseWithVideos(_ context.Context, courseID string) (*models.CourseVideos, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[cid]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}

	out := &models.CourseVideos{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Videos:      make([]models.Video, 0, len(course.Videos)),
	}
	for _, ref := range course.Videos {
		vid, err := uuid.Parse(ref)
		if err != nil {
			continue
		}
		if idx, ok := s.byID[vid]; ok {
			out.Videos = append(out.Videos, cloneVideo(s.videos[idx]))
		}
	}
	return out, nil
}
