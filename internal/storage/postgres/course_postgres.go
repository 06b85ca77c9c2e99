package postgres

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// CreateCourse inserts a course with an empty video list. Used for seeding.
func (r *CoursePostgres) CreateCourse(ctx context.Context, title, description string) (*models.Course, error) {
	query := `
		INSERT INTO courses (id, title, description)
		VALUES ($1, $2, $3)
	`
	id := uuid.New()
	if _, err := r.db.Exec(ctx, query, id, title, description); err != nil {
		return nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return &models.Course{
		ID:          id.String(),
		Title:       title,
		Description: description,
		Videos:      []string{},
	}, nil
}

func (r *CoursePostgres) AppendVideo(ctx context.Context, courseID, videoID string) (*models.Course, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}
	vid, err := parseID("video", videoID)
	if err != nil {
		return nil, err
	}

	const query = `
		UPDATE courses
		   SET videos = array_append(videos, $2)
		 WHERE id = $1
	 RETURNING id::text, title, description, videos::text[], extra
	`
	course, err := scanCourse(r.db.QueryRow(ctx, query, cid, vid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to append video to course: %w", err)
	}
	return course, nil
}

func (r *CoursePostgres) CourseWithVideos(ctx context.Context, courseID string) (*models.CourseVideos, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}

	const courseQuery = `
		SELECT id::text, title, description, videos::text[], extra
		  FROM courses
		 WHERE id = $1
	`
	course, err := scanCourse(r.db.QueryRow(ctx, courseQuery, cid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	out := &models.CourseVideos{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Videos:      make([]models.Video, 0, len(course.Videos)),
		Extra:       course.Extra,
	}
	if len(course.Videos) == 0 {
		return out, nil
	}

	const videosQuery = `
		SELECT v.id::text, v.title, v.description, v.link, v.course_id::text,
		       v.teacher, v.teacher_id, v.extra
		  FROM courses c
		 CROSS JOIN LATERAL unnest(c.videos) WITH ORDINALITY AS ref(id, pos)
		  JOIN videos v ON v.id = ref.id
		 WHERE c.id = $1
	  ORDER BY ref.pos
	`
	rows, err := r.db.Query(ctx, videosQuery, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to query course videos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out.Videos = append(out.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read course videos: %w", err)
	}
	return out, nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var (
		course = &models.Course{}
		extra  []byte
	)
	if err := row.Scan(&course.ID, &course.Title, &course.Description, &course.Videos, &extra); err != nil {
		return nil, err
	}
	m, err := decodeExtra(extra)
	if err != nil {
		return nil, fmt.Errorf("failed to decode extra fields of course %s: %w", course.ID, err)
	}
	course.Extra = m
	if course.Videos == nil {
		course.Videos = []string{}
	}
	return course, nil
}
