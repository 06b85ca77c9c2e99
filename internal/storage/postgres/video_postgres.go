package postgres

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `id::text, title, description, link, course_id::text, teacher, teacher_id, extra`

type VideoPostgres struct {
	db *pgxpool.Pool
}

func NewVideoPostgres(db *pgxpool.Pool) *VideoPostgres {
	return &VideoPostgres{db: db}
}

func parseID(kind, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", kind, id, err)
	}
	return parsed, nil
}

func scanVideo(row pgx.Row) (models.Video, error) {
	var (
		v     models.Video
		extra []byte
	)
	if err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Link, &v.CourseID, &v.Teacher, &v.TeacherID, &extra); err != nil {
		return models.Video{}, err
	}
	m, err := decodeExtra(extra)
	if err != nil {
		return models.Video{}, fmt.Errorf("failed to decode extra fields of video %s: %w", v.ID, err)
	}
	v.Extra = m
	return v, nil
}

// decodeExtra returns nil for an empty or missing jsonb object.
func decodeExtra(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

func (r *VideoPostgres) AllVideos(ctx context.Context) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}

func (r *VideoPostgres) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	vid, err := parseID("video", id)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	return r.queryOne(ctx, query, vid)
}

func (r *VideoPostgres) VideoByTitleAndLink(ctx context.Context, title, link string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE title = $1 AND link = $2 LIMIT 1`
	return r.queryOne(ctx, query, title, link)
}

func (r *VideoPostgres) queryOne(ctx context.Context, query string, args ...any) (*models.Video, error) {
	v, err := scanVideo(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to query video: %w", err)
	}
	return &v, nil
}

func (r *VideoPostgres) CreateVideo(ctx context.Context, video *models.Video) error {
	courseID, err := parseID("course", video.CourseID)
	if err != nil {
		return err
	}
	extra := video.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	encoded, err := json.Marshal(extra)
	if err != nil {
		return fmt.Errorf("failed to encode extra fields: %w", err)
	}

	query := `
		INSERT INTO videos (
			id, title, description, link,
			course_id, teacher, teacher_id, extra
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
	`
	id := uuid.New()
	_, err = r.db.Exec(ctx, query,
		id, video.Title, video.Description, video.Link,
		courseID, video.Teacher, video.TeacherID, string(encoded),
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == uniqueViolation {
			return app_errors.ErrVideoExists
		}
		return fmt.Errorf("failed to insert video: %w", err)
	}
	video.ID = id.String()
	return nil
}
