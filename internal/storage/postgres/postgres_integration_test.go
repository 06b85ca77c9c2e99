package postgres

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skip postgres integration test in short mode")
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "learnstream",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return ConnString("postgres", "postgres", host, port.Port(), "learnstream", "disable")
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("skip postgres integration test: cannot start container: %v", err)
	}
	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(termCtx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return ConnString("postgres", "postgres", host, port.Port(), "learnstream", "disable")
}

func applyMigrations(ctx context.Context, t *testing.T, s *Storage) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join("..", "..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	sort.Strings(entries)

	for _, path := range entries {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		_, err = s.Pool.Exec(ctx, string(content))
		require.NoError(t, err, fmt.Sprintf("apply %s", filepath.Base(path)))
	}
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	dsn := startPostgres(ctx, t)

	s, err := NewPostgresPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	applyMigrations(ctx, t, s)

	videos := NewVideoPostgres(s.Pool)
	courses := NewCoursePostgres(s.Pool)

	course, err := courses.CreateCourse(ctx, "Go", "concurrency")
	require.NoError(t, err)

	t.Run("empty course", func(t *testing.T) {
		got, err := courses.CourseWithVideos(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go", got.Title)
		assert.NotNil(t, got.Videos)
		assert.Empty(t, got.Videos)
	})

	first := &models.Video{
		Title:     "Goroutines",
		Link:      "http://x/1",
		CourseID:  course.ID,
		Teacher:   "alice",
		TeacherID: "u1",
		Extra:     map[string]any{"level": "easy"},
	}
	second := &models.Video{Title: "Channels", Link: "http://x/2", CourseID: course.ID}

	t.Run("create and append", func(t *testing.T) {
		require.NoError(t, videos.CreateVideo(ctx, first))
		require.NoError(t, videos.CreateVideo(ctx, second))
		require.NotEmpty(t, first.ID)

		_, err := courses.AppendVideo(ctx, course.ID, second.ID)
		require.NoError(t, err)
		updated, err := courses.AppendVideo(ctx, course.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{second.ID, first.ID}, updated.Videos)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := videos.VideoByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, *first, *got)

		got, err = videos.VideoByTitleAndLink(ctx, "Channels", "http://x/2")
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		_, err = videos.VideoByTitleAndLink(ctx, "Channels", "http://x/other")
		assert.ErrorIs(t, err, app_errors.ErrVideoNotFound)

		_, err = videos.VideoByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, app_errors.ErrVideoNotFound)

		_, err = videos.VideoByID(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.NotErrorIs(t, err, app_errors.ErrVideoNotFound)

		all, err := videos.AllVideos(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("course videos in reference order", func(t *testing.T) {
		got, err := courses.CourseWithVideos(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, got.Videos, 2)
		assert.Equal(t, second.ID, got.Videos[0].ID)
		assert.Equal(t, first.ID, got.Videos[1].ID)
	})

	t.Run("course fields owned elsewhere", func(t *testing.T) {
		_, err := s.Pool.Exec(ctx, `UPDATE courses SET extra = '{"teacher": "alice", "price": 10}' WHERE id = $1`, course.ID)
		require.NoError(t, err)

		got, err := courses.CourseWithVideos(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"teacher": "alice", "price": float64(10)}, got.Extra)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := courses.AppendVideo(ctx, uuid.NewString(), first.ID)
		assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)

		_, err = courses.CourseWithVideos(ctx, uuid.NewString())
		assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	})

	t.Run("unique index maps to duplicate", func(t *testing.T) {
		_, err := s.Pool.Exec(ctx, `CREATE UNIQUE INDEX videos_title_link_uniq ON videos (title, link)`)
		require.NoError(t, err)

		err = videos.CreateVideo(ctx, &models.Video{Title: "Goroutines", Link: "http://x/1", CourseID: course.ID})
		assert.ErrorIs(t, err, app_errors.ErrVideoExists)
	})
}

func TestConnString(t *testing.T) {
	assert.Equal(t,
		"postgres://user:p%40ss@db:5432/learn?sslmode=disable",
		ConnString("user", "p@ss", "db", "5432", "learn", "disable"))
	assert.Equal(t, "postgres://user:pw@db:5432/learn", ConnString("user", "pw", "db", "5432", "learn", ""))
}
