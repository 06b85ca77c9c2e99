package video

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/delivery/http/controllers/middleware"
	"LearnStream/internal/models"
	"LearnStream/pkg/logger"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	err       error
	gotFields models.VideoFields
	gotCourse string
}

func (f *fakeService) AllVideos(context.Context, models.ActingUser) ([]models.Video, error) {
	return nil, f.err
}

func (f *fakeService) VideoByID(context.Context, string) (*models.Video, error) {
	return nil, f.err
}

func (f *fakeService) AddVideo(_ context.Context, _ models.ActingUser, courseID string, fields models.VideoFields) (*models.Video, error) {
	f.gotCourse = courseID
	f.gotFields = fields
	if f.err != nil {
		return nil, f.err
	}
	return &models.Video{ID: "v1", Title: fields.Title, Link: fields.Link, CourseID: courseID}, nil
}

func (f *fakeService) CourseVideos(context.Context, string) (*models.CourseVideos, error) {
	return nil, f.err
}

func newRouter(svc Service, log logger.Log) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(log), func(c *gin.Context) {
		c.Set(middleware.ActingUserCtx, models.ActingUser{ID: "u1", Username: "alice", Role: models.AdminRole})
	})
	r.GET("/videos", h.ListVideos)
	r.GET("/videos/:video_id", h.VideoByID)
	r.GET("/courses/:course_id/videos", h.CourseVideos)
	r.POST("/courses/:course_id/videos", h.AddVideo)
	return r
}

func serve(t *testing.T, svc Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serveTo(newRouter(svc, logger.NewDiscard()), method, path, body)
}

func serveTo(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStoreFailuresBecome500(t *testing.T) {
	svc := &fakeService{err: errors.New("socket closed")}

	for _, path := range []string{"/videos", "/videos/abc", "/courses/abc/videos"} {
		w := serve(t, svc, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		b := body(t, w)
		assert.Equal(t, "Something Went Wrong", b["message"])
		assert.Equal(t, "socket closed", b["error"])
	}
}

func TestAddVideoHidesInternalError(t *testing.T) {
	w := serve(t, &fakeService{err: errors.New("socket closed")}, http.MethodPost, "/courses/c1/videos", `{"title":"a","link":"b"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	b := body(t, w)
	assert.Equal(t, "Something went wrong", b["message"])
	assert.Equal(t, "Internal Server Error", b["error"])
}

func TestInternalErrorsLoggedOnce(t *testing.T) {
	cases := []struct {
		method, path, body, op string
	}{
		{http.MethodGet, "/videos/abc", "", "VideoByID"},
		{http.MethodPost, "/courses/c1/videos", `{"title":"a","link":"b"}`, "AddVideo"},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			var buf bytes.Buffer
			r := newRouter(&fakeService{err: errors.New("socket closed")}, logger.NewWithWriter("prod", &buf))

			w := serveTo(r, tc.method, tc.path, tc.body)

			require.Equal(t, http.StatusInternalServerError, w.Code)
			out := buf.String()
			assert.Equal(t, 1, strings.Count(out, `"level":"ERROR"`), out)
			assert.Equal(t, 1, strings.Count(out, "socket closed"), out)
			assert.Contains(t, out, `"op":"`+tc.op+`"`)
		})
	}
}

func TestAddVideoErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{app_errors.ErrNoAccessAddVideo, http.StatusForbidden},
		{app_errors.ErrTitleLinkRequired, http.StatusBadRequest},
		{app_errors.ErrVideoExists, http.StatusBadRequest},
		{app_errors.ErrCourseNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		w := serve(t, &fakeService{err: tc.err}, http.MethodPost, "/courses/c1/videos", `{"title":"a","link":"b"}`)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.Equal(t, tc.err.Error(), body(t, w)["error"])
	}
}

func TestAddVideoPassesBody(t *testing.T) {
	svc := &fakeService{}
	w := serve(t, svc, http.MethodPost, "/courses/c1/videos", `{"title":"a","link":"b","tags":["x"],"teacher":"mallory"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "c1", svc.gotCourse)
	assert.Equal(t, "a", svc.gotFields.Title)
	assert.Equal(t, []any{"x"}, svc.gotFields.Extra["tags"])
	assert.NotContains(t, svc.gotFields.Extra, "teacher")
}

func TestAddVideoMalformedJSON(t *testing.T) {
	w := serve(t, &fakeService{}, http.MethodPost, "/courses/c1/videos", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotFoundMapping(t *testing.T) {
	w := serve(t, &fakeService{err: app_errors.ErrVideoNotFound}, http.MethodGet, "/videos/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Video not found", body(t, w)["message"])

	w = serve(t, &fakeService{err: app_errors.ErrCourseNotFound}, http.MethodGet, "/courses/abc/videos", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, &fakeService{err: app_errors.ErrNoAccessViewVideos}, http.MethodGet, "/videos", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
