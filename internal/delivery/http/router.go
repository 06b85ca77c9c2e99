package http

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/config"
	"LearnStream/internal/delivery/http/controllers"
	"LearnStream/internal/delivery/http/controllers/middleware"
	"LearnStream/internal/delivery/http/controllers/video"
	"LearnStream/internal/models"
	"LearnStream/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	VideoService video.Service
	TokenParser  middleware.TokenParser
}

func InitRoutes(l logger.Log, cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(corsConfig))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestIDMiddleware(), middleware.LoggingMiddleware(l))

	statusController := controllers.NewStatusHandler()
	authProvider := middleware.NewAuthMiddlewareProvider(l, d.TokenParser)
	videoController := video.NewHandler(d.VideoService)

	r.GET("/status", statusController.Status)

	authed := r.Group("", authProvider.AuthMiddleware)
	{
		videos := authed.Group("/videos")
		{
			videos.GET("",
				middleware.RequireRoles(app_errors.ErrNoAccessViewVideos.Error(), models.AdminRole),
				videoController.ListVideos)
			videos.GET("/:video_id", videoController.VideoByID)
		}

		courses := authed.Group("/courses")
		{
			courses.GET("/:course_id/videos", videoController.CourseVideos)
			courses.POST("/:course_id/videos",
				middleware.RequireRoles(app_errors.ErrNoAccessAddVideo.Error(), models.AdminRole, models.TeacherRole),
				videoController.AddVideo)
		}
	}
	return r
}
