package app

import (
	"LearnStream/internal/app/server"
	"LearnStream/internal/config"
	"LearnStream/internal/delivery/http"
	"LearnStream/internal/observability"
	"LearnStream/internal/service/auth"
	"LearnStream/internal/service/video"
	"LearnStream/internal/storage/memory"
	"LearnStream/internal/storage/mongodb"
	"LearnStream/internal/storage/postgres"
	"LearnStream/pkg/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type stores struct {
	videos  video.VideoRepo
	courses video.CourseRepo
	close   func(ctx context.Context) error
}

func openStores(ctx context.Context, log logger.Log, cfg *config.Config) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		m, err := mongodb.NewMongoStorage(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			videos:  mongodb.NewVideoMongo(m.DB),
			courses: mongodb.NewCourseMongo(m.DB),
			close:   m.Close,
		}, nil
	case config.DriverPostgres:
		connStr := postgres.ConnString(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, cfg.Postgres.SSLMode)
		pg, err := postgres.NewPostgresPool(ctx, connStr)
		if err != nil {
			return nil, err
		}
		return &stores{
			videos:  postgres.NewVideoPostgres(pg.Pool),
			courses: postgres.NewCoursePostgres(pg.Pool),
			close: func(context.Context) error {
				pg.Close()
				return nil
			},
		}, nil
	case config.DriverMemory:
		mem := memory.New()
		course, err := mem.CreateCourse(ctx, "Sample course", "Seeded for local runs")
		if err != nil {
			return nil, err
		}
		log.Info("memory storage seeded", "course_id", course.ID)
		return &stores{
			videos:  mem,
			courses: mem,
			close:   func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, log, cfg.Tracing, cfg.Env)
	if err != nil {
		log.FatalErr("error initializing tracing", err)
	}

	st, err := openStores(ctx, log, cfg)
	if err != nil {
		log.FatalErr("error connecting to storage", err, "driver", cfg.Storage.Driver)
	}
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	videoService := video.NewVideoService(log, st.videos, st.courses)

	r := http.InitRoutes(log, cfg, http.Deps{
		VideoService: videoService,
		TokenParser:  jwtManager,
	})

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("http server started", "address", cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server stopped", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("http server shutdown", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.close(closeCtx); err != nil {
		log.ErrorErr("storage close", err)
	}
	if err := shutdownTracing(closeCtx); err != nil {
		log.ErrorErr("tracing shutdown", err)
	}
}
