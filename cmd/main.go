package main

import (
	"LearnStream/internal/app"
	"LearnStream/internal/config"

	"github.com/gin-gonic/gin"
	_ "go.uber.org/automaxprocs"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
