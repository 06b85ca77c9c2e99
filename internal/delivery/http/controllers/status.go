package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	started time.Time
}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{started: time.Now()}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "Available",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
