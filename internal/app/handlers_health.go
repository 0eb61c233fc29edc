package app

import (
	"net/http"
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
)

func (a *App) HandleLiveness(c *gin.Context) {
	host, _ := os.Hostname()
	c.JSON(http.StatusOK, LivenessResponse{
		Status:     "up",
		Host:       host,
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	})
}

func (a *App) HandleReadiness(c *gin.Context) {
	stats := a.store.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
