package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Champions int    `json:"champions"`
	Sessions  int    `json:"sessions"`
}

type HealthController struct {
	srv *Server
}

func NewHealthController(s *Server) *HealthController {
	return &HealthController{srv: s}
}

func (hc *HealthController) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(hc.srv.started).Round(time.Second).String(),
		Champions: len(hc.srv.deps.Catalog.Champions),
		Sessions:  hc.srv.deps.Sessions.Len(),
	})
}
