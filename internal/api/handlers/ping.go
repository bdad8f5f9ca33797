package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/cache"
	"github.com/leirbagxis/ChannelGate/internal/container"
)

func PingHandler(c *container.AppContainer) gin.HandlerFunc {
	return func(g *gin.Context) {
		res := map[string]any{
			"ping": "pong",
		}
		if err := cache.HealthCheck(g.Request.Context()); err != nil {
			res["redis"] = "unreachable"
		}
		g.JSON(http.StatusOK, res)
	}
}
