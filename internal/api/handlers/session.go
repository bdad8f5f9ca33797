package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/types"
	"github.com/leirbagxis/ChannelGate/internal/container"
)

func StartSessionHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body types.StartSessionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}

		status, err := app.Sessions.Start(c.Request.Context(), c.Param("sessionId"), body.Token)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "session": status})
	}
}

func SessionStatusHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		status, err := app.Sessions.Status(c.Request.Context(), sessionID)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}
		if status == nil {
			types.SendErrorResponse(c, http.StatusNotFound, "Session not Found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "session": status})
	}
}

func TerminateSessionHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.Sessions.Terminate(c.Request.Context(), c.Param("sessionId")); err != nil {
			types.SendErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func ListSessionsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := app.Sessions.List(c.Request.Context())
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
	}
}
