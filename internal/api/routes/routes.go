package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/auth"
	"github.com/leirbagxis/ChannelGate/internal/api/handlers"
	"github.com/leirbagxis/ChannelGate/internal/container"
)

func RegisterRoutes(r *gin.Engine, c *container.AppContainer) {
	api := r.Group("/api")
	{
		api.GET("/ping", handlers.PingHandler(c))
	}

	protected := api.Group("", auth.ApiKeyMiddleware())

	protected.GET("/sessions", handlers.ListSessionsHandler(c))

	session := protected.Group("/session/:sessionId")
	{
		session.POST("/start", handlers.StartSessionHandler(c))
		session.GET("/status", handlers.SessionStatusHandler(c))
		session.DELETE("/terminate", handlers.TerminateSessionHandler(c))
	}

	channel := protected.Group("/channel/:sessionId")
	{
		channel.POST("/getChannelInfo", handlers.GetChannelInfoHandler(c))
		channel.GET("/getAllChannels", handlers.GetAllChannelsHandler(c))
		channel.POST("/createChannel", handlers.CreateChannelHandler(c))
		channel.POST("/deleteChannel", handlers.DeleteChannelHandler(c))
		channel.POST("/subscribe", handlers.SubscribeChannelHandler(c))
		channel.POST("/unsubscribe", handlers.UnsubscribeChannelHandler(c))
		channel.POST("/searchChannels", handlers.SearchChannelsHandler(c))
		channel.POST("/getChannelByInviteCode", handlers.GetChannelByInviteCodeHandler(c))
		channel.POST("/sendMessage", handlers.SendChannelMessageHandler(c))
		channel.POST("/updateChannelInfo", handlers.UpdateChannelInfoHandler(c))
		channel.POST("/manageAdmins", handlers.ManageChannelAdminsHandler(c))
		channel.POST("/transferOwnership", handlers.TransferChannelOwnershipHandler(c))
		channel.POST("/getSubscribers", handlers.GetChannelSubscribersHandler(c))
		channel.POST("/fetchMessages", handlers.FetchChannelMessagesHandler(c))
		channel.POST("/mute", handlers.MuteChannelHandler(c))
	}
}
