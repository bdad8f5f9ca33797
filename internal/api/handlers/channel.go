package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/types"
	"github.com/leirbagxis/ChannelGate/internal/container"
	"github.com/leirbagxis/ChannelGate/internal/messenger"
	"github.com/leirbagxis/ChannelGate/pkg/config"
)

// resolveClient fetches the live client handle for the session in the path.
// A registry miss is an internal fault, matching the pass-through policy for
// unknown sessions.
func resolveClient(c *gin.Context, app *container.AppContainer) (messenger.Client, bool) {
	client, err := app.Sessions.Get(c.Param("sessionId"))
	if err != nil {
		types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return client, true
}

// resolveChannel looks a chat up and validates the channel capability.
// Nothing may be called on the handle after a Not-Found response.
func resolveChannel(c *gin.Context, client messenger.Client, channelID string) (messenger.Channel, bool) {
	chat, err := client.GetChatByID(c.Request.Context(), channelID)
	if err != nil {
		types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if chat == nil || !chat.IsChannel() {
		types.SendErrorResponse(c, http.StatusNotFound, "Channel not Found")
		return nil, false
	}
	channel, ok := chat.(messenger.Channel)
	if !ok {
		types.SendErrorResponse(c, http.StatusNotFound, "Channel not Found")
		return nil, false
	}
	return channel, true
}

func GetChannelInfoHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.ChannelIDBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"channel": messenger.ChannelInfo{
				ID:    channel.ID(),
				Title: channel.Title(),
			},
		})
	}
}

func GetAllChannelsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		channels, err := client.GetChannels(c.Request.Context())
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "channels": channels})
	}
}

func CreateChannelHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.CreateChannelBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, err := client.CreateChannel(c.Request.Context(), body.Title, body.Options)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "channel": channel})
	}
}

func DeleteChannelHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.ChannelIDBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		if err := channel.Delete(c.Request.Context()); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func SubscribeChannelHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.ChannelIDBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, err := client.SubscribeToChannel(c.Request.Context(), body.ChannelID)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "channel": channel})
	}
}

func UnsubscribeChannelHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.UnsubscribeChannelBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		if err := client.UnsubscribeFromChannel(c.Request.Context(), body.ChannelID, body.Options); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func SearchChannelsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.SearchChannelsBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channels, err := client.SearchChannels(c.Request.Context(), body.SearchOptions)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "channels": channels})
	}
}

func GetChannelByInviteCodeHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.InviteCodeBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, err := client.GetChannelByInviteCode(c.Request.Context(), body.InviteCode)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "channel": channel})
	}
}

func SendChannelMessageHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.SendMessageBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		message, err := channel.SendMessage(c.Request.Context(), body.Content, body.Options)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
	}
}

func UpdateChannelInfoHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.UpdateChannelInfoBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var err error
		switch body.UpdateType {
		case "subject":
			err = channel.SetSubject(ctx, body.Value)
		case "description":
			err = channel.SetDescription(ctx, body.Value)
		case "profilePicture":
			err = channel.SetProfilePicture(ctx, body.Value)
		case "reactionSetting":
			setting := messenger.ReactionSetting(body.Value)
			if !messenger.ValidReactionSetting(setting) {
				types.SendErrorResponse(c, http.StatusBadRequest, "Invalid reaction setting")
				return
			}
			err = channel.SetReactionSetting(ctx, setting)
		default:
			types.SendErrorResponse(c, http.StatusBadRequest, "Invalid update type")
			return
		}
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func ManageChannelAdminsHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.ManageAdminsBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var err error
		switch body.Action {
		case "invite":
			err = channel.SendAdminInvite(ctx, body.UserID, body.Options)
		case "accept":
			err = channel.AcceptAdminInvite(ctx)
		case "revoke":
			err = channel.RevokeAdminInvite(ctx, body.UserID)
		case "demote":
			err = channel.DemoteAdmin(ctx, body.UserID)
		default:
			types.SendErrorResponse(c, http.StatusBadRequest, "Invalid admin action")
			return
		}
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func TransferChannelOwnershipHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.TransferOwnershipBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		if err := channel.TransferOwnership(c.Request.Context(), body.NewOwnerID, body.Options); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}

func GetChannelSubscribersHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.GetSubscribersBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		limit := body.Limit
		if limit <= 0 || limit > config.Limits.SubscriberLimit {
			limit = config.Limits.SubscriberLimit
		}

		subscribers, err := channel.Subscribers(c.Request.Context(), limit)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "subscribers": subscribers})
	}
}

func FetchChannelMessagesHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.FetchMessagesBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		opts := body.SearchOptions
		if opts.Limit <= 0 || opts.Limit > config.Limits.MessageHistoryLimit {
			opts.Limit = config.Limits.MessageHistoryLimit
		}

		messages, err := channel.FetchMessages(c.Request.Context(), opts)
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
	}
}

func MuteChannelHandler(app *container.AppContainer) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := resolveClient(c, app)
		if !ok {
			return
		}

		var body types.MuteChannelBody
		if err := c.ShouldBindJSON(&body); err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		channel, ok := resolveChannel(c, client, body.ChannelID)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var err error
		if *body.Mute {
			err = channel.Mute(ctx)
		} else {
			err = channel.Unmute(ctx)
		}
		if err != nil {
			types.SendErrorResponse(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "result": true})
	}
}
