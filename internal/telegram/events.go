package telegram

import (
	"context"
	"log"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	dbmodels "github.com/leirbagxis/ChannelGate/internal/database/models"
)

// handleUpdate records incoming channel posts into the message log and keeps
// the local registry title fresh. The Bot API offers no history fetch, so
// this log is the only source for FetchMessages.
func (c *Client) handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	post := update.ChannelPost
	if post == nil {
		post = update.EditedChannelPost
	}
	if post == nil {
		return
	}

	record, err := c.channels.GetByID(ctx, c.sessionID, post.Chat.ID)
	if err != nil {
		log.Printf("Failed to look up channel %d: %v", post.Chat.ID, err)
		return
	}
	if record == nil {
		// Post from a channel this session never subscribed to.
		return
	}

	if record.Title != post.Chat.Title && post.Chat.Title != "" {
		if err := c.channels.UpdateTitle(ctx, c.sessionID, post.Chat.ID, post.Chat.Title); err != nil {
			log.Printf("Failed to refresh title for channel %d: %v", post.Chat.ID, err)
		}
	}

	content := post.Text
	if content == "" {
		content = post.Caption
	}

	message := &dbmodels.ChannelMessage{
		MessageID: post.ID,
		ChannelID: post.Chat.ID,
		SessionID: c.sessionID,
		Content:   content,
		Outgoing:  false,
		Timestamp: time.Unix(int64(post.Date), 0),
	}
	if err := c.messages.Save(ctx, message); err != nil {
		log.Printf("Failed to record post %d from channel %d: %v", post.ID, post.Chat.ID, err)
	}
}
