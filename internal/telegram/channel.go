package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	dbmodels "github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/internal/messenger"
)

// Channel is the per-channel capability handle. It is built by
// Client.GetChatByID only for chats of type "channel".
type Channel struct {
	client *Client
	id     int64
	title  string
}

func (ch *Channel) ID() string      { return strconv.FormatInt(ch.id, 10) }
func (ch *Channel) Title() string   { return ch.title }
func (ch *Channel) IsChannel() bool { return true }

// Delete leaves the channel and purges everything stored about it. A bot
// cannot destroy the channel itself on the network side.
func (ch *Channel) Delete(ctx context.Context) error {
	if _, err := ch.client.b.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: ch.id}); err != nil {
		return err
	}
	if err := ch.client.channels.Delete(ctx, ch.client.sessionID, ch.id); err != nil {
		return err
	}
	return ch.client.messages.DeleteByChannel(ctx, ch.client.sessionID, ch.id)
}

func (ch *Channel) SendMessage(ctx context.Context, content string, opts messenger.SendMessageOptions) (*messenger.Message, error) {
	silent := opts.Silent
	if record, err := ch.client.channels.GetByID(ctx, ch.client.sessionID, ch.id); err == nil && record != nil && record.Muted {
		silent = true
	}

	params := &bot.SendMessageParams{
		ChatID:              ch.id,
		Text:                content,
		DisableNotification: silent,
	}
	if opts.ParseMode != "" {
		params.ParseMode = models.ParseMode(opts.ParseMode)
	}
	if !opts.LinkPreview {
		disabled := true
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: &disabled}
	}

	sent, err := ch.client.b.SendMessage(ctx, params)
	if err != nil {
		return nil, err
	}

	message := &messenger.Message{
		ID:        strconv.Itoa(sent.ID),
		ChannelID: ch.ID(),
		Content:   content,
		Outgoing:  true,
		Timestamp: time.Unix(int64(sent.Date), 0),
	}

	record := &dbmodels.ChannelMessage{
		MessageID: sent.ID,
		ChannelID: ch.id,
		SessionID: ch.client.sessionID,
		Content:   content,
		Outgoing:  true,
		Timestamp: message.Timestamp,
	}
	if err := ch.client.messages.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("message sent but not recorded: %w", err)
	}
	return message, nil
}

func (ch *Channel) SetSubject(ctx context.Context, subject string) error {
	if _, err := ch.client.b.SetChatTitle(ctx, &bot.SetChatTitleParams{
		ChatID: ch.id,
		Title:  subject,
	}); err != nil {
		return err
	}
	return ch.client.channels.UpdateTitle(ctx, ch.client.sessionID, ch.id, subject)
}

func (ch *Channel) SetDescription(ctx context.Context, description string) error {
	if _, err := ch.client.b.SetChatDescription(ctx, &bot.SetChatDescriptionParams{
		ChatID:      ch.id,
		Description: description,
	}); err != nil {
		return err
	}
	return ch.client.channels.UpdateDescription(ctx, ch.client.sessionID, ch.id, description)
}

func (ch *Channel) SetProfilePicture(ctx context.Context, pictureURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pictureURL, nil)
	if err != nil {
		return fmt.Errorf("invalid picture url: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download picture: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download picture: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("failed to read picture: %w", err)
	}

	_, err = ch.client.b.SetChatPhoto(ctx, &bot.SetChatPhotoParams{
		ChatID: ch.id,
		Photo: &models.InputFileUpload{
			Filename: "photo.jpg",
			Data:     bytes.NewReader(data),
		},
	})
	return err
}

// SetReactionSetting is a local policy: the Bot API exposes no control over
// a channel's reaction settings, so the gateway records the choice and other
// components may consult it.
func (ch *Channel) SetReactionSetting(ctx context.Context, setting messenger.ReactionSetting) error {
	return ch.client.channels.SetReactionSetting(ctx, ch.client.sessionID, ch.id, string(setting))
}

func (ch *Channel) SendAdminInvite(ctx context.Context, userID string, opts messenger.AdminInviteOptions) error {
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userID)
	}
	_, err = ch.client.b.PromoteChatMember(ctx, &bot.PromoteChatMemberParams{
		ChatID:            ch.id,
		UserID:            uid,
		CanPostMessages:   true,
		CanEditMessages:   true,
		CanDeleteMessages: true,
		CanInviteUsers:    true,
	})
	return err
}

// AcceptAdminInvite has no Bot API equivalent: admin rights are granted to a
// bot directly, never offered as an invitation it could accept.
func (ch *Channel) AcceptAdminInvite(ctx context.Context) error {
	return messenger.ErrNotSupported
}

func (ch *Channel) RevokeAdminInvite(ctx context.Context, userID string) error {
	return ch.DemoteAdmin(ctx, userID)
}

func (ch *Channel) DemoteAdmin(ctx context.Context, userID string) error {
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userID)
	}
	_, err = ch.client.b.PromoteChatMember(ctx, &bot.PromoteChatMemberParams{
		ChatID: ch.id,
		UserID: uid,
	})
	return err
}

// TransferOwnership requires a user account on Telegram.
func (ch *Channel) TransferOwnership(ctx context.Context, newOwnerID string, opts messenger.TransferOptions) error {
	return messenger.ErrNotSupported
}

// Subscribers lists what the Bot API can see of the audience: the channel
// owner and administrators. Regular subscribers are not enumerable for bots.
func (ch *Channel) Subscribers(ctx context.Context, limit int) ([]messenger.Subscriber, error) {
	admins, err := ch.client.b.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: ch.id})
	if err != nil {
		return nil, err
	}

	subscribers := make([]messenger.Subscriber, 0, len(admins))
	for _, member := range admins {
		var user *models.User
		role := ""
		switch {
		case member.Owner != nil:
			user = member.Owner.User
			role = "owner"
		case member.Administrator != nil:
			user = &member.Administrator.User
			role = "admin"
		}
		if user == nil {
			continue
		}
		subscribers = append(subscribers, messenger.Subscriber{
			ID:   strconv.FormatInt(user.ID, 10),
			Name: user.FirstName,
			Role: role,
		})
		if limit > 0 && len(subscribers) >= limit {
			break
		}
	}
	return subscribers, nil
}

func (ch *Channel) FetchMessages(ctx context.Context, opts messenger.FetchOptions) ([]messenger.Message, error) {
	records, err := ch.client.messages.Fetch(ctx, ch.client.sessionID, ch.id, opts.Limit, opts.Before)
	if err != nil {
		return nil, err
	}

	messages := make([]messenger.Message, 0, len(records))
	for _, record := range records {
		messages = append(messages, messenger.Message{
			ID:        strconv.Itoa(record.MessageID),
			ChannelID: ch.ID(),
			Content:   record.Content,
			Outgoing:  record.Outgoing,
			Timestamp: record.Timestamp,
		})
	}
	return messages, nil
}

func (ch *Channel) Mute(ctx context.Context) error {
	return ch.client.channels.SetMuted(ctx, ch.client.sessionID, ch.id, true)
}

func (ch *Channel) Unmute(ctx context.Context) error {
	return ch.client.channels.SetMuted(ctx, ch.client.sessionID, ch.id, false)
}
