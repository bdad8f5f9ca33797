package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/internal/database/repositories"
	"github.com/leirbagxis/ChannelGate/internal/messenger"
	"github.com/leirbagxis/ChannelGate/internal/session"
)

// Client implements messenger.Client over the Telegram Bot API. Each gateway
// session owns one bot token and one polling loop. Channels the bot follows
// are tracked in the local registry because the Bot API has no way to list
// the chats a bot is a member of.
type Client struct {
	sessionID string
	b         *bot.Bot

	channels *repositories.ChannelRepository
	messages *repositories.MessageRepository

	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Factory returns a session.ClientFactory bound to the gateway repositories.
func Factory(channels *repositories.ChannelRepository, messages *repositories.MessageRepository) session.ClientFactory {
	return func(ctx context.Context, sessionID, token string) (messenger.Client, error) {
		return NewClient(ctx, sessionID, token, channels, messages)
	}
}

func NewClient(ctx context.Context, sessionID, token string, channels *repositories.ChannelRepository, messages *repositories.MessageRepository) (*Client, error) {
	c := &Client{
		sessionID: sessionID,
		channels:  channels,
		messages:  messages,
	}

	b, err := bot.New(token, bot.WithDefaultHandler(c.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	c.b = b

	botInfo, err := b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go b.Start(runCtx)

	log.Printf("Session %s connected as @%s", sessionID, botInfo.Username)
	return c, nil
}

func (c *Client) GetChatByID(ctx context.Context, chatID string) (messenger.Chat, error) {
	id, err := parseChatID(chatID)
	if err != nil {
		return nil, err
	}

	info, err := c.b.GetChat(ctx, &bot.GetChatParams{ChatID: id})
	if err != nil {
		if strings.Contains(err.Error(), "chat not found") {
			return nil, nil
		}
		return nil, err
	}

	if info.Type != "channel" {
		return &chatEntity{id: info.ID, title: info.Title}, nil
	}
	return c.channelHandle(info.ID, info.Title), nil
}

func (c *Client) GetChannels(ctx context.Context) ([]messenger.ChannelInfo, error) {
	records, err := c.channels.List(ctx, c.sessionID)
	if err != nil {
		return nil, err
	}
	return channelInfos(records), nil
}

// CreateChannel is not available to bot accounts: only user clients may
// create channels on Telegram.
func (c *Client) CreateChannel(ctx context.Context, title string, opts messenger.CreateChannelOptions) (*messenger.ChannelInfo, error) {
	return nil, messenger.ErrNotSupported
}

// SubscribeToChannel registers a channel the bot was already added to,
// enabling post tracking and per-channel settings for this session.
func (c *Client) SubscribeToChannel(ctx context.Context, channelID string) (*messenger.ChannelInfo, error) {
	id, err := parseChatID(channelID)
	if err != nil {
		return nil, err
	}

	info, err := c.b.GetChat(ctx, &bot.GetChatParams{ChatID: id})
	if err != nil {
		return nil, err
	}
	if info.Type != "channel" {
		return nil, fmt.Errorf("chat %s is not a channel", channelID)
	}

	record := &models.Channel{
		ID:          info.ID,
		SessionID:   c.sessionID,
		Title:       info.Title,
		Description: info.Description,
		InviteURL:   info.InviteLink,
	}
	if err := c.channels.Upsert(ctx, record); err != nil {
		return nil, err
	}

	result := channelInfo(record)
	return &result, nil
}

func (c *Client) UnsubscribeFromChannel(ctx context.Context, channelID string, opts messenger.UnsubscribeOptions) error {
	id, err := parseChatID(channelID)
	if err != nil {
		return err
	}

	// The registry is keyed by numeric chat id, so @usernames are resolved
	// first. Otherwise the local rows would survive the unsubscribe.
	numericID, ok := id.(int64)
	if !ok {
		info, err := c.b.GetChat(ctx, &bot.GetChatParams{ChatID: id})
		if err != nil {
			return err
		}
		numericID = info.ID
	}

	if _, err := c.b.LeaveChat(ctx, &bot.LeaveChatParams{ChatID: numericID}); err != nil {
		return err
	}

	if err := c.channels.Delete(ctx, c.sessionID, numericID); err != nil {
		return err
	}
	if opts.DeleteLocalData {
		return c.messages.DeleteByChannel(ctx, c.sessionID, numericID)
	}
	return nil
}

func (c *Client) SearchChannels(ctx context.Context, opts messenger.SearchOptions) ([]messenger.ChannelInfo, error) {
	records, err := c.channels.Search(ctx, c.sessionID, opts.Text, opts.Limit)
	if err != nil {
		return nil, err
	}
	return channelInfos(records), nil
}

// GetChannelByInviteCode resolves a public channel by its @username or
// t.me slug. Private invite hashes cannot be resolved through the Bot API.
func (c *Client) GetChannelByInviteCode(ctx context.Context, inviteCode string) (*messenger.ChannelInfo, error) {
	username := inviteUsername(inviteCode)

	info, err := c.b.GetChat(ctx, &bot.GetChatParams{ChatID: username})
	if err != nil {
		return nil, err
	}
	if info.Type != "channel" {
		return nil, fmt.Errorf("%s is not a channel", inviteCode)
	}

	return &messenger.ChannelInfo{
		ID:          strconv.FormatInt(info.ID, 10),
		Title:       info.Title,
		Description: info.Description,
		InviteURL:   info.InviteLink,
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
	})
	return nil
}

func (c *Client) channelHandle(id int64, title string) *Channel {
	return &Channel{client: c, id: id, title: title}
}

// chatEntity is a resolved chat without the channel capability.
type chatEntity struct {
	id    int64
	title string
}

func (e *chatEntity) ID() string      { return strconv.FormatInt(e.id, 10) }
func (e *chatEntity) Title() string   { return e.title }
func (e *chatEntity) IsChannel() bool { return false }

// parseChatID accepts numeric chat ids and @usernames.
func parseChatID(chatID string) (any, error) {
	if strings.HasPrefix(chatID, "@") {
		return chatID, nil
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id %q", chatID)
	}
	return id, nil
}

func inviteUsername(inviteCode string) string {
	code := strings.TrimPrefix(inviteCode, "https://")
	code = strings.TrimPrefix(code, "t.me/")
	if !strings.HasPrefix(code, "@") {
		code = "@" + code
	}
	return code
}

func channelInfo(record *models.Channel) messenger.ChannelInfo {
	return messenger.ChannelInfo{
		ID:              strconv.FormatInt(record.ID, 10),
		Title:           record.Title,
		Description:     record.Description,
		InviteURL:       record.InviteURL,
		Muted:           record.Muted,
		ReactionSetting: messenger.ReactionSetting(record.ReactionSetting),
		CreatedAt:       record.CreatedAt,
	}
}

func channelInfos(records []models.Channel) []messenger.ChannelInfo {
	infos := make([]messenger.ChannelInfo, 0, len(records))
	for i := range records {
		infos = append(infos, channelInfo(&records[i]))
	}
	return infos
}
