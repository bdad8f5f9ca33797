package messenger

import (
	"context"
	"errors"
	"time"
)

// ErrNotSupported is returned by a transport for operations the underlying
// network account cannot perform (e.g. a Telegram bot creating a channel).
var ErrNotSupported = errors.New("operation not supported by this transport")

// Chat is a resolved chat entity. Only entities whose IsChannel flag is set
// may be used through the Channel capability set.
type Chat interface {
	ID() string
	Title() string
	IsChannel() bool
}

// Client is the account-level capability set of one live session.
type Client interface {
	// GetChatByID resolves a chat entity. A nil Chat with a nil error means
	// the transport knows nothing about the id.
	GetChatByID(ctx context.Context, chatID string) (Chat, error)
	GetChannels(ctx context.Context) ([]ChannelInfo, error)
	CreateChannel(ctx context.Context, title string, opts CreateChannelOptions) (*ChannelInfo, error)
	SubscribeToChannel(ctx context.Context, channelID string) (*ChannelInfo, error)
	UnsubscribeFromChannel(ctx context.Context, channelID string, opts UnsubscribeOptions) error
	SearchChannels(ctx context.Context, opts SearchOptions) ([]ChannelInfo, error)
	GetChannelByInviteCode(ctx context.Context, inviteCode string) (*ChannelInfo, error)

	// Close releases the underlying connection. Idempotent.
	Close(ctx context.Context) error
}

// Channel is the per-channel capability set, obtained from GetChatByID when
// the resolved entity is a channel.
type Channel interface {
	Chat

	Delete(ctx context.Context) error
	SendMessage(ctx context.Context, content string, opts SendMessageOptions) (*Message, error)
	SetSubject(ctx context.Context, subject string) error
	SetDescription(ctx context.Context, description string) error
	SetProfilePicture(ctx context.Context, pictureURL string) error
	SetReactionSetting(ctx context.Context, setting ReactionSetting) error
	SendAdminInvite(ctx context.Context, userID string, opts AdminInviteOptions) error
	AcceptAdminInvite(ctx context.Context) error
	RevokeAdminInvite(ctx context.Context, userID string) error
	DemoteAdmin(ctx context.Context, userID string) error
	TransferOwnership(ctx context.Context, newOwnerID string, opts TransferOptions) error
	Subscribers(ctx context.Context, limit int) ([]Subscriber, error)
	FetchMessages(ctx context.Context, opts FetchOptions) ([]Message, error)
	Mute(ctx context.Context) error
	Unmute(ctx context.Context) error
}

// ReactionSetting controls which reactions a channel accepts.
type ReactionSetting string

const (
	ReactionAll   ReactionSetting = "all"
	ReactionBasic ReactionSetting = "basic"
	ReactionNone  ReactionSetting = "none"
)

func ValidReactionSetting(s ReactionSetting) bool {
	switch s {
	case ReactionAll, ReactionBasic, ReactionNone:
		return true
	}
	return false
}

type ChannelInfo struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	InviteURL       string          `json:"inviteUrl,omitempty"`
	Subscribers     int             `json:"subscribers,omitempty"`
	Muted           bool            `json:"muted"`
	ReactionSetting ReactionSetting `json:"reactionSetting,omitempty"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
}

type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channelId"`
	Content   string    `json:"content"`
	Outgoing  bool      `json:"outgoing"`
	Timestamp time.Time `json:"timestamp"`
}

type Subscriber struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

type CreateChannelOptions struct {
	Description string `json:"description,omitempty"`
	PictureURL  string `json:"pictureUrl,omitempty"`
}

type SendMessageOptions struct {
	ParseMode   string `json:"parseMode,omitempty"`
	LinkPreview bool   `json:"linkPreview,omitempty"`
	Silent      bool   `json:"silent,omitempty"`
}

type UnsubscribeOptions struct {
	// DeleteLocalData also drops the locally stored channel and message rows.
	DeleteLocalData bool `json:"deleteLocalData,omitempty"`
}

type SearchOptions struct {
	Text  string `json:"text,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type FetchOptions struct {
	Limit int `json:"limit,omitempty"`
	// Before restricts the result to messages older than the given time.
	Before time.Time `json:"before,omitempty"`
}

type AdminInviteOptions struct {
	Comment string `json:"comment,omitempty"`
}

type TransferOptions struct {
	// KeepSubscription keeps following the channel after handing it over.
	KeepSubscription bool `json:"keepSubscription,omitempty"`
}
