package models

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"sessionId"`
	Token     string    `json:"-"`
	Status    string    `gorm:"default:STOPPED" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Channel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement:false" json:"id"` // network-side chat id
	SessionID       string    `gorm:"primaryKey;index" json:"sessionId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	InviteURL       string    `json:"inviteUrl"`
	Muted           bool      `gorm:"default:false" json:"muted"`
	ReactionSetting string    `gorm:"default:all" json:"reactionSetting"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ChannelMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	MessageID int       `json:"messageId"`
	ChannelID int64     `gorm:"index" json:"channelId"`
	SessionID string    `gorm:"index" json:"sessionId"`
	Content   string    `json:"content"`
	Outgoing  bool      `json:"outgoing"`
	Timestamp time.Time `json:"timestamp"`
}

func (Session) TableName() string {
	return "sessions"
}

func (Channel) TableName() string {
	return "channels"
}

func (ChannelMessage) TableName() string {
	return "channel_messages"
}
