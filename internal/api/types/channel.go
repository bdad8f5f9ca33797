package types

import "github.com/leirbagxis/ChannelGate/internal/messenger"

type ChannelIDBody struct {
	ChannelID string `json:"channelId" binding:"required"`
}

type CreateChannelBody struct {
	Title   string                         `json:"title" binding:"required"`
	Options messenger.CreateChannelOptions `json:"options"`
}

type UnsubscribeChannelBody struct {
	ChannelID string                       `json:"channelId" binding:"required"`
	Options   messenger.UnsubscribeOptions `json:"options"`
}

type SearchChannelsBody struct {
	SearchOptions messenger.SearchOptions `json:"searchOptions"`
}

type InviteCodeBody struct {
	InviteCode string `json:"inviteCode" binding:"required"`
}

type SendMessageBody struct {
	ChannelID string                       `json:"channelId" binding:"required"`
	Content   string                       `json:"content" binding:"required"`
	Options   messenger.SendMessageOptions `json:"options"`
}

type UpdateChannelInfoBody struct {
	ChannelID  string `json:"channelId" binding:"required"`
	UpdateType string `json:"updateType" binding:"required"`
	Value      string `json:"value"`
}

type ManageAdminsBody struct {
	ChannelID string                       `json:"channelId" binding:"required"`
	Action    string                       `json:"action" binding:"required"`
	UserID    string                       `json:"userId"`
	Options   messenger.AdminInviteOptions `json:"options"`
}

type TransferOwnershipBody struct {
	ChannelID  string                    `json:"channelId" binding:"required"`
	NewOwnerID string                    `json:"newOwnerId" binding:"required"`
	Options    messenger.TransferOptions `json:"options"`
}

type GetSubscribersBody struct {
	ChannelID string `json:"channelId" binding:"required"`
	Limit     int    `json:"limit"`
}

type FetchMessagesBody struct {
	ChannelID     string                 `json:"channelId" binding:"required"`
	SearchOptions messenger.FetchOptions `json:"searchOptions"`
}

type MuteChannelBody struct {
	ChannelID string `json:"channelId" binding:"required"`
	Mute      *bool  `json:"mute" binding:"required"`
}
