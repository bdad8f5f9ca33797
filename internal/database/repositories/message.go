package repositories

import (
	"context"
	"time"

	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Save(ctx context.Context, message *models.ChannelMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *MessageRepository) Fetch(ctx context.Context, sessionID string, channelID int64, limit int, before time.Time) ([]models.ChannelMessage, error) {
	query := r.db.WithContext(ctx).
		Where("session_id = ? AND channel_id = ?", sessionID, channelID)
	if !before.IsZero() {
		query = query.Where("timestamp < ?", before)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var messages []models.ChannelMessage
	err := query.Order("timestamp DESC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) DeleteByChannel(ctx context.Context, sessionID string, channelID int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.ChannelMessage{}, "session_id = ? AND channel_id = ?", sessionID, channelID).Error
}

func (r *MessageRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.ChannelMessage{}, "session_id = ?", sessionID).Error
}
