package repositories

import (
	"context"
	"errors"

	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Upsert(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "invite_url", "updated_at"}),
		},
	).Create(channel).Error
}

func (r *ChannelRepository) GetByID(ctx context.Context, sessionID string, channelID int64) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).
		First(&channel, "session_id = ? AND id = ?", sessionID, channelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) List(ctx context.Context, sessionID string) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("title").
		Find(&channels).Error
	return channels, err
}

func (r *ChannelRepository) Search(ctx context.Context, sessionID, text string, limit int) ([]models.Channel, error) {
	query := r.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if text != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+text+"%", "%"+text+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var channels []models.Channel
	err := query.Order("title").Find(&channels).Error
	return channels, err
}

func (r *ChannelRepository) SetMuted(ctx context.Context, sessionID string, channelID int64, muted bool) error {
	return r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("session_id = ? AND id = ?", sessionID, channelID).
		Update("muted", muted).Error
}

func (r *ChannelRepository) SetReactionSetting(ctx context.Context, sessionID string, channelID int64, setting string) error {
	return r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("session_id = ? AND id = ?", sessionID, channelID).
		Update("reaction_setting", setting).Error
}

func (r *ChannelRepository) UpdateTitle(ctx context.Context, sessionID string, channelID int64, title string) error {
	return r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("session_id = ? AND id = ?", sessionID, channelID).
		Update("title", title).Error
}

func (r *ChannelRepository) UpdateDescription(ctx context.Context, sessionID string, channelID int64, description string) error {
	return r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("session_id = ? AND id = ?", sessionID, channelID).
		Update("description", description).Error
}

func (r *ChannelRepository) Delete(ctx context.Context, sessionID string, channelID int64) error {
	return r.db.WithContext(ctx).
		Delete(&models.Channel{}, "session_id = ? AND id = ?", sessionID, channelID).Error
}

func (r *ChannelRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Channel{}, "session_id = ?", sessionID).Error
}
