package repositories

import (
	"context"
	"errors"

	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Clauses(
		clause.OnConflict{UpdateAll: true},
	).Create(session).Error
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).Order("created_at").Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) SetStatus(ctx context.Context, sessionID, status string) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("session_id = ?", sessionID).
		Update("status", status).Error
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "session_id = ?", sessionID).Error
}
