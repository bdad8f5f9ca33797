package container

import (
	"github.com/leirbagxis/ChannelGate/internal/cache"
	"github.com/leirbagxis/ChannelGate/internal/database/repositories"
	"github.com/leirbagxis/ChannelGate/internal/session"
	"github.com/leirbagxis/ChannelGate/internal/telegram"
	"gorm.io/gorm"
)

type AppContainer struct {
	DB          *gorm.DB
	SessionRepo *repositories.SessionRepository
	ChannelRepo *repositories.ChannelRepository
	MessageRepo *repositories.MessageRepository

	// ## CACHE ## \\
	CacheService *cache.Service

	// ## SESSIONS ## \\
	Manager  *session.Manager
	Sessions session.Registry
}

func NewAppContainer(db *gorm.DB) *AppContainer {
	cacheService := cache.NewService()

	sessionRepo := repositories.NewSessionRepository(db)
	channelRepo := repositories.NewChannelRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	factory := telegram.Factory(channelRepo, messageRepo)
	manager := session.NewManager(sessionRepo, cacheService, factory)

	return &AppContainer{
		DB:          db,
		SessionRepo: sessionRepo,
		ChannelRepo: channelRepo,
		MessageRepo: messageRepo,

		CacheService: cacheService,
		Manager:      manager,
		Sessions:     manager,
	}
}
