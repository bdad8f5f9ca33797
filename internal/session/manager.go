package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/leirbagxis/ChannelGate/internal/cache"
	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/internal/database/repositories"
	"github.com/leirbagxis/ChannelGate/internal/messenger"
	"github.com/leirbagxis/ChannelGate/pkg/config"
)

const (
	StatusConnected = "CONNECTED"
	StatusStopped   = "STOPPED"
	StatusFailed    = "FAILED"
)

// ClientFactory builds a live transport client for a session.
type ClientFactory func(ctx context.Context, sessionID, token string) (messenger.Client, error)

// StatusCache is the slice of the cache service the manager needs.
type StatusCache interface {
	SetStatus(ctx context.Context, status cache.SessionStatus) error
	GetStatus(ctx context.Context, sessionID string) (*cache.SessionStatus, error)
	DeleteStatus(ctx context.Context, sessionID string) error
}

// Registry is what the HTTP layer sees. The dispatcher only ever calls Get.
type Registry interface {
	Get(sessionID string) (messenger.Client, error)
	Start(ctx context.Context, sessionID, token string) (*cache.SessionStatus, error)
	Status(ctx context.Context, sessionID string) (*cache.SessionStatus, error)
	Terminate(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]models.Session, error)
}

type runningSession struct {
	client    messenger.Client
	startedAt time.Time
}

type Manager struct {
	mu      sync.RWMutex
	clients map[string]*runningSession

	repo    *repositories.SessionRepository
	cache   StatusCache
	factory ClientFactory
}

func NewManager(repo *repositories.SessionRepository, statusCache StatusCache, factory ClientFactory) *Manager {
	return &Manager{
		clients: make(map[string]*runningSession),
		repo:    repo,
		cache:   statusCache,
		factory: factory,
	}
}

func (m *Manager) Get(sessionID string) (messenger.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	running, ok := m.clients[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return running.client, nil
}

func (m *Manager) Start(ctx context.Context, sessionID, token string) (*cache.SessionStatus, error) {
	m.mu.Lock()
	if running, ok := m.clients[sessionID]; ok {
		m.mu.Unlock()
		return &cache.SessionStatus{
			SessionID: sessionID,
			Status:    StatusConnected,
			StartedAt: running.startedAt,
		}, nil
	}
	if len(m.clients) >= config.Limits.MaxSessions {
		m.mu.Unlock()
		return nil, fmt.Errorf("session limit of %d reached", config.Limits.MaxSessions)
	}
	m.mu.Unlock()

	// The factory talks to the network; never hold the lock across it, or a
	// slow token validation stalls every Get on every session.
	client, err := m.factory(ctx, sessionID, token)
	if err != nil {
		_ = m.repo.SetStatus(ctx, sessionID, StatusFailed)
		return nil, fmt.Errorf("failed to start session %s: %w", sessionID, err)
	}

	record := &models.Session{
		SessionID: sessionID,
		Token:     token,
		Status:    StatusConnected,
	}
	if err := m.repo.Save(ctx, record); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("failed to persist session %s: %w", sessionID, err)
	}

	running := &runningSession{client: client, startedAt: time.Now()}

	m.mu.Lock()
	if existing, ok := m.clients[sessionID]; ok {
		// Someone else won the race while we were connecting.
		m.mu.Unlock()
		_ = client.Close(ctx)
		return &cache.SessionStatus{
			SessionID: sessionID,
			Status:    StatusConnected,
			StartedAt: existing.startedAt,
		}, nil
	}
	if len(m.clients) >= config.Limits.MaxSessions {
		m.mu.Unlock()
		_ = client.Close(ctx)
		return nil, fmt.Errorf("session limit of %d reached", config.Limits.MaxSessions)
	}
	m.clients[sessionID] = running
	m.mu.Unlock()

	status := &cache.SessionStatus{
		SessionID: sessionID,
		Status:    StatusConnected,
		StartedAt: running.startedAt,
	}
	if err := m.cache.SetStatus(ctx, *status); err != nil {
		log.Printf("Failed to cache status for session %s: %v", sessionID, err)
	}
	return status, nil
}

func (m *Manager) Status(ctx context.Context, sessionID string) (*cache.SessionStatus, error) {
	m.mu.RLock()
	running, ok := m.clients[sessionID]
	m.mu.RUnlock()

	if ok {
		return &cache.SessionStatus{
			SessionID: sessionID,
			Status:    StatusConnected,
			StartedAt: running.startedAt,
		}, nil
	}

	if cached, err := m.cache.GetStatus(ctx, sessionID); err == nil && cached != nil {
		return cached, nil
	}

	record, err := m.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return &cache.SessionStatus{SessionID: sessionID, Status: record.Status}, nil
}

func (m *Manager) Terminate(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	running, ok := m.clients[sessionID]
	delete(m.clients, sessionID)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}

	if err := running.client.Close(ctx); err != nil {
		log.Printf("Error closing session %s: %v", sessionID, err)
	}
	if err := m.cache.DeleteStatus(ctx, sessionID); err != nil {
		log.Printf("Failed to drop cached status for session %s: %v", sessionID, err)
	}
	return m.repo.SetStatus(ctx, sessionID, StatusStopped)
}

func (m *Manager) List(ctx context.Context) ([]models.Session, error) {
	return m.repo.List(ctx)
}

// Restore brings persisted sessions back up after a restart.
func (m *Manager) Restore(ctx context.Context) {
	records, err := m.repo.List(ctx)
	if err != nil {
		log.Printf("Failed to list persisted sessions: %v", err)
		return
	}

	for _, record := range records {
		if record.Status != StatusConnected {
			continue
		}
		if _, err := m.Start(ctx, record.SessionID, record.Token); err != nil {
			log.Printf("Failed to restore session %s: %v", record.SessionID, err)
		}
	}
}
