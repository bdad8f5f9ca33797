package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leirbagxis/ChannelGate/internal/api/routes"
	"github.com/leirbagxis/ChannelGate/internal/cache"
	"github.com/leirbagxis/ChannelGate/internal/container"
	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRegistry struct {
	fakeRegistry
	status     *cache.SessionStatus
	statusErr  error
	termErr    error
	sessions   []models.Session
	startErr   error
	lastToken  string
	terminated []string
}

func (s *scriptedRegistry) Start(ctx context.Context, sessionID, token string) (*cache.SessionStatus, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	s.lastToken = token
	return &cache.SessionStatus{SessionID: sessionID, Status: "CONNECTED"}, nil
}

func (s *scriptedRegistry) Status(ctx context.Context, sessionID string) (*cache.SessionStatus, error) {
	return s.status, s.statusErr
}

func (s *scriptedRegistry) Terminate(ctx context.Context, sessionID string) error {
	if s.termErr != nil {
		return s.termErr
	}
	s.terminated = append(s.terminated, sessionID)
	return nil
}

func (s *scriptedRegistry) List(ctx context.Context) ([]models.Session, error) {
	return s.sessions, nil
}

func setupSessionRouter(reg *scriptedRegistry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.ApiKey = ""
	r := gin.New()
	routes.RegisterRoutes(r, &container.AppContainer{Sessions: reg})
	return r
}

func TestStartSession(t *testing.T) {
	reg := &scriptedRegistry{}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/session/s1/start", gin.H{"token": "12345:abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "CONNECTED", envelope["session"].(map[string]any)["status"])
	assert.Equal(t, "12345:abc", reg.lastToken)
}

func TestStartSessionMissingToken(t *testing.T) {
	reg := &scriptedRegistry{}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/session/s1/start", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestStartSessionFactoryFailure(t *testing.T) {
	reg := &scriptedRegistry{startErr: errors.New("failed to validate token")}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodPost, "/api/session/s1/start", gin.H{"token": "bad"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to validate token", envelope["error"])
}

func TestSessionStatus(t *testing.T) {
	reg := &scriptedRegistry{status: &cache.SessionStatus{SessionID: "s1", Status: "CONNECTED"}}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/session/s1/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONNECTED", envelope["session"].(map[string]any)["status"])
}

func TestSessionStatusUnknown(t *testing.T) {
	reg := &scriptedRegistry{}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/session/s1/status", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not Found", envelope["error"])
}

func TestTerminateSession(t *testing.T) {
	reg := &scriptedRegistry{}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodDelete, "/api/session/s1/terminate", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["result"])
	assert.Equal(t, []string{"s1"}, reg.terminated)
}

func TestTerminateUnknownSession(t *testing.T) {
	reg := &scriptedRegistry{termErr: errors.New("session s1 not found")}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodDelete, "/api/session/s1/terminate", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session s1 not found", envelope["error"])
}

func TestListSessions(t *testing.T) {
	reg := &scriptedRegistry{sessions: []models.Session{{SessionID: "s1"}, {SessionID: "s2"}}}
	r := setupSessionRouter(reg)

	w, envelope := doJSON(t, r, http.MethodGet, "/api/sessions", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	sessions := envelope["sessions"].([]any)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[1].(map[string]any)["sessionId"])
}
