package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session status records live for statusTTL so a crashed gateway does not
// keep reporting sessions as connected forever.
const statusTTL = 30 * time.Minute

type Service struct{}

func NewService() *Service {
	GetRedisClient()
	return &Service{}
}

func (s *Service) SetStatus(ctx context.Context, status SessionStatus) error {
	client := GetRedisClient()

	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	err = client.Set(ctx, statusKey(status.SessionID), data, statusTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to store in cache: %w", err)
	}
	return nil
}

func (s *Service) GetStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	client := GetRedisClient()

	data, err := client.Get(ctx, statusKey(sessionID)).Result()
	if err != nil {
		if err.Error() == "redis: nil" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get from cache: %w", err)
	}

	var status SessionStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	return &status, nil
}

func (s *Service) DeleteStatus(ctx context.Context, sessionID string) error {
	client := GetRedisClient()
	return client.Del(ctx, statusKey(sessionID)).Err()
}

func statusKey(sessionID string) string {
	return "gateway_session:" + sessionID
}
