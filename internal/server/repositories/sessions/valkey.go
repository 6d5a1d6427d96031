package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/valkey-io/valkey-go"
)

const keyPrefix = "session:"

// store is the subset of key-value commands the session cache needs.
type store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns common.ErrorNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// ValkeyRepository keeps sessions as JSON values under session:<id> with a
// TTL equal to the remaining validity, so expired sessions vanish on their own.
type ValkeyRepository struct {
	kv  store
	now func() time.Time
}

func NewValkeyRepository(client valkey.Client) *ValkeyRepository {
	return &ValkeyRepository{kv: &valkeyStore{client: client}, now: time.Now}
}

func (r *ValkeyRepository) Create(ctx context.Context, s *models.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.kv.Set(ctx, keyPrefix+s.ID, string(data), ttl); err != nil {
		return fmt.Errorf("valkey error: %w", err)
	}
	return nil
}

func (r *ValkeyRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.kv.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("valkey error: %w", err)
	}

	s := &models.Session{}
	if err := json.Unmarshal([]byte(data), s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return s, nil
}

func (r *ValkeyRepository) Delete(ctx context.Context, id string) error {
	if err := r.kv.Del(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("valkey error: %w", err)
	}
	return nil
}

type valkeyStore struct {
	client valkey.Client
}

func (s *valkeyStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	cmd := s.client.B().Set().Key(key).Value(value).ExSeconds(seconds).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *valkeyStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if valkey.IsValkeyNil(err) {
		return "", common.ErrorNotFound
	}
	return v, err
}

func (s *valkeyStore) Del(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error()
}
