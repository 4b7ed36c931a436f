package wizard

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/redis"
)

// Store persists drafts between wizard requests.
type Store interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, draftID string) (*Draft, error)
	Delete(ctx context.Context, draftID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps drafts in Redis under the configured TTL. Every save
// refreshes the TTL so active sessions never expire mid-order.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Save(ctx context.Context, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft")
	}
	if err := s.client.Set(ctx, s.client.DraftKey(draft.ID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store draft")
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, draftID string) (*Draft, error) {
	raw, err := s.client.Get(ctx, s.client.DraftKey(draftID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found or expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode draft")
	}
	return &draft, nil
}

func (s *redisStore) Delete(ctx context.Context, draftID string) error {
	if err := s.client.Del(ctx, s.client.DraftKey(draftID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete draft")
	}
	return nil
}
