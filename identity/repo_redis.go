package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/hirelane/interview-server/internal/errors"
)

// RedisRepo is a Redis-backed identity map. Entries have no TTL; staleness is
// bounded by the sweeper tearing down the sessions they point at, and the
// mapping itself must outlive process restarts.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

var _ Repo = (*RedisRepo)(nil)

// NewRedisRepo creates a Redis-backed identity repository.
func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: "identity:",
	}
}

func (r *RedisRepo) key(userIdentifier string) string {
	return r.prefix + userIdentifier
}

// Resolve uses SETNX for the get-or-create so two concurrent first calls for
// the same identifier still converge on one session id.
func (r *RedisRepo) Resolve(ctx context.Context, userIdentifier string) (string, error) {
	if userIdentifier == "" {
		return "", errors.New("[Resolve] userIdentifier is required")
	}

	candidate := uuid.New().String()
	created, err := r.client.SetNX(ctx, r.key(userIdentifier), candidate, 0).Result()
	if err != nil {
		// Wrap the sentinel so callers can match with errors.Is
		return "", errors.Wrap(apperrors.ErrIdentityMapWrite, err.Error())
	}
	if created {
		return candidate, nil
	}

	existing, err := r.client.Get(ctx, r.key(userIdentifier)).Result()
	if err != nil {
		return "", errors.Wrap(apperrors.ErrIdentityMapWrite, err.Error())
	}
	return existing, nil
}
