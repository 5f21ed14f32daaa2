package refreshtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/Chuseok22/Malsami-BE/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// RedisRepository implements Repository on Redis. Records live under
// refresh:<token> with a TTL matching the record expiry, so expired tokens
// vanish without a reaper process.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository constructs a repository on an existing Redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func tokenKey(token string) string {
	return "refresh:" + token
}

func (r *RedisRepository) Save(ctx context.Context, token *models.RefreshToken) error {
	createdAt := token.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	key := tokenKey(token.Token)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"member_id":  token.MemberID,
		"expires_at": token.ExpiresAt.Format(time.RFC3339Nano),
		"created_at": createdAt.Format(time.RFC3339Nano),
	})
	pipe.ExpireAt(ctx, key, token.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	fields, err := r.client.HGetAll(ctx, tokenKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if len(fields) == 0 {
		return nil, common.ErrorNotFound
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, fields["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("redis error: corrupt expires_at: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("redis error: corrupt created_at: %w", err)
	}

	return &models.RefreshToken{
		Token:     token,
		MemberID:  fields["member_id"],
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
