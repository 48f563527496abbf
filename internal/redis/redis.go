package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// ErrTokenNotFound covers expired, already-used and never-issued tokens
// alike; callers cannot tell the difference and should not try.
var ErrTokenNotFound = errors.New("magic link token not found")

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// TokenStore issues and redeems single-use magic-link tokens.
type TokenStore interface {
	StoreMagicToken(ctx context.Context, token string, participantID int, ttl time.Duration) error
	RedeemMagicToken(ctx context.Context, token string) (int, error)
}

type magicTokenStore struct {
	client *redis.Client
}

func NewTokenStore() TokenStore {
	return &magicTokenStore{client: Rdb}
}

func (m *magicTokenStore) StoreMagicToken(ctx context.Context, token string, participantID int, ttl time.Duration) error {
	if err := m.client.Set(ctx, "magic:"+token, participantID, ttl).Err(); err != nil {
		log.Error().Err(err).Msg("failed to store magic link token")
		return err
	}
	return nil
}

// RedeemMagicToken deletes on read so a link can only be used once.
func (m *magicTokenStore) RedeemMagicToken(ctx context.Context, token string) (int, error) {
	val, err := m.client.GetDel(ctx, "magic:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		log.Error().Err(err).Msg("failed to redeem magic link token")
		return 0, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrTokenNotFound
	}
	return id, nil
}
