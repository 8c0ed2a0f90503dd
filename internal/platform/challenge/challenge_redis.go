// Package challenge stores pending two-factor login challenges in Redis.
// A challenge is created once the password has been verified for a user with
// 2FA enabled; the client completes login by presenting the challenge token
// plus a one-time code, without re-transmitting the password.
package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"waste_backend/internal/platform/totp"
)

// TTL is how long a pending login challenge stays valid.
const TTL = 5 * time.Minute

var (
	// ErrNotFound is returned when a challenge token is unknown, already
	// consumed, or expired. The three cases are indistinguishable.
	ErrNotFound = errors.New("challenge not found or expired")
)

// PendingLogin is the state carried between the password step and the
// one-time-code step of a two-factor login.
type PendingLogin struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists pending logins in Redis under random single-use tokens.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a new challenge Store. If prefix is empty, "2fa" is used.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "2fa"
	}
	return &Store{client: client, prefix: prefix}
}

// key returns the Redis key for a challenge token.
func (s *Store) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}

// Create stores a new pending login and returns its challenge token.
func (s *Store) Create(ctx context.Context, userID uint, username string) (string, error) {
	token, err := totp.RandomToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(PendingLogin{
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token), data, TTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume fetches and deletes a pending login in one round trip, so a
// challenge token can only ever be redeemed once.
func (s *Store) Consume(ctx context.Context, token string) (*PendingLogin, error) {
	data, err := s.client.GetDel(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var pending PendingLogin
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}
	return &pending, nil
}
