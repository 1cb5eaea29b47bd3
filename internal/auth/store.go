// Package auth implements opaque bearer session tokens backed by Redis.
// Tokens are random, carry no claims, and die on logout or TTL expiry, which
// keeps revocation a single key delete.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"campuslibrary/internal/models"
)

// ErrTokenNotFound is returned when a token is unknown, expired or revoked.
var ErrTokenNotFound = errors.New("session token not found")

const keyPrefix = "session:"

// Session is the state stored against a token.
type Session struct {
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Issue mints a fresh token for the user and stores the session under it.
func (s *Store) Issue(ctx context.Context, userID uint, role models.UserRole) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(Session{UserID: userID, Role: role})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to its session.
func (s *Store) Resolve(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Revoke deletes the token. Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}
