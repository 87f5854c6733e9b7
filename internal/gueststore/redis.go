package gueststore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
)

// RedisStore keeps the guest wishlist under a single Redis key. Used when the
// engine runs behind a shared device profile (kiosk and in-store deployments)
// where several widget hosts need the same anonymous state.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed guest store. An empty key falls back
// to DefaultKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context) ([]domain.GuestEntry, error) {
	return s.read(ctx)
}

// Contains implements Store.
func (s *RedisStore) Contains(ctx context.Context, productID, variantID string) (bool, error) {
	entries, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	return containsPair(entries, productID, variantID), nil
}

// Add implements Store.
func (s *RedisStore) Add(ctx context.Context, productID, variantID string) error {
	entries, err := s.read(ctx)
	if err != nil {
		return err
	}
	if containsPair(entries, productID, variantID) {
		return nil
	}
	entries = append(entries, domain.GuestEntry{ProductID: productID, VariantID: variantID})
	return s.write(ctx, entries)
}

// Remove implements Store.
func (s *RedisStore) Remove(ctx context.Context, productID, variantID string) error {
	entries, err := s.read(ctx)
	if err != nil {
		return err
	}
	return s.write(ctx, removePair(entries, productID, variantID))
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del guest wishlist: %w", err)
	}
	return nil
}

// read loads and parses the stored array. A missing key or corrupt payload
// reads as an empty wishlist.
func (s *RedisStore) read(ctx context.Context) ([]domain.GuestEntry, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []domain.GuestEntry{}, nil
		}
		return nil, fmt.Errorf("redis get guest wishlist: %w", err)
	}

	var entries []domain.GuestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []domain.GuestEntry{}, nil
	}
	if entries == nil {
		entries = []domain.GuestEntry{}
	}
	return entries, nil
}

func (s *RedisStore) write(ctx context.Context, entries []domain.GuestEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal guest wishlist: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set guest wishlist: %w", err)
	}
	return nil
}
