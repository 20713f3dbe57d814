package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"tableflip.dev/stickies/pkg/note"
)

// Redis is a fallback Backend keeping the blob under a single key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects lazily; an unreachable server surfaces on Load/Save.
func NewRedis(cfg RedisConfig) *Redis {
	key := cfg.Key
	if key == "" {
		key = NotesKey
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		key: key,
	}
}

func (r *Redis) Load(ctx context.Context) ([]note.Record, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []note.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: redis get %s: %w", r.key, err)
	}
	return Decode(data)
}

func (r *Redis) Save(ctx context.Context, notes []note.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("storage: redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
