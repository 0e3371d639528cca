package favorites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ranna-banna/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// DefaultKey the storage key holding the serialized favorites
const DefaultKey = "ranna-banna-favorites"

// Persistence stores the serialized favorites set under a single key.
// Load returns nil data when nothing has been stored yet.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// RedisPersistence keeps favorites in one redis string key
type RedisPersistence struct {
	client *redis.Client
	key    string
}

// NewRedisPersistence connects to redis and verifies the connection
func NewRedisPersistence(ctx context.Context, cfg config.RedisConfig, key string) (*RedisPersistence, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPersistenceWithClient(client, key), nil
}

// NewRedisPersistenceWithClient wraps an existing client
func NewRedisPersistenceWithClient(client *redis.Client, key string) *RedisPersistence {
	if key == "" {
		key = DefaultKey
	}
	return &RedisPersistence{client: client, key: key}
}

// Load reads the stored value
func (p *RedisPersistence) Load(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return data, nil
}

// Save overwrites the stored value
func (p *RedisPersistence) Save(ctx context.Context, data []byte) error {
	if err := p.client.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set favorites: %w", err)
	}
	return nil
}

// Ping checks the redis connection
func (p *RedisPersistence) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the redis client
func (p *RedisPersistence) Close() error {
	return p.client.Close()
}

// FilePersistence keeps favorites in a JSON file, replaced atomically on save
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file store at path
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// Load reads the file; a missing file means nothing stored
func (p *FilePersistence) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the target
func (p *FilePersistence) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create favorites directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".favorites-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return fmt.Errorf("failed to replace favorites file: %w", err)
	}
	return nil
}

// MemoryPersistence process-local store
type MemoryPersistence struct {
	mu   sync.Mutex
	data []byte
	err  error
}

// NewMemoryPersistence creates an empty in-memory store
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

// Load returns a copy of the stored bytes
func (p *MemoryPersistence) Load(_ context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil, nil
	}
	return append([]byte(nil), p.data...), nil
}

// Save stores a copy of data, or returns the configured failure
func (p *MemoryPersistence) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.data = append([]byte(nil), data...)
	return nil
}

// FailSaves makes every subsequent Save return err; nil restores normal behavior
func (p *MemoryPersistence) FailSaves(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}
