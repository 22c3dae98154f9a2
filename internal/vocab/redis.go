package vocab

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kloudstax/giftrec/internal/domain"
)

// RedisConfig holds connection parameters for a Redis vocabulary source.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisSource loads the vocabulary dataset from Redis string keys
// published by the vocabulary sync job: <prefix><category>:table holds
// the id/name JSON table, <prefix><category>:text the prompt text block.
type RedisSource struct {
	client rueidis.Client
	prefix string
}

// NewRedisSource connects to Redis and returns a vocabulary source.
func NewRedisSource(cfg RedisConfig) (*RedisSource, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}

	return &RedisSource{client: client, prefix: cfg.KeyPrefix}, nil
}

// Load fetches the three lookup tables and three prompt text blocks.
func (s *RedisSource) Load(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Entries:    make(map[domain.Category][]domain.Entry),
		PromptText: make(map[domain.Category]string),
	}

	for _, cat := range domain.Categories() {
		table, err := s.get(ctx, s.key(cat, "table"))
		if err != nil {
			return Dataset{}, fmt.Errorf("fetch %s table: %w", cat, err)
		}
		entries, err := DecodeTable(table)
		if err != nil {
			return Dataset{}, fmt.Errorf("decode %s table: %w", cat, err)
		}
		ds.Entries[cat] = entries

		text, err := s.get(ctx, s.key(cat, "text"))
		if err != nil {
			return Dataset{}, fmt.Errorf("fetch %s prompt text: %w", cat, err)
		}
		ds.PromptText[cat] = strings.TrimRight(string(text), "\n")
	}

	return ds, nil
}

// Ping checks connectivity.
func (s *RedisSource) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *RedisSource) Close() {
	s.client.Close()
}

func (s *RedisSource) key(cat domain.Category, part string) string {
	return s.prefix + string(cat) + ":" + part
}

func (s *RedisSource) get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("key %q not found", key)
		}
		return nil, err
	}
	return data, nil
}
