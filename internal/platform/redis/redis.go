package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"linkedin-insights/internal/logger"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

type Options struct {
	Addr     string
	Password string
}

// Service is the process-wide document store connection, created once at
// startup and injected into the entity and log stores.
type Service struct {
	client *redisv8.Client
	log    *logger.Logger
}

func New(opts Options) (*Service, error) {
	c := redisv8.NewClient(&redisv8.Options{Addr: opts.Addr, Password: opts.Password})
	if err := c.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Service{client: c, log: logger.New("Redis")}, nil
}

func (s *Service) Close() error            { return s.client.Close() }
func (s *Service) Client() *redisv8.Client { return s.client }

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.LogErrorf("redis health check failed: %v", err)
		return fmt.Errorf("redis ping failed: %v", err)
	}

	testKey := "health:test:" + time.Now().Format("20060102150405")
	if err := s.client.Set(ctx, testKey, "ok", 10*time.Second).Err(); err != nil {
		return fmt.Errorf("redis write test failed: %v", err)
	}
	val, err := s.client.Get(ctx, testKey).Result()
	if err != nil {
		return fmt.Errorf("redis read test failed: %v", err)
	}
	if val != "ok" {
		return fmt.Errorf("redis value mismatch: got %s", val)
	}
	_ = s.client.Del(ctx, testKey).Err()
	return nil
}

func (s *Service) AsynqRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: s.client.Options().Addr, Password: s.client.Options().Password}
}

// Document helpers. Documents are JSON values under a single key; a write is
// a single-key operation, so per-document atomicity holds without transactions.

// DocGet reads a JSON document into dest. Returns found=false when the key
// does not exist.
func (s *Service) DocGet(ctx context.Context, key string, dest interface{}) (bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if err == redisv8.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dest)
}

// DocSet writes a JSON document with no expiry.
func (s *Service) DocSet(ctx context.Context, key string, val interface{}) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, 0).Err()
}

// DocSetNX writes a JSON document only if the key is absent. Returns whether
// the document was stored.
func (s *Service) DocSetNX(ctx context.Context, key string, val interface{}) (bool, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, key, b, 0).Result()
}

// DocDel removes a document. Returns whether the key existed.
func (s *Service) DocDel(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, key).Result()
	return n > 0, err
}

// Index helpers over sorted sets, used for newest-first listing.

func (s *Service) IndexAdd(ctx context.Context, key string, score float64, member string) error {
	return s.client.ZAdd(ctx, key, &redisv8.Z{Score: score, Member: member}).Err()
}

func (s *Service) IndexRem(ctx context.Context, key, member string) error {
	return s.client.ZRem(ctx, key, member).Err()
}

// IndexRevRange returns members ordered by descending score.
func (s *Service) IndexRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.client.ZRevRange(ctx, key, start, stop).Result()
}

// Cache helpers for transient state (job status).

func (s *Service) CacheGet(ctx context.Context, key string, dest interface{}) error {
	b, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

func (s *Service) CacheSet(ctx context.Context, key string, val interface{}, ttlSeconds int) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, time.Duration(ttlSeconds)*time.Second).Err()
}
