package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/studybuddy/internal/logger"
)

// RedisConfig configures the Redis-backed LogStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // Default: "studybuddy"
}

// RedisConfigFromEnv reads STUDYBUDDY_REDIS_ADDR, STUDYBUDDY_REDIS_PASSWORD,
// STUDYBUDDY_REDIS_DB and STUDYBUDDY_REDIS_PREFIX. ok is false when no
// address is configured.
func RedisConfigFromEnv() (cfg RedisConfig, ok bool) {
	cfg.Addr = strings.TrimSpace(os.Getenv("STUDYBUDDY_REDIS_ADDR"))
	if cfg.Addr == "" {
		return RedisConfig{}, false
	}
	cfg.Password = os.Getenv("STUDYBUDDY_REDIS_PASSWORD")
	if db, err := strconv.Atoi(os.Getenv("STUDYBUDDY_REDIS_DB")); err == nil {
		cfg.DB = db
	}
	cfg.KeyPrefix = strings.TrimSpace(os.Getenv("STUDYBUDDY_REDIS_PREFIX"))
	return cfg, true
}

// RedisStore keeps each conversation in a hash with "log" and "version"
// fields. Saves run under WATCH so a concurrent writer aborts the
// transaction instead of being overwritten.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	log    *logger.Logger
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg RedisConfig, log *logger.Logger) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "studybuddy"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		log:    logger.OrNop(log).With("service", "RedisLogStore"),
	}, nil
}

func (s *RedisStore) key(k Key) string {
	return redisKey(s.prefix, k)
}

func redisKey(prefix string, k Key) string {
	return fmt.Sprintf("%s:history:%s:%s", prefix, k.UserID, k.MaterialID)
}

func (s *RedisStore) Load(ctx context.Context, key Key) (Log, Version, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis load: %w", err)
	}
	if len(fields) == 0 {
		return nil, 0, nil
	}
	return decodeRedisFields(fields)
}

func decodeRedisFields(fields map[string]string) (Log, Version, error) {
	v, err := strconv.ParseInt(fields["version"], 10, 64)
	if err != nil {
		return nil, 0, &ErrInvalidLog{Err: fmt.Errorf("version %q: %w", fields["version"], err)}
	}
	l, err := Decode([]byte(fields["log"]))
	if err != nil {
		return nil, 0, err
	}
	return l, Version(v), nil
}

func (s *RedisStore) Save(ctx context.Context, key Key, l Log, expected Version) error {
	data, err := Encode(l)
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}
	k := s.key(key)

	err = s.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.HGet(ctx, k, "version").Result()
		var current int64
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return err
		default:
			if current, err = strconv.ParseInt(raw, 10, 64); err != nil {
				return &ErrInvalidLog{Err: err}
			}
		}
		if Version(current) != expected {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, k, "log", data, "version", int64(expected)+1)
			return nil
		})
		return err
	}, k)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.TxFailedErr), errors.Is(err, ErrConflict):
		s.log.Debug("conversation save conflict", "key", k, "expected_version", int64(expected))
		return ErrConflict
	default:
		return fmt.Errorf("redis save: %w", err)
	}
}

// Clear empties the log and bumps the version in one transaction. The hash
// is kept so versions keep climbing across clears.
func (s *RedisStore) Clear(ctx context.Context, key Key) error {
	empty, err := Encode(nil)
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}
	k := s.key(key)
	_, err = s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, k, "log", empty)
		pipe.HIncrBy(ctx, k, "version", 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

// purge deletes the record outright; tests use it to clean up.
func (s *RedisStore) purge(ctx context.Context, key Key) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
