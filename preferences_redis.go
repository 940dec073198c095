package l10n

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultRedisPrefix  = "l10n:prefs:"
	defaultRedisTimeout = 2 * time.Second
)

// RedisPreferences stores each namespace as a Redis hash, so several
// processes of one user share a language choice.
type RedisPreferences struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger
}

var _ Preferences = &RedisPreferences{}

// RedisOption customises RedisPreferences.
type RedisOption func(*RedisPreferences)

// WithRedisPrefix sets the hash key prefix, "l10n:prefs:" by default.
func WithRedisPrefix(prefix string) RedisOption {
	return func(p *RedisPreferences) {
		if prefix != "" {
			p.prefix = prefix
		}
	}
}

// WithRedisTimeout bounds every Redis round trip.
func WithRedisTimeout(timeout time.Duration) RedisOption {
	return func(p *RedisPreferences) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithRedisLogger reports backend failures on reads.
func WithRedisLogger(logger zerolog.Logger) RedisOption {
	return func(p *RedisPreferences) {
		p.logger = logger
	}
}

// NewRedisPreferences wraps an existing client.
func NewRedisPreferences(client redis.UniversalClient, opts ...RedisOption) *RedisPreferences {
	p := &RedisPreferences{
		client:  client,
		prefix:  defaultRedisPrefix,
		timeout: defaultRedisTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// DialRedisPreferences parses a redis:// URL, connects and pings.
func DialRedisPreferences(ctx context.Context, url string, opts ...RedisOption) (*RedisPreferences, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("l10n: parse redis url: %w", err)
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("l10n: ping redis: %w", err)
	}
	return NewRedisPreferences(client, opts...), nil
}

// Close releases the underlying client.
func (p *RedisPreferences) Close() error {
	return p.client.Close()
}

func (p *RedisPreferences) hashKey(namespace string) string {
	return p.prefix + namespace
}

func (p *RedisPreferences) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

func (p *RedisPreferences) String(namespace, key string) (string, bool) {
	ctx, cancel := p.opContext()
	defer cancel()

	value, err := p.client.HGet(ctx, p.hashKey(namespace), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		p.logger.Warn().Err(err).Str("namespace", namespace).Str("key", key).Msg("read preference")
		return "", false
	}
	return value, true
}

func (p *RedisPreferences) Bool(namespace, key string, fallback bool) bool {
	value, ok := p.String(namespace, key)
	if !ok {
		return fallback
	}
	return parseBoolPreference(value, fallback)
}

func (p *RedisPreferences) SetString(namespace, key, value string) error {
	ctx, cancel := p.opContext()
	defer cancel()

	if err := p.client.HSet(ctx, p.hashKey(namespace), key, value).Err(); err != nil {
		return fmt.Errorf("l10n: write preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (p *RedisPreferences) SetBool(namespace, key string, value bool) error {
	return p.SetString(namespace, key, strconv.FormatBool(value))
}

func (p *RedisPreferences) Remove(namespace, key string) error {
	ctx, cancel := p.opContext()
	defer cancel()

	if err := p.client.HDel(ctx, p.hashKey(namespace), key).Err(); err != nil {
		return fmt.Errorf("l10n: remove preference %s/%s: %w", namespace, key, err)
	}
	return nil
}
