package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // window in which failures are counted
	BlockDuration time.Duration // how long a block lasts
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed logins per email in redis and blocks the email
// once MaxAttempts is reached. A nil redis client disables tracking entirely.
type LoginTracker struct {
	client *goredis.Client
	config LoginTrackerConfig
	logger *SecurityLogger
}

// NewLoginTracker creates a new login tracker with the given config
func NewLoginTracker(client *goredis.Client, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	return &LoginTracker{
		client: client,
		config: config,
		logger: logger,
	}
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:login:email:"
	blockedLoginPrefix = "blocked:login:email:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// Enabled reports whether failed attempts are being tracked.
func (lt *LoginTracker) Enabled() bool {
	return lt != nil && lt.client != nil
}

// IsBlocked checks if the given email is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	if !lt.Enabled() {
		return false, nil
	}

	exists, err := lt.client.Exists(ctx, blockedLoginPrefix+normalizeEmail(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailedAttempt records a failed login attempt and returns whether the email is now blocked
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, error) {
	lt.logger.LogLoginFailed(ctx, email, ip, userAgent, requestID, "invalid_credentials")
	if !lt.Enabled() {
		return false, nil
	}

	key := failLoginPrefix + normalizeEmail(email)
	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment login counter: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}

	if int(count) < lt.config.MaxAttempts {
		return false, nil
	}

	blockKey := blockedLoginPrefix + normalizeEmail(email)
	if err := lt.client.Set(ctx, blockKey, "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set login block: %w", err)
	}
	lt.logger.LogBlockCreated(ctx, "email", email, ip, requestID, int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, email string) error {
	if !lt.Enabled() {
		return nil
	}
	if err := lt.client.Del(ctx, failLoginPrefix+normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
