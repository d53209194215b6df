// Copyright (c) 2026 StudyMate. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/studymate/api/internal/platform/constants"
)

// RedisLoginThrottle implements [LoginThrottle] using Redis fixed-window counters.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a new Redis-backed LoginThrottle.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
Failures reports the current failure count for a client key.

Description: An absent key counts as zero failures.

Parameters:
  - context: context.Context
  - clientKey: string (typically the caller's IP)

Returns:
  - int64: Failure count within the current window
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) Failures(context context.Context, clientKey string) (int64, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginFail, clientKey)

	// Get the counter from Redis
	count, err := throttle.client.Get(context, key).Int64()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	// Return the count
	return count, nil
}

/*
RecordFailure increments the failure counter for a client key.

Description: The first failure of a window starts the TTL; later failures
ride the same window, so the counter resets [LoginFailWindow] after the
first failure rather than the last.

Parameters:
  - context: context.Context
  - clientKey: string

Returns:
  - error: Execution errors
*/
func (throttle *RedisLoginThrottle) RecordFailure(context context.Context, clientKey string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginFail, clientKey)

	// Increment the counter
	count, err := throttle.client.Incr(context, key).Result()
	if err != nil {
		return fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// Start the window on the first failure only
	if count == 1 {
		if err := throttle.client.Expire(context, key, LoginFailWindow).Err(); err != nil {
			return fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	// Return nil on success
	return nil
}

/*
Reset clears the failure counter after a successful login.

Parameters:
  - context: context.Context
  - clientKey: string

Returns:
  - error: Deletion failures
*/
func (throttle *RedisLoginThrottle) Reset(context context.Context, clientKey string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixLoginFail, clientKey)

	// Delete the counter from Redis
	if err := throttle.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	// Return nil on success
	return nil
}
