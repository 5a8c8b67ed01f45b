// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
)

// visitTTL forgets visitors that have not come back for a year.
const visitTTL = 365 * 24 * time.Hour

// RedisVisitCounter implements [VisitCounter] with one INCR key per visitor.
type RedisVisitCounter struct {
	client redis.UniversalClient
}

func NewRedisVisitCounter(client redis.UniversalClient) *RedisVisitCounter {
	return &RedisVisitCounter{client: client}
}

/*
Hit increments the visitor's counter and refreshes its expiry in one
MULTI/EXEC, then returns the value before the increment.
*/
func (counter *RedisVisitCounter) Hit(ctx context.Context, visitor string) (int64, error) {
	key := constants.RedisPrefixVisits + visitor

	var incr *redis.IntCmd
	_, err := counter.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, visitTTL)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_visit_incr_failed: %w", err)
	}

	return incr.Val() - 1, nil
}
