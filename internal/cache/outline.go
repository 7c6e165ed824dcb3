// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// outline.go caches rendered tree outlines. Stored trees never change, so
// an entry stays valid until the tree is deleted or the TTL runs out.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// outlineKeyPrefix is the Valkey key prefix for rendered outlines.
	outlineKeyPrefix = "outline:"

	// DefaultOutlineTTL is how long a rendered outline stays cached.
	DefaultOutlineTTL = 30 * time.Minute
)

// OutlineFormats lists every format an outline may be cached in.
var OutlineFormats = []string{"markdown", "html"}

// OutlineCache manages rendered outline caching in Valkey.
type OutlineCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOutlineCache creates a new outline cache backed by the given Valkey client.
func NewOutlineCache(client *redis.Client, ttl time.Duration) *OutlineCache {
	if ttl == 0 {
		ttl = DefaultOutlineTTL
	}
	return &OutlineCache{client: client, ttl: ttl}
}

// OutlineKey returns the cache key of one rendering of a tree.
func OutlineKey(treeID uuid.UUID, format string) string {
	return outlineKeyPrefix + treeID.String() + ":" + format
}

// Get retrieves a cached rendering. Errors count as a miss.
func (oc *OutlineCache) Get(ctx context.Context, treeID uuid.UUID, format string) ([]byte, bool) {
	val, err := oc.client.Get(ctx, OutlineKey(treeID, format)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("outline cache get error", "tree_id", treeID, "format", format, "error", err)
		return nil, false
	}
	slog.Debug("outline cache hit", "tree_id", treeID, "format", format)
	return val, true
}

// Set stores a rendering with the configured TTL.
func (oc *OutlineCache) Set(ctx context.Context, treeID uuid.UUID, format string, body []byte) {
	if err := oc.client.Set(ctx, OutlineKey(treeID, format), body, oc.ttl).Err(); err != nil {
		slog.Warn("outline cache set error", "tree_id", treeID, "format", format, "error", err)
	}
}

// Invalidate removes every cached rendering of a tree.
func (oc *OutlineCache) Invalidate(ctx context.Context, treeID uuid.UUID) {
	keys := make([]string, len(OutlineFormats))
	for i, f := range OutlineFormats {
		keys[i] = OutlineKey(treeID, f)
	}
	if err := oc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("outline cache invalidate error", "tree_id", treeID, "error", err)
		return
	}
	slog.Debug("outline cache invalidated", "tree_id", treeID)
}

// InvalidateAll removes all cached outlines by scanning for the prefix.
func (oc *OutlineCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := oc.client.Scan(ctx, cursor, outlineKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("outline cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := oc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("outline cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("outline cache fully cleared", "deleted", deleted)
	}
}
