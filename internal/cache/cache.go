// Package cache holds computed summaries so repeated selections skip the
// aggregation. Every implementation is optional: a miss just recomputes.
package cache

import (
	"context"
	"fmt"

	"qbr-dash/internal/qbr"
)

// Cache stores summaries by selection.
type Cache interface {
	Get(ctx context.Context, key string) ([]qbr.Summary, bool, error)
	Set(ctx context.Context, key string, rows []qbr.Summary) error
}

// Key builds the cache key for a mode and selected entity.
func Key(mode qbr.Mode, entity string) string {
	return fmt.Sprintf("%s:%s", mode, entity)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]qbr.Summary, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []qbr.Summary) error { return nil }
