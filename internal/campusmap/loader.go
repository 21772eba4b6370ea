// Package campusmap serves the campus map: per-page PDF documents held in
// S3, a redis byte cache in front of them, and the room markers overlaid
// on page 6.
package campusmap

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-events/portal/pkg/redis"
	"github.com/campus-events/portal/pkg/storage"
)

const (
	pageKeyPrefix = "map:page:"
	countKey      = "map:pages"
	cacheTTL      = time.Hour
)

// ErrPageNotFound means the requested page has no document in the bucket.
var ErrPageNotFound = errors.New("map page not found")

// Loader fetches map page documents, redis first, S3 on a miss.
type Loader struct {
	s3     *storage.S3
	rdb    *redis.Client
	logger *zap.Logger
}

// NewLoader creates a map page loader.
func NewLoader(s3 *storage.S3, rdb *redis.Client, logger *zap.Logger) *Loader {
	return &Loader{s3: s3, rdb: rdb, logger: logger}
}

// LoadPage returns the raw PDF bytes for a page.
func (l *Loader) LoadPage(ctx context.Context, page int) ([]byte, error) {
	if page < 1 {
		return nil, ErrPageNotFound
	}
	key := pageKeyPrefix + strconv.Itoa(page)
	if data, err := l.rdb.Get(ctx, key).Bytes(); err == nil && len(data) > 0 {
		return data, nil
	} else if err != nil && !errors.Is(err, goredis.Nil) {
		l.logger.Warn("map cache read failed", zap.Int("page", page), zap.Error(err))
	}

	data, err := l.s3.DownloadMapPage(ctx, page)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: page %d", ErrPageNotFound, page)
	}
	if err := l.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		l.logger.Warn("map cache write failed", zap.Int("page", page), zap.Error(err))
	}
	return data, nil
}

// PageCount returns the total number of map pages, cached in redis.
func (l *Loader) PageCount(ctx context.Context) (int, error) {
	if n, err := l.rdb.Get(ctx, countKey).Int(); err == nil && n > 0 {
		return n, nil
	}
	n, err := l.s3.PageCount(ctx)
	if err != nil {
		return 0, err
	}
	if err := l.rdb.Set(ctx, countKey, n, cacheTTL).Err(); err != nil {
		l.logger.Warn("map cache write failed", zap.Error(err))
	}
	return n, nil
}

// InvalidatePage drops the cache entries touched by an upload.
func (l *Loader) InvalidatePage(ctx context.Context, page int) {
	if err := l.rdb.Del(ctx, pageKeyPrefix+strconv.Itoa(page), countKey).Err(); err != nil {
		l.logger.Warn("map cache invalidation failed", zap.Int("page", page), zap.Error(err))
	}
}
