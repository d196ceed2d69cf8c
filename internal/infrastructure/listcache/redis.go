package listcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/pkg/logger"
	"github.com/orsoie/gallery-service/pkg/redisclient"
)

const _keyPrefix = "gallery:listing:"

// Redis shares listing snapshots between instances. Freshness rides on the
// key TTL, so Get never has to compare timestamps.
type Redis struct {
	rc     *redisclient.RedisClient
	ttl    time.Duration
	logger logger.Interface
}

func NewRedis(rc *redisclient.RedisClient, ttl time.Duration, l logger.Interface) *Redis {
	return &Redis{rc: rc, ttl: ttl, logger: l}
}

func (r *Redis) Get(ctx context.Context, eventCode string) ([]entity.GalleryItem, bool) {
	raw, err := r.rc.Client.Get(ctx, _keyPrefix+eventCode).Bytes()
	if err != nil {
		// redis.Nil and transport errors both mean "rebuild".
		return nil, false
	}

	var items []entity.GalleryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Warn("listcache - Redis - Get - corrupt entry for %s: %v", eventCode, err)

		return nil, false
	}

	return items, true
}

func (r *Redis) Put(ctx context.Context, eventCode string, items []entity.GalleryItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		r.logger.Error(err, "listcache - Redis - Put - json.Marshal")

		return
	}

	err = r.rc.Client.Set(ctx, _keyPrefix+eventCode, raw, r.ttl).Err()
	if err != nil {
		r.logger.Warn("listcache - Redis - Put - set failed for %s: %v", eventCode, err)
	}
}
