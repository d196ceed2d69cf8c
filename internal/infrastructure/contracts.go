package infrastructure

import (
	"context"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
)

type (
	// ListingCache memoizes gallery listings per event. Implementations
	// decide the freshness window; a stale or missing entry reports ok=false.
	ListingCache interface {
		Get(ctx context.Context, eventCode string) (items []entity.GalleryItem, ok bool)
		Put(ctx context.Context, eventCode string, items []entity.GalleryItem)
	}

	TaskSender interface {
		SendTask(ctx context.Context, task dto.ThumbnailTask) error
		Close() error
	}
)
