package gallery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

// List returns the gallery index for one event, serving a cached snapshot
// while it is fresh. Two requests racing past the freshness window rebuild
// twice; both snapshots are valid and the last Put wins.
func (uc *GalleryUseCase) List(ctx context.Context, eventCode string) ([]entity.GalleryItem, error) {
	if items, ok := uc.cache.Get(ctx, eventCode); ok {
		return items, nil
	}

	items, err := uc.buildIndex(ctx, eventCode)
	if err != nil {
		return nil, fmt.Errorf("GalleryUseCase - List - uc.buildIndex: %w", err)
	}

	uc.cache.Put(ctx, eventCode, items)

	return items, nil
}

// buildIndex drains the listing under <eventCode>/, keeps media files only
// and enriches each survivor with per-object metadata, concurrently.
func (uc *GalleryUseCase) buildIndex(ctx context.Context, eventCode string) ([]entity.GalleryItem, error) {
	prefix := eventCode + "/"

	objects, err := uc.blobs.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("uc.blobs.List: %w", err)
	}

	media := objects[:0:0]
	for _, obj := range objects {
		if entity.IsAllowedMediaKey(obj.Key) {
			media = append(media, obj)
		}
	}

	// Index-addressed so the fan-out keeps the listing order; the later
	// stable sort then breaks timestamp ties by that order.
	items := make([]*entity.GalleryItem, len(media))

	g, gctx := errgroup.WithContext(ctx)
	for i, obj := range media {
		g.Go(func() error {
			meta, err := uc.blobs.Head(gctx, obj.Key)
			if err != nil {
				// Deleted between list and head: drop the item.
				if errors.Is(err, errs.ErrObjectNotFound) {
					return nil
				}
				return fmt.Errorf("uc.blobs.Head %s: %w", obj.Key, err)
			}

			item := uc.buildItem(eventCode, obj, meta)
			items[i] = &item

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]entity.GalleryItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			result = append(result, *item)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CapturedAt.Before(result[j].CapturedAt)
	})

	return result, nil
}

func (uc *GalleryUseCase) buildItem(eventCode string, obj repo.ObjectInfo, meta *repo.ObjectMeta) entity.GalleryItem {
	contentType := entity.MediaTypeForKey(obj.Key, meta.ContentType)
	isImage := entity.IsImageType(contentType)
	isVideo := entity.IsVideoType(contentType)

	baseURL := fmt.Sprintf("/api/gallery/file?event_code=%s&key=%s",
		url.QueryEscape(eventCode), url.QueryEscape(obj.Key))

	thumbnailURL := baseURL
	if isImage {
		thumbnailURL += "&thumbnail=true"
	}

	item := entity.GalleryItem{
		Key:           obj.Key,
		Name:          entity.BaseName(obj.Key),
		Size:          obj.Size,
		ContentType:   contentType,
		CapturedAt:    resolveCapturedAt(obj, meta),
		IsImage:       isImage,
		IsVideo:       isVideo,
		ThumbnailURL:  thumbnailURL,
		OriginalURL:   baseURL + "&original=true",
		ThumbnailSize: obj.Size,
	}

	if isImage {
		item.ThumbnailSize = int64(math.Round(float64(obj.Size) * 0.03))
	}

	return item
}
