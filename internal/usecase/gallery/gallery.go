package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/internal/infrastructure"
	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/logger"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

const (
	ArchiveFilename    = "gallery.zip"
	ArchiveContentType = "application/zip"

	// Below this size an image miss-served as its own thumbnail gets the
	// shorter cache lifetime, matching the reference tiers.
	_smallImageBytes = 500_000

	_longCache   = "public, max-age=86400"
	_mediumCache = "public, max-age=7200"
	_shortCache  = "public, max-age=3600"
)

type GalleryUseCase struct {
	blobs repo.BlobRepo
	cache infrastructure.ListingCache
	// nil when the precompute pipeline is disabled.
	tasks infrastructure.TaskSender

	maxArchiveFiles int
	fetchTimeout    time.Duration

	logger logger.Interface
}

func New(
	blobs repo.BlobRepo,
	cache infrastructure.ListingCache,
	tasks infrastructure.TaskSender,
	maxArchiveFiles int,
	fetchTimeout time.Duration,
	l logger.Interface,
) *GalleryUseCase {
	return &GalleryUseCase{
		blobs:           blobs,
		cache:           cache,
		tasks:           tasks,
		maxArchiveFiles: maxArchiveFiles,
		fetchTimeout:    fetchTimeout,
		logger:          l,
	}
}

// Fetch resolves one (key, variant) pair to a byte stream plus delivery
// headers. The prefix check against eventCode is the only access control
// in the system.
func (uc *GalleryUseCase) Fetch(ctx context.Context, eventCode, key string, variant entity.Variant) (*entity.MediaDelivery, error) {
	if !strings.HasPrefix(key, eventCode+"/") {
		return nil, errs.ErrForbiddenKey
	}

	obj, err := uc.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("GalleryUseCase - Fetch - uc.blobs.Get: %w", err)
	}

	name := entity.BaseName(key)
	contentType := entity.MediaTypeForKey(key, obj.Meta.ContentType)

	switch variant {
	case entity.VariantThumbnail:
		if entity.IsImageType(contentType) {
			return uc.fetchImageThumbnail(ctx, key, name, contentType, obj), nil
		}

		// No distinct thumbnail exists for non-images; serve the original.
		return &entity.MediaDelivery{
			Body:         obj.Body,
			Size:         obj.Meta.Size,
			ContentType:  contentType,
			CacheControl: _mediumCache,
			Disposition:  fmt.Sprintf("inline; filename=%q", name),
		}, nil

	case entity.VariantOriginal:
		return &entity.MediaDelivery{
			Body:         obj.Body,
			Size:         obj.Meta.Size,
			ContentType:  contentType,
			CacheControl: _longCache,
			Disposition:  fmt.Sprintf("attachment; filename=%q", name),
		}, nil

	default:
		return &entity.MediaDelivery{
			Body:        obj.Body,
			Size:        obj.Meta.Size,
			ContentType: contentType,
			Disposition: fmt.Sprintf("inline; filename=%q", name),
		}, nil
	}
}

// fetchImageThumbnail prefers the precomputed asset under thumbnails/<key>
// and falls back to the original bytes, queueing generation on a miss.
func (uc *GalleryUseCase) fetchImageThumbnail(ctx context.Context, key, name, contentType string, obj *repo.Object) *entity.MediaDelivery {
	thumb, err := uc.blobs.Get(ctx, entity.ThumbnailKey(key))
	if err == nil {
		obj.Body.Close()

		thumbType := thumb.Meta.ContentType
		if thumbType == "" {
			thumbType = "image/webp"
		}

		return &entity.MediaDelivery{
			Body:         thumb.Body,
			Size:         thumb.Meta.Size,
			ContentType:  thumbType,
			CacheControl: _longCache,
			Disposition:  fmt.Sprintf("inline; filename=%q", "thumb_"+name),
		}
	}

	if !errors.Is(err, errs.ErrObjectNotFound) {
		uc.logger.Warn("GalleryUseCase - fetchImageThumbnail - thumbnail lookup failed for %s: %v", key, err)
	} else {
		uc.enqueueThumbnail(ctx, key, contentType)
	}

	cacheControl := _mediumCache
	if obj.Meta.Size < _smallImageBytes {
		cacheControl = _shortCache
	}

	return &entity.MediaDelivery{
		Body:         obj.Body,
		Size:         obj.Meta.Size,
		ContentType:  contentType,
		CacheControl: cacheControl,
		Disposition:  fmt.Sprintf("inline; filename=%q", "thumb_"+name),
	}
}

func (uc *GalleryUseCase) enqueueThumbnail(ctx context.Context, key, contentType string) {
	if uc.tasks == nil {
		return
	}

	err := uc.tasks.SendTask(ctx, dto.ThumbnailTask{Key: key, ContentType: contentType})
	if err != nil {
		uc.logger.Warn("GalleryUseCase - enqueueThumbnail - failed for %s: %v", key, err)
	}
}
