package thumbnailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

type Processor interface {
	Thumbnail(ctx context.Context, contentType string, data []byte) (processed []byte, producedType string, err error)
}

type ThumbnailerUseCase struct {
	blobs     repo.BlobRepo
	processor Processor
}

func New(blobs repo.BlobRepo, processor Processor) *ThumbnailerUseCase {
	return &ThumbnailerUseCase{blobs: blobs, processor: processor}
}

// Generate precomputes the thumbnail asset for one object. Generating for
// an already-covered or meanwhile-deleted key is a no-op, so duplicate
// tasks are harmless.
func (uc *ThumbnailerUseCase) Generate(ctx context.Context, task dto.ThumbnailTask) error {
	thumbKey := entity.ThumbnailKey(task.Key)

	_, err := uc.blobs.Head(ctx, thumbKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("ThumbnailerUseCase - Generate - uc.blobs.Head: %w", err)
	}

	data, meta, err := uc.blobs.GetBytes(ctx, task.Key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("ThumbnailerUseCase - Generate - uc.blobs.GetBytes: %w", err)
	}

	contentType := entity.MediaTypeForKey(task.Key, meta.ContentType)
	if task.ContentType != "" {
		contentType = task.ContentType
	}

	processed, producedType, err := uc.processor.Thumbnail(ctx, contentType, data)
	if err != nil {
		return fmt.Errorf("ThumbnailerUseCase - Generate - uc.processor.Thumbnail: %w", err)
	}

	err = uc.blobs.Put(ctx, thumbKey, processed, producedType)
	if err != nil {
		return fmt.Errorf("ThumbnailerUseCase - Generate - uc.blobs.Put: %w", err)
	}

	return nil
}
