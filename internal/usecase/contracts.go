package usecase

import (
	"context"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
)

type (
	GalleryUseCase interface {
		List(ctx context.Context, eventCode string) ([]entity.GalleryItem, error)
		Fetch(ctx context.Context, eventCode, key string, variant entity.Variant) (*entity.MediaDelivery, error)
		Archive(ctx context.Context, req dto.ArchiveRequest) ([]byte, error)
	}

	GuestUseCase interface {
		Tables(ctx context.Context, eventCode string) ([]entity.SeatingTable, error)
		SubmitRSVP(ctx context.Context, eventCode string, answers map[string]any) (*entity.RSVP, error)
		ListRSVP(ctx context.Context, eventCode string) ([]entity.RSVP, error)
	}

	ThumbnailerUseCase interface {
		Generate(ctx context.Context, task dto.ThumbnailTask) error
	}
)
