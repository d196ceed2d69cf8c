package repo

import (
	"context"
	"io"
	"time"

	"github.com/orsoie/gallery-service/internal/entity"
)

type (
	// ObjectInfo is one entry of a bucket listing.
	ObjectInfo struct {
		Key          string
		Size         int64
		LastModified time.Time
	}

	// ObjectMeta is the per-object metadata the blob store keeps.
	ObjectMeta struct {
		Size           int64
		ContentType    string
		CustomMetadata map[string]string
		LastModified   time.Time
	}

	// Object is a fetched blob. Callers own Body and must close it.
	Object struct {
		Body io.ReadCloser
		Meta ObjectMeta
	}

	BlobRepo interface {
		// List drains every page under prefix before returning.
		List(ctx context.Context, prefix string) ([]ObjectInfo, error)
		Head(ctx context.Context, key string) (*ObjectMeta, error)
		Get(ctx context.Context, key string) (*Object, error)
		GetBytes(ctx context.Context, key string) ([]byte, *ObjectMeta, error)
		Put(ctx context.Context, key string, data []byte, contentType string) error
	}

	GuestRepo interface {
		Tables(ctx context.Context, eventCode string) ([]entity.SeatingTable, error)
		CreateRSVP(ctx context.Context, rsvp *entity.RSVP) error
		ListRSVP(ctx context.Context, eventCode string) ([]entity.RSVP, error)
	}
)
