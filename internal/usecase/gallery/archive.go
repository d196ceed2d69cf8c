package gallery

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

type archiveEntry struct {
	name     string
	data     []byte
	modified time.Time
}

// Archive bundles the requested objects into one ZIP. Validation failures
// (no files, none in the event's folder, over the cap) fail the whole
// request; a failed fetch of a single object only drops that entry.
func (uc *GalleryUseCase) Archive(ctx context.Context, req dto.ArchiveRequest) ([]byte, error) {
	if len(req.Files) == 0 {
		return nil, errs.ErrNoFiles
	}

	prefix := req.EventCode + "/"

	valid := make([]string, 0, len(req.Files))
	for _, key := range req.Files {
		if strings.HasPrefix(key, prefix) {
			valid = append(valid, key)
		}
	}

	if len(valid) == 0 {
		return nil, errs.ErrNoValidFiles
	}
	if len(valid) > uc.maxArchiveFiles {
		return nil, fmt.Errorf("%w: %d requested, max %d", errs.ErrTooManyFiles, len(valid), uc.maxArchiveFiles)
	}

	// Fan out the fetches; entry slots keep the request order.
	entries := make([]*archiveEntry, len(valid))

	g := &errgroup.Group{}
	for i, key := range valid {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, uc.fetchTimeout)
			defer cancel()

			data, meta, err := uc.blobs.GetBytes(fetchCtx, key)
			if err != nil {
				uc.logger.Warn("GalleryUseCase - Archive - skipping %s: %v", key, err)

				return nil
			}

			entries[i] = &archiveEntry{
				name:     entity.BaseName(key),
				data:     data,
				modified: meta.LastModified,
			}

			return nil
		})
	}
	_ = g.Wait()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)

	for _, e := range entries {
		if e == nil {
			continue
		}

		// Stored, not deflated: the media is already compressed.
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Store,
			Modified: e.modified,
		})
		if err != nil {
			return nil, fmt.Errorf("GalleryUseCase - Archive - zw.CreateHeader: %w", err)
		}

		if _, err = w.Write(e.data); err != nil {
			return nil, fmt.Errorf("GalleryUseCase - Archive - w.Write: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("GalleryUseCase - Archive - zw.Close: %w", err)
	}

	return buf.Bytes(), nil
}
