package gallery

import (
	"strings"
	"time"

	"github.com/orsoie/gallery-service/internal/repo"
)

// Custom metadata field uploaders stamp with the client-side capture time.
const _uploadedAtMetaKey = "uploadedat"

type timestampSource func() (time.Time, bool)

// resolveCapturedAt tries each timestamp source in priority order: the
// explicit uploadedAt custom metadata first, then the per-object
// last-modified, then the listing's last-modified.
func resolveCapturedAt(obj repo.ObjectInfo, meta *repo.ObjectMeta) time.Time {
	sources := []timestampSource{
		func() (time.Time, bool) { return uploadedAtFromMetadata(meta.CustomMetadata) },
		func() (time.Time, bool) { return meta.LastModified, !meta.LastModified.IsZero() },
		func() (time.Time, bool) { return obj.LastModified, !obj.LastModified.IsZero() },
	}

	for _, source := range sources {
		if ts, ok := source(); ok {
			return ts
		}
	}

	return time.Time{}
}

// uploadedAtFromMetadata is case-insensitive on the key: S3-compatible
// stores are free to normalize user metadata casing.
func uploadedAtFromMetadata(metadata map[string]string) (time.Time, bool) {
	for k, v := range metadata {
		if !strings.EqualFold(k, _uploadedAtMetaKey) {
			continue
		}

		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}

		return ts, true
	}

	return time.Time{}, false
}
