package entity

import "time"

// GalleryItem is a derived view over one stored object. It is never
// persisted; every field is recomputed from the blob store listing.
type GalleryItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Size int64  `json:"size"`

	ContentType string    `json:"type"`
	CapturedAt  time.Time `json:"capturedAt"`

	IsImage bool `json:"isImage"`
	IsVideo bool `json:"isVideo"`

	ThumbnailURL string `json:"thumbnailUrl"`
	OriginalURL  string `json:"originalUrl"`

	// Rough client-side estimate of the thumbnail payload, used for
	// displaying bandwidth savings only.
	ThumbnailSize int64 `json:"thumbnailSize"`
}
