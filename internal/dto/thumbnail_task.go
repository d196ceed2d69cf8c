package dto

// ThumbnailTask asks the worker to precompute a thumbnail for one object.
type ThumbnailTask struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
}
