package entity

import (
	"path"
	"strings"
)

// Objects under "thumbnails/<key>" hold precomputed thumbnail assets.
const ThumbnailKeyPrefix = "thumbnails/"

// Fixed extension -> MIME table. Objects with any other extension are
// invisible to the gallery, whatever their stored content type.
var mediaTypesByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

func IsAllowedMediaKey(key string) bool {
	_, ok := mediaTypesByExt[strings.ToLower(path.Ext(key))]
	return ok
}

// MediaTypeForKey resolves a content type for key: the stored one when
// present, the extension table otherwise, octet-stream as a last resort.
func MediaTypeForKey(key, storedContentType string) string {
	if storedContentType != "" {
		return storedContentType
	}
	if mt, ok := mediaTypesByExt[strings.ToLower(path.Ext(key))]; ok {
		return mt
	}
	return "application/octet-stream"
}

func IsImageType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

func IsVideoType(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}

func ThumbnailKey(key string) string {
	return ThumbnailKeyPrefix + key
}

// BaseName returns the display filename, the last path segment of key.
func BaseName(key string) string {
	return path.Base(key)
}
