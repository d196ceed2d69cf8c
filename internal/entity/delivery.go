package entity

import "io"

// MediaDelivery is one resolved (object, variant) response: the byte stream
// plus the headers the proxy must set.
type MediaDelivery struct {
	Body io.ReadCloser
	Size int64

	ContentType  string
	CacheControl string
	// Full Content-Disposition value, e.g. `inline; filename="a.jpg"`.
	Disposition string
}
