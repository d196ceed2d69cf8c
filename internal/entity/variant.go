package entity

// Variant selects the delivery form of a media object.
type Variant int

const (
	// VariantInline serves the stored bytes for in-page display.
	VariantInline Variant = iota
	// VariantThumbnail serves the reduced preview, falling back to the
	// original bytes when no precomputed thumbnail exists.
	VariantThumbnail
	// VariantOriginal serves the stored bytes as an explicit download.
	VariantOriginal
)

// ParseVariant maps the query flags of /api/gallery/file to a Variant.
// thumbnail=true wins over original=true when both are set.
func ParseVariant(thumbnail, original bool) Variant {
	switch {
	case thumbnail:
		return VariantThumbnail
	case original:
		return VariantOriginal
	default:
		return VariantInline
	}
}

func (v Variant) String() string {
	switch v {
	case VariantThumbnail:
		return "thumbnail"
	case VariantOriginal:
		return "original"
	default:
		return "inline"
	}
}
