package entity

import "testing"

func TestParseVariant(t *testing.T) {
	tests := []struct {
		thumbnail, original bool
		want                Variant
	}{
		{false, false, VariantInline},
		{true, false, VariantThumbnail},
		{false, true, VariantOriginal},
		{true, true, VariantThumbnail}, // thumbnail wins
	}

	for _, tc := range tests {
		if got := ParseVariant(tc.thumbnail, tc.original); got != tc.want {
			t.Errorf("ParseVariant(%v, %v) = %s, want %s", tc.thumbnail, tc.original, got, tc.want)
		}
	}
}
