package gallery

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

func TestFetchRejectsCrossTenantKey(t *testing.T) {
	store := newFakeBlobStore()
	store.put("wedding2/secret.jpg", fakeObject{data: []byte("s")})

	_, err := newTestUseCase(store).Fetch(t.Context(), "wedding1", "wedding2/secret.jpg", entity.VariantOriginal)
	if !errors.Is(err, errs.ErrForbiddenKey) {
		t.Fatalf("expected ErrForbiddenKey, got %v", err)
	}
}

func TestFetchMissingObject(t *testing.T) {
	store := newFakeBlobStore()

	_, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/missing.jpg", entity.VariantInline)
	if !errors.Is(err, errs.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestFetchOriginalIsAttachment(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("jpeg-bytes"), contentType: "image/jpeg"})

	d, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/a.jpg", entity.VariantOriginal)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Body.Close()

	if d.Disposition != `attachment; filename="a.jpg"` {
		t.Errorf("unexpected disposition %q", d.Disposition)
	}
	if d.CacheControl != "public, max-age=86400" {
		t.Errorf("unexpected cache control %q", d.CacheControl)
	}
	if d.ContentType != "image/jpeg" {
		t.Errorf("unexpected content type %q", d.ContentType)
	}
}

func TestFetchInlineHasNoCachePolicy(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("x"), contentType: "image/jpeg"})

	d, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/a.jpg", entity.VariantInline)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Body.Close()

	if d.Disposition != `inline; filename="a.jpg"` {
		t.Errorf("unexpected disposition %q", d.Disposition)
	}
	if d.CacheControl != "" {
		t.Errorf("inline variant should not set cache control, got %q", d.CacheControl)
	}
}

func TestFetchThumbnailForVideoReturnsOriginalBytes(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/b.mp4", fakeObject{data: []byte("video-bytes"), contentType: "video/mp4"})

	uc := newTestUseCase(store)

	thumb, err := uc.Fetch(t.Context(), "w", "w/b.mp4", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	thumbBytes, _ := io.ReadAll(thumb.Body)
	thumb.Body.Close()

	orig, err := uc.Fetch(t.Context(), "w", "w/b.mp4", entity.VariantOriginal)
	if err != nil {
		t.Fatal(err)
	}
	origBytes, _ := io.ReadAll(orig.Body)
	orig.Body.Close()

	if string(thumbBytes) != string(origBytes) {
		t.Error("thumbnail variant of a video must be byte-identical to the original")
	}
}

func TestFetchThumbnailPrefersPrecomputedAsset(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("original"), contentType: "image/jpeg"})
	store.put("thumbnails/w/a.jpg", fakeObject{data: []byte("small")})

	d, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/a.jpg", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Body.Close()

	got, _ := io.ReadAll(d.Body)
	if string(got) != "small" {
		t.Errorf("expected precomputed bytes, got %q", got)
	}
	if d.ContentType != "image/webp" {
		t.Errorf("untyped precomputed asset should default to image/webp, got %s", d.ContentType)
	}
	if d.Disposition != `inline; filename="thumb_a.jpg"` {
		t.Errorf("unexpected disposition %q", d.Disposition)
	}
}

func TestFetchThumbnailMissFallsBackToOriginal(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("original"), contentType: "image/jpeg"})

	d, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/a.jpg", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Body.Close()

	got, _ := io.ReadAll(d.Body)
	if string(got) != "original" {
		t.Errorf("expected original bytes on miss, got %q", got)
	}
	if d.ContentType != "image/jpeg" {
		t.Errorf("fallback keeps the image's own content type, got %s", d.ContentType)
	}
	// Small image tier.
	if d.CacheControl != "public, max-age=3600" {
		t.Errorf("unexpected cache control %q", d.CacheControl)
	}
}

func TestFetchThumbnailMissCacheTierForLargeImage(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/big.jpg", fakeObject{data: []byte("x"), size: 2_000_000, contentType: "image/jpeg"})

	d, err := newTestUseCase(store).Fetch(t.Context(), "w", "w/big.jpg", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Body.Close()

	if d.CacheControl != "public, max-age=7200" {
		t.Errorf("unexpected cache control %q", d.CacheControl)
	}
}

func TestFetchThumbnailMissQueuesGeneration(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("original"), contentType: "image/jpeg"})

	sender := &fakeTaskSender{}
	uc := New(store, passCache{}, sender, 20, time.Second, nopLogger{})

	d, err := uc.Fetch(t.Context(), "w", "w/a.jpg", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	d.Body.Close()

	tasks := sender.sent()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 queued task, got %d", len(tasks))
	}
	if tasks[0].Key != "w/a.jpg" || tasks[0].ContentType != "image/jpeg" {
		t.Errorf("unexpected task %+v", tasks[0])
	}
}

func TestFetchThumbnailHitDoesNotQueue(t *testing.T) {
	store := newFakeBlobStore()
	store.put("w/a.jpg", fakeObject{data: []byte("original"), contentType: "image/jpeg"})
	store.put("thumbnails/w/a.jpg", fakeObject{data: []byte("small"), contentType: "image/jpeg"})

	sender := &fakeTaskSender{}
	uc := New(store, passCache{}, sender, 20, time.Second, nopLogger{})

	d, err := uc.Fetch(t.Context(), "w", "w/a.jpg", entity.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	d.Body.Close()

	if len(sender.sent()) != 0 {
		t.Error("hit on a precomputed thumbnail must not queue generation")
	}
}
