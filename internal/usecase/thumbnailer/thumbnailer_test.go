package thumbnailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

type storedBlob struct {
	data        []byte
	contentType string
}

type fakeBlobStore struct {
	blobs map[string]storedBlob
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string]storedBlob)}
}

func (s *fakeBlobStore) List(context.Context, string) ([]repo.ObjectInfo, error) {
	return nil, nil
}

func (s *fakeBlobStore) Head(_ context.Context, key string) (*repo.ObjectMeta, error) {
	b, ok := s.blobs[key]
	if !ok {
		return nil, errs.ErrObjectNotFound
	}

	return &repo.ObjectMeta{Size: int64(len(b.data)), ContentType: b.contentType}, nil
}

func (s *fakeBlobStore) Get(ctx context.Context, key string) (*repo.Object, error) {
	meta, err := s.Head(ctx, key)
	if err != nil {
		return nil, err
	}

	return &repo.Object{Body: io.NopCloser(bytes.NewReader(s.blobs[key].data)), Meta: *meta}, nil
}

func (s *fakeBlobStore) GetBytes(ctx context.Context, key string) ([]byte, *repo.ObjectMeta, error) {
	meta, err := s.Head(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	return s.blobs[key].data, meta, nil
}

func (s *fakeBlobStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.blobs[key] = storedBlob{data: data, contentType: contentType}
	return nil
}

type fakeProcessor struct {
	calls int
	err   error
}

func (p *fakeProcessor) Thumbnail(_ context.Context, _ string, data []byte) ([]byte, string, error) {
	p.calls++
	if p.err != nil {
		return nil, "", p.err
	}

	return append([]byte("thumb:"), data...), "image/jpeg", nil
}

func TestGenerateStoresThumbnail(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["w/a.jpg"] = storedBlob{data: []byte("original"), contentType: "image/jpeg"}

	proc := &fakeProcessor{}

	err := New(store, proc).Generate(t.Context(), dto.ThumbnailTask{Key: "w/a.jpg", ContentType: "image/jpeg"})
	if err != nil {
		t.Fatal(err)
	}

	got, ok := store.blobs["thumbnails/w/a.jpg"]
	if !ok {
		t.Fatal("expected the thumbnail asset to be stored")
	}
	if string(got.data) != "thumb:original" {
		t.Errorf("unexpected thumbnail bytes %q", got.data)
	}
	if got.contentType != "image/jpeg" {
		t.Errorf("unexpected content type %q", got.contentType)
	}
}

func TestGenerateSkipsExistingThumbnail(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["w/a.jpg"] = storedBlob{data: []byte("original")}
	store.blobs["thumbnails/w/a.jpg"] = storedBlob{data: []byte("already there")}

	proc := &fakeProcessor{}

	err := New(store, proc).Generate(t.Context(), dto.ThumbnailTask{Key: "w/a.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if proc.calls != 0 {
		t.Error("must not reprocess a key that already has a thumbnail")
	}
	if string(store.blobs["thumbnails/w/a.jpg"].data) != "already there" {
		t.Error("existing thumbnail must not be overwritten")
	}
}

func TestGenerateIgnoresDeletedOriginal(t *testing.T) {
	proc := &fakeProcessor{}

	err := New(newFakeBlobStore(), proc).Generate(t.Context(), dto.ThumbnailTask{Key: "w/gone.jpg"})
	if err != nil {
		t.Fatalf("a deleted original is a no-op, got %v", err)
	}
	if proc.calls != 0 {
		t.Error("nothing to process when the original is gone")
	}
}

func TestGenerateReportsProcessingFailure(t *testing.T) {
	store := newFakeBlobStore()
	store.blobs["w/bad.jpg"] = storedBlob{data: []byte("not an image")}

	wantErr := errors.New("decode failed")

	err := New(store, &fakeProcessor{err: wantErr}).Generate(t.Context(), dto.ThumbnailTask{Key: "w/bad.jpg"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the processor error, got %v", err)
	}
	if _, ok := store.blobs["thumbnails/w/bad.jpg"]; ok {
		t.Error("no asset must be stored on failure")
	}
}
