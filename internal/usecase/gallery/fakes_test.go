package gallery

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/orsoie/gallery-service/internal/dto"
	"github.com/orsoie/gallery-service/internal/entity"
	"github.com/orsoie/gallery-service/internal/repo"
	"github.com/orsoie/gallery-service/pkg/types/errs"
)

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

type fakeObject struct {
	data         []byte
	size         int64 // overrides len(data) when non-zero
	contentType  string
	metadata     map[string]string
	lastModified time.Time
}

func (o fakeObject) meta() repo.ObjectMeta {
	size := o.size
	if size == 0 {
		size = int64(len(o.data))
	}
	return repo.ObjectMeta{
		Size:           size,
		ContentType:    o.contentType,
		CustomMetadata: o.metadata,
		LastModified:   o.lastModified,
	}
}

// fakeBlobStore keys objects by name and lists them in insertion order.
type fakeBlobStore struct {
	mu      sync.Mutex
	order   []string
	objects map[string]fakeObject
	// listed but gone by Head/Get time, like a delete racing the listing
	phantoms map[string]fakeObject

	listErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects:  map[string]fakeObject{},
		phantoms: map[string]fakeObject{},
	}
}

func (s *fakeBlobStore) putPhantom(key string, obj fakeObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = append(s.order, key)
	s.phantoms[key] = obj
}

func (s *fakeBlobStore) put(key string, obj fakeObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		s.order = append(s.order, key)
	}
	s.objects[key] = obj
}

func (s *fakeBlobStore) remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
}

func (s *fakeBlobStore) List(_ context.Context, prefix string) ([]repo.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}

	var infos []repo.ObjectInfo
	for _, key := range s.order {
		obj, ok := s.objects[key]
		if !ok {
			obj, ok = s.phantoms[key]
		}
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		infos = append(infos, repo.ObjectInfo{
			Key:          key,
			Size:         obj.meta().Size,
			LastModified: obj.lastModified,
		})
	}

	return infos, nil
}

func (s *fakeBlobStore) Head(_ context.Context, key string) (*repo.ObjectMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, errs.ErrObjectNotFound
	}

	meta := obj.meta()

	return &meta, nil
}

func (s *fakeBlobStore) Get(_ context.Context, key string) (*repo.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, errs.ErrObjectNotFound
	}

	return &repo.Object{
		Body: io.NopCloser(bytes.NewReader(obj.data)),
		Meta: obj.meta(),
	}, nil
}

func (s *fakeBlobStore) GetBytes(ctx context.Context, key string) ([]byte, *repo.ObjectMeta, error) {
	obj, err := s.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	defer obj.Body.Close()

	b, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, nil, err
	}

	return b, &obj.Meta, nil
}

func (s *fakeBlobStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.put(key, fakeObject{data: data, contentType: contentType, lastModified: time.Now()})
	return nil
}

type fakeTaskSender struct {
	mu    sync.Mutex
	tasks []dto.ThumbnailTask
}

func (s *fakeTaskSender) SendTask(_ context.Context, task dto.ThumbnailTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	return nil
}

func (s *fakeTaskSender) Close() error { return nil }

func (s *fakeTaskSender) sent() []dto.ThumbnailTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.ThumbnailTask(nil), s.tasks...)
}

// passCache never hits, so every List rebuilds.
type passCache struct{}

func (passCache) Get(context.Context, string) ([]entity.GalleryItem, bool) { return nil, false }
func (passCache) Put(context.Context, string, []entity.GalleryItem)       {}
