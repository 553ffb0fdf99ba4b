package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"kompetensi_backend/internals/helpers/apperr"
)

type memObject struct {
	data         []byte
	contentType  string
	cacheControl string
	modTime      time.Time
}

// Memory adalah ObjectStorage in-process. Hook *Fn opsional dipakai test
// untuk menyuntik kegagalan (pola MockBlobService).
type Memory struct {
	mu      sync.RWMutex
	bucket  string
	baseURL string
	exists  bool
	objects map[string]memObject

	Now      func() time.Time
	UploadFn func(key string) error
	RemoveFn func(keys []string) error
}

func NewMemory(bucket, baseURL string) *Memory {
	return &Memory{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memObject),
		Now:     time.Now,
	}
}

func (m *Memory) Driver() string { return "memory" }
func (m *Memory) Bucket() string { return m.bucket }

func (m *Memory) EnsureBucket(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exists = true
	return nil
}

// BucketExists dipakai test untuk memastikan EnsureBucket terpanggil.
func (m *Memory) BucketExists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exists
}

func (m *Memory) Upload(ctx context.Context, key string, r io.Reader, size int64, opt UploadOptions) error {
	if m.UploadFn != nil {
		if err := m.UploadFn(key); err != nil {
			return err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return apperr.NewStorageError(apperr.ErrStorage, "upload", key, err)
	}
	opt = normalizeOptions(opt)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.exists {
		return apperr.NewStorageError(apperr.ErrBucketMissing, "upload", key, nil)
	}
	if _, ok := m.objects[key]; ok && !opt.Upsert {
		return errConflict("upload", key)
	}
	m.objects[key] = memObject{
		data:         data,
		contentType:  opt.ContentType,
		cacheControl: opt.CacheControl,
		modTime:      m.Now(),
	}
	return nil
}

func (m *Memory) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return m.baseURL + "/" + key
}

func (m *Memory) Remove(ctx context.Context, keys ...string) error {
	keys = cleanKeys(keys)
	if len(keys) == 0 {
		return nil
	}
	if m.RemoveFn != nil {
		if err := m.RemoveFn(keys); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.objects, k)
	}
	return nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ObjectInfo, 0)
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ObjectInfo{Key: k, Size: int64(len(o.data)), LastModified: o.modTime})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get mengembalikan isi + content-type object (khusus test).
func (m *Memory) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return bytes.Clone(o.data), o.contentType, true
}

func (m *Memory) SetModTime(key string, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.objects[key]; ok {
		o.modTime = t
		m.objects[key] = o
	}
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
