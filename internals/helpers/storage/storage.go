// Package storage membungkus object storage (bucket) di balik satu interface.
//
// Driver yang tersedia: supabase (REST), s3 (S3-compatible, termasuk endpoint
// S3 Supabase), oss (Aliyun) dan memory (test/dev). Semua error native
// diklasifikasikan ke apperr.StorageError.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"kompetensi_backend/internals/configs"
	"kompetensi_backend/internals/helpers/apperr"
)

const (
	DefaultCacheControl = "3600"
	ImmutableCache      = "public, max-age=31536000, immutable"

	// batas satu batch delete (sama untuk S3 & OSS)
	deleteBatchSize = 1000
)

type UploadOptions struct {
	ContentType  string
	CacheControl string
	Upsert       bool
}

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type ObjectStorage interface {
	Driver() string
	Bucket() string
	// EnsureBucket cek keberadaan bucket, buat kalau belum ada.
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key string, r io.Reader, size int64, opt UploadOptions) error
	PublicURL(key string) string
	Remove(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New memilih driver sesuai STORAGE_DRIVER.
func New(ctx context.Context, cfg configs.StorageConfig) (ObjectStorage, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(cfg.Bucket, "memory://"+cfg.Bucket), nil
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.ServiceKey == "" {
			return nil, fmt.Errorf("supabase storage requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
		return NewSupabase(cfg.SupabaseURL, cfg.ServiceKey, cfg.Bucket, cfg.Public, nil), nil
	case "s3":
		return NewS3(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	case "oss":
		return NewOSS(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.Bucket, cfg.Public)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

/* =======================================================================
   Key utils
======================================================================= */

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename: sisakan huruf, angka, titik, dash, underscore.
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == "/" {
		name = ""
	}
	safe := unsafeName.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "file"
	}
	return safe
}

// GenerateObjectKey → "<folder>/<yyyymmdd>-<uuid>-<nama aman>".
func GenerateObjectKey(folder, originalFilename string, now time.Time) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		strings.Trim(folder, "/"),
		now.Format("20060102"),
		uuid.New().String(),
		SanitizeFilename(originalFilename),
	)
}

// DetectContentType pakai ekstensi dulu, lalu sniff 512 byte pertama.
func DetectContentType(filename string, head []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return "application/octet-stream"
}

func normalizeOptions(opt UploadOptions) UploadOptions {
	if opt.ContentType == "" {
		opt.ContentType = "application/octet-stream"
	}
	if opt.CacheControl == "" {
		opt.CacheControl = DefaultCacheControl
	}
	return opt
}

// cacheHeader: Supabase menerima angka detik saja, S3/OSS butuh header penuh.
func cacheHeader(v string) string {
	if v == "" {
		return "max-age=" + DefaultCacheControl
	}
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
		return "max-age=" + v
	}
	return v
}

func chunk(keys []string, size int) [][]string {
	var out [][]string
	for i := 0; i < len(keys); i += size {
		end := i + size
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[i:end])
	}
	return out
}

func cleanKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimLeft(strings.TrimSpace(k), "/"); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func errConflict(op, key string) error {
	return apperr.NewStorageError(apperr.ErrStorage, op, key, fmt.Errorf("object already exists"))
}

// Upload adalah file masuk (biasanya dari multipart) yang siap dikirim ke bucket.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// Ext: ekstensi lowercase tanpa titik.
func (u *Upload) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(u.Filename)), ".")
}

// Close menutup Body kalau bisa ditutup.
func (u *Upload) Close() error {
	if u == nil {
		return nil
	}
	if c, ok := u.Body.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
