package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	jujuerrors "github.com/juju/errors"

	"kompetensi_backend/internals/helpers/apperr"
)

// OSS: driver Aliyun Object Storage Service.
type OSS struct {
	client   *oss.Client
	bkt      *oss.Bucket
	endpoint string
	bucket   string
	public   bool
}

func NewOSS(endpoint, accessKeyID, accessKeySecret, bucket string, public bool) (*OSS, error) {
	endpoint = normalizeEndpoint(endpoint)
	if endpoint == "" || accessKeyID == "" || accessKeySecret == "" || bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/STORAGE_BUCKET")
	}
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	return &OSS{client: client, bkt: bkt, endpoint: endpoint, bucket: bucket, public: public}, nil
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	return strings.TrimRight(ep, "/")
}

func (s *OSS) Driver() string { return "oss" }
func (s *OSS) Bucket() string { return s.bucket }

func (s *OSS) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.IsBucketExist(s.bucket)
	if err != nil {
		return apperr.NewStorageError(classifyOSS(err), "bucket", s.bucket, err)
	}
	if ok {
		return nil
	}
	acl := oss.ACLPrivate
	if s.public {
		acl = oss.ACLPublicRead
	}
	if err := s.client.CreateBucket(s.bucket, oss.ACL(acl)); err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.Code == "BucketAlreadyExists" {
			return nil
		}
		return apperr.NewStorageError(classifyOSS(err), "create bucket", s.bucket, err)
	}
	return nil
}

func (s *OSS) Upload(ctx context.Context, key string, r io.Reader, size int64, opt UploadOptions) error {
	opt = normalizeOptions(opt)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(opt.ContentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl(cacheHeader(opt.CacheControl)),
		oss.ForbidOverWrite(!opt.Upsert),
	}
	if err := s.bkt.PutObject(key, r, opts...); err != nil {
		return apperr.NewStorageError(classifyOSS(err), "upload", key, err)
	}
	return nil
}

func (s *OSS) PublicURL(key string) string {
	if key == "" || s.endpoint == "" || s.bucket == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, host, escapeKey(key))
}

func (s *OSS) Remove(ctx context.Context, keys ...string) error {
	keys = cleanKeys(keys)
	for _, batch := range chunk(keys, deleteBatchSize) {
		if _, err := s.bkt.DeleteObjects(batch, oss.WithContext(ctx), oss.DeleteObjectsQuiet(true)); err != nil {
			return apperr.NewStorageError(classifyOSS(err), "remove", strings.Join(batch, ","), err)
		}
	}
	return nil
}

func (s *OSS) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, 0)
	marker := oss.Marker("")
	for {
		lor, err := s.bkt.ListObjects(oss.WithContext(ctx), oss.Prefix(prefix), marker, oss.MaxKeys(1000))
		if err != nil {
			return nil, apperr.NewStorageError(classifyOSS(err), "list", prefix, err)
		}
		for _, obj := range lor.Objects {
			if obj.Key == "" {
				continue
			}
			out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
		}
		if !lor.IsTruncated {
			break
		}
		marker = oss.Marker(lor.NextMarker)
	}
	return out, nil
}

func classifyOSS(err error) jujuerrors.ConstError {
	var se oss.ServiceError
	if !errors.As(err, &se) {
		return apperr.ErrStorage
	}
	switch {
	case se.Code == "NoSuchBucket":
		return apperr.ErrBucketMissing
	case se.Code == "AccessDenied" || se.StatusCode == http.StatusForbidden:
		return apperr.ErrPermissionDenied
	case se.Code == "EntityTooLarge" || se.StatusCode == http.StatusRequestEntityTooLarge:
		return apperr.ErrSizeExceeded
	default:
		return apperr.ErrStorage
	}
}
