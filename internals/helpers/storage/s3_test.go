package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/helpers/apperr"
)

type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	meta    map[string]*s3.PutObjectInput
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}, meta: map[string]*s3.PutObjectInput{}}
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.buckets[aws.ToString(in.Bucket)] {
		return nil, &types.NoSuchBucket{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buckets[aws.ToString(in.Bucket)] = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.meta[aws.ToString(in.Key)] = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(ctx context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errors.New("multipart not supported in fake")
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeS3) DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range in.Delete.Objects {
		delete(f.objects, aws.ToString(o.Key))
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for k, v := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{
				Key: aws.String(k), Size: aws.Int64(int64(len(v))), LastModified: aws.Time(ts),
			})
		}
	}
	return out, nil
}

func TestS3Lifecycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	s := NewS3WithClient(fake, "help-center", "ap-southeast-1", "https://abc.supabase.co/storage/v1/object/public/")

	require.NoError(t, s.EnsureBucket(ctx))
	assert.True(t, fake.buckets["help-center"])

	require.NoError(t, s.Upload(ctx, "thumbnails/a.webp", strings.NewReader("img"), 3,
		UploadOptions{ContentType: "image/webp", CacheControl: "3600"}))
	assert.Equal(t, "img", string(fake.objects["thumbnails/a.webp"]))
	assert.Equal(t, "max-age=3600", aws.ToString(fake.meta["thumbnails/a.webp"].CacheControl))
	assert.Equal(t, "image/webp", aws.ToString(fake.meta["thumbnails/a.webp"].ContentType))

	err := s.Upload(ctx, "thumbnails/a.webp", strings.NewReader("img"), 3, UploadOptions{})
	assert.True(t, apperr.IsStorage(err), "no overwrite without upsert")
	require.NoError(t, s.Upload(ctx, "thumbnails/a.webp", strings.NewReader("img2"), 4, UploadOptions{Upsert: true}))

	list, err := s.List(ctx, "thumbnails/")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(4), list[0].Size)

	assert.Equal(t, "https://abc.supabase.co/storage/v1/object/public/help-center/thumbnails/a.webp",
		s.PublicURL("thumbnails/a.webp"))

	require.NoError(t, s.Remove(ctx, "thumbnails/a.webp"))
	assert.Empty(t, fake.objects)
}

func TestS3UploadErrorClassified(t *testing.T) {
	fake := newFakeS3()
	fake.buckets["help-center"] = true
	fake.putErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	s := NewS3WithClient(fake, "help-center", "", "https://s3.test")

	err := s.Upload(context.Background(), "documents/a.pdf", strings.NewReader("x"), 1, UploadOptions{Upsert: true})
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestClassifyS3(t *testing.T) {
	respErr := func(code int) error {
		return &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New("http error"),
		}
	}

	assert.Equal(t, apperr.ErrBucketMissing, classifyS3("upload", &types.NoSuchBucket{}))
	assert.Equal(t, apperr.ErrBucketMissing, classifyS3("upload", &smithy.GenericAPIError{Code: "NoSuchBucket"}))
	assert.Equal(t, apperr.ErrSizeExceeded, classifyS3("upload", &smithy.GenericAPIError{Code: "EntityTooLarge"}))
	assert.Equal(t, apperr.ErrPermissionDenied, classifyS3("upload", respErr(403)))
	assert.Equal(t, apperr.ErrSizeExceeded, classifyS3("upload", respErr(413)))
	assert.Equal(t, apperr.ErrBucketMissing, classifyS3("bucket", respErr(404)))
	assert.Equal(t, apperr.ErrStorage, classifyS3("upload", respErr(404)))
	assert.Equal(t, apperr.ErrStorage, classifyS3("upload", errors.New("dial tcp: timeout")))
}
