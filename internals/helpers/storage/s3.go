package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	jujuerrors "github.com/juju/errors"

	"kompetensi_backend/internals/helpers/apperr"
)

type S3Config struct {
	Endpoint  string // mis. https://<ref>.supabase.co/storage/v1/s3
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL: base URL publik; key ditempel sebagai "<base>/<bucket>/<key>".
	// Untuk Supabase: https://<ref>.supabase.co/storage/v1/object/public
	PublicURL string
}

type S3API interface {
	manager.UploadAPIClient
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3 struct {
	client    S3API
	uploader  *manager.Uploader
	bucket    string
	region    string
	publicURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 storage requires endpoint and credentials")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/")
	}
	return NewS3WithClient(client, cfg.Bucket, cfg.Region, publicURL), nil
}

func NewS3WithClient(client S3API, bucket, region, publicURL string) *S3 {
	return &S3{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3) Driver() string { return "s3" }
func (s *S3) Bucket() string { return s.bucket }

func (s *S3) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if kind := classifyS3("bucket", err); kind != apperr.ErrBucketMissing {
		return apperr.NewStorageError(kind, "bucket", s.bucket, err)
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, in); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return apperr.NewStorageError(classifyS3("create bucket", err), "create bucket", s.bucket, err)
	}
	return nil
}

func (s *S3) Upload(ctx context.Context, key string, r io.Reader, size int64, opt UploadOptions) error {
	opt = normalizeOptions(opt)
	if !opt.Upsert {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
		if err == nil {
			return errConflict("upload", key)
		}
		if !isS3NotFound(err) {
			return apperr.NewStorageError(classifyS3("upload", err), "upload", key, err)
		}
	}

	in := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(opt.ContentType),
		CacheControl: aws.String(cacheHeader(opt.CacheControl)),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return apperr.NewStorageError(classifyS3("upload", err), "upload", key, err)
	}
	return nil
}

func (s *S3) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + s.bucket + "/" + escapeKey(key)
}

func (s *S3) Remove(ctx context.Context, keys ...string) error {
	keys = cleanKeys(keys)
	for _, batch := range chunk(keys, deleteBatchSize) {
		ids := make([]types.ObjectIdentifier, 0, len(batch))
		for _, k := range batch {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return apperr.NewStorageError(classifyS3("remove", err), "remove", strings.Join(batch, ","), err)
		}
		if out != nil && len(out.Errors) > 0 {
			e := out.Errors[0]
			return apperr.NewStorageError(apperr.ErrStorage, "remove", aws.ToString(e.Key),
				fmt.Errorf("%s: %s", aws.ToString(e.Code), aws.ToString(e.Message)))
		}
	}
	return nil
}

func (s *S3) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	out := make([]ObjectInfo, 0)
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apperr.NewStorageError(classifyS3("list", err), "list", prefix, err)
		}
		for _, o := range page.Contents {
			info := ObjectInfo{Key: aws.ToString(o.Key), Size: aws.ToInt64(o.Size)}
			if o.LastModified != nil {
				info.LastModified = *o.LastModified
			}
			out = append(out, info)
		}
	}
	return out, nil
}

// classifyS3 memetakan error SDK (smithy) ke jenis StorageError.
func classifyS3(op string, err error) jujuerrors.ConstError {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return apperr.ErrBucketMissing
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return apperr.ErrBucketMissing
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return apperr.ErrPermissionDenied
		case "EntityTooLarge":
			return apperr.ErrSizeExceeded
		}
	}
	var re *smithyhttp.ResponseError
	if errors.As(err, &re) {
		switch re.HTTPStatusCode() {
		case http.StatusForbidden, http.StatusUnauthorized:
			return apperr.ErrPermissionDenied
		case http.StatusRequestEntityTooLarge:
			return apperr.ErrSizeExceeded
		case http.StatusNotFound:
			// HeadBucket tidak punya body → hanya 404
			if op == "bucket" {
				return apperr.ErrBucketMissing
			}
		}
	}
	return apperr.ErrStorage
}

func isS3NotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var re *smithyhttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}
