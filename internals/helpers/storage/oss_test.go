package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/stretchr/testify/assert"

	"kompetensi_backend/internals/helpers/apperr"
)

func TestClassifyOSS(t *testing.T) {
	assert.Equal(t, apperr.ErrBucketMissing, classifyOSS(oss.ServiceError{Code: "NoSuchBucket", StatusCode: 404}))
	assert.Equal(t, apperr.ErrPermissionDenied, classifyOSS(oss.ServiceError{Code: "AccessDenied", StatusCode: 403}))
	assert.Equal(t, apperr.ErrSizeExceeded, classifyOSS(oss.ServiceError{Code: "EntityTooLarge", StatusCode: 400}))
	assert.Equal(t, apperr.ErrPermissionDenied, classifyOSS(fmt.Errorf("put: %w", oss.ServiceError{StatusCode: 403})))
	assert.Equal(t, apperr.ErrStorage, classifyOSS(errors.New("connection reset")))
}

func TestOSSPublicURL(t *testing.T) {
	s := &OSS{endpoint: normalizeEndpoint("oss-ap-southeast-5.aliyuncs.com/"), bucket: "help-center"}

	assert.Equal(t, "https://help-center.oss-ap-southeast-5.aliyuncs.com/documents/a.pdf", s.PublicURL("documents/a.pdf"))
	assert.Equal(t, "", s.PublicURL(""))
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint(" http://localhost:9000/ "))
	assert.Equal(t, "", normalizeEndpoint(""))
}

func TestNewOSSRequiresCredentials(t *testing.T) {
	_, err := NewOSS("", "", "", "", true)
	assert.Error(t, err)
}
