package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"

	"kompetensi_backend/internals/helpers/apperr"
)

// Supabase bicara langsung ke Storage REST API (/storage/v1/...).
type Supabase struct {
	baseURL    string
	serviceKey string
	bucket     string
	public     bool
	hc         *http.Client
}

func NewSupabase(baseURL, serviceKey, bucket string, public bool, hc *http.Client) *Supabase {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		public:     public,
		hc:         hc,
	}
}

func (s *Supabase) Driver() string { return "supabase" }
func (s *Supabase) Bucket() string { return s.bucket }

// supabaseError: bentuk body error Storage API. statusCode dikirim sebagai string.
type supabaseError struct {
	StatusCode string `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func (s *Supabase) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+"/storage/v1"+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	return req, nil
}

func (s *Supabase) doJSON(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}
	req, err := s.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.do(req, out)
}

func (s *Supabase) do(req *http.Request, out any) (int, error) {
	resp, err := s.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	status := effectiveStatus(resp.StatusCode, raw)
	if status >= 300 {
		return status, fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(raw)))
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return status, errors.Annotate(err, "decode storage response")
		}
	}
	return status, nil
}

// effectiveStatus: Storage API kadang membalas HTTP 400 dengan statusCode "404"/"413" di body.
func effectiveStatus(httpStatus int, raw []byte) int {
	if httpStatus < 300 {
		return httpStatus
	}
	var se supabaseError
	if json.Unmarshal(raw, &se) == nil {
		if n, err := strconv.Atoi(se.StatusCode); err == nil && n >= 400 {
			return n
		}
	}
	return httpStatus
}

func classifyHTTP(op, key string, status int, err error) error {
	kind := apperr.ErrStorage
	switch status {
	case http.StatusNotFound:
		if op != "remove" {
			kind = apperr.ErrBucketMissing
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = apperr.ErrPermissionDenied
	case http.StatusRequestEntityTooLarge:
		kind = apperr.ErrSizeExceeded
	}
	return apperr.NewStorageError(kind, op, key, err)
}

func (s *Supabase) EnsureBucket(ctx context.Context) error {
	status, err := s.doJSON(ctx, http.MethodGet, "/bucket/"+url.PathEscape(s.bucket), nil, nil)
	if err == nil {
		return nil
	}
	if status != http.StatusNotFound && status != http.StatusBadRequest {
		return classifyHTTP("bucket", s.bucket, status, err)
	}

	payload := map[string]any{"id": s.bucket, "name": s.bucket, "public": s.public}
	status, err = s.doJSON(ctx, http.MethodPost, "/bucket", payload, nil)
	if err != nil && status != http.StatusConflict {
		return classifyHTTP("create bucket", s.bucket, status, err)
	}
	return nil
}

func (s *Supabase) Upload(ctx context.Context, key string, r io.Reader, size int64, opt UploadOptions) error {
	opt = normalizeOptions(opt)
	req, err := s.newRequest(ctx, http.MethodPost, "/object/"+s.bucket+"/"+escapeKey(key), r)
	if err != nil {
		return apperr.NewStorageError(apperr.ErrStorage, "upload", key, err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", opt.ContentType)
	req.Header.Set("cache-control", cacheHeader(opt.CacheControl))
	req.Header.Set("x-upsert", strconv.FormatBool(opt.Upsert))

	status, err := s.do(req, nil)
	if err != nil {
		return classifyHTTP("upload", key, status, err)
	}
	return nil
}

func (s *Supabase) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapeKey(key))
}

func (s *Supabase) Remove(ctx context.Context, keys ...string) error {
	keys = cleanKeys(keys)
	if len(keys) == 0 {
		return nil
	}
	for _, batch := range chunk(keys, deleteBatchSize) {
		status, err := s.doJSON(ctx, http.MethodDelete, "/object/"+s.bucket,
			map[string]any{"prefixes": batch}, nil)
		if err != nil {
			return classifyHTTP("remove", strings.Join(batch, ","), status, err)
		}
	}
	return nil
}

type supabaseObject struct {
	Name      string     `json:"name"`
	ID        *string    `json:"id"`
	UpdatedAt *time.Time `json:"updated_at"`
	CreatedAt *time.Time `json:"created_at"`
	Metadata  struct {
		Size int64 `json:"size"`
	} `json:"metadata"`
}

// List mengembalikan object langsung di bawah folder prefix (tidak rekursif;
// key yang dipakai aplikasi hanya satu level).
func (s *Supabase) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	folder := strings.Trim(prefix, "/")
	out := make([]ObjectInfo, 0)
	const limit = 1000
	for offset := 0; ; offset += limit {
		var page []supabaseObject
		payload := map[string]any{
			"prefix": folder,
			"limit":  limit,
			"offset": offset,
			"sortBy": map[string]string{"column": "name", "order": "asc"},
		}
		status, err := s.doJSON(ctx, http.MethodPost, "/object/list/"+s.bucket, payload, &page)
		if err != nil {
			return nil, classifyHTTP("list", folder, status, err)
		}
		for _, o := range page {
			if o.ID == nil {
				continue // folder placeholder
			}
			info := ObjectInfo{Key: joinKey(folder, o.Name), Size: o.Metadata.Size}
			switch {
			case o.UpdatedAt != nil:
				info.LastModified = *o.UpdatedAt
			case o.CreatedAt != nil:
				info.LastModified = *o.CreatedAt
			}
			out = append(out, info)
		}
		if len(page) < limit {
			break
		}
	}
	return out, nil
}

func joinKey(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
