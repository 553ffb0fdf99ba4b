// Package apperr mendefinisikan taksonomi error domain di atas juju/errors.
//
// ValidationError = errors.NotValid, NotFound = errors.NotFound,
// AuthError = errors.Unauthorized. PolicyViolation dan StorageError
// didefinisikan di sini karena juju/errors tidak punya padanannya.
package apperr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
)

const (
	PolicyViolation = errors.ConstError("policy violation")

	ErrStorage          = errors.ConstError("storage error")
	ErrBucketMissing    = errors.ConstError("bucket not found")
	ErrPermissionDenied = errors.ConstError("storage permission denied")
	ErrSizeExceeded     = errors.ConstError("file size exceeded")
)

// Pesan baku untuk soft delete record yang masih aktif.
const MsgDeleteActive = "Set status to inactive for delete"

func PolicyViolationf(format string, args ...interface{}) error {
	return errors.WithType(errors.Errorf(format, args...), PolicyViolation)
}

// NotFoundf: pesan dipakai apa adanya (errors.NotFoundf menambah " not found").
func NotFoundf(format string, args ...interface{}) error {
	return errors.NewNotFound(nil, fmt.Sprintf(format, args...))
}

func Unauthorizedf(format string, args ...interface{}) error {
	return errors.Unauthorizedf(format, args...)
}

// Validation membuat error NotValid dengan pesan apa adanya.
func Validation(msg string) error {
	return errors.NewNotValid(nil, msg)
}

func IsValidation(err error) bool   { return errors.Is(err, errors.NotValid) }
func IsNotFound(err error) bool     { return errors.Is(err, errors.NotFound) }
func IsUnauthorized(err error) bool { return errors.Is(err, errors.Unauthorized) }
func IsPolicy(err error) bool       { return errors.Is(err, PolicyViolation) }
func IsStorage(err error) bool      { return errors.Is(err, ErrStorage) }

// =======================
// FIELD ERRORS
// =======================

// FieldErrors adalah ValidationError per field (dipakai untuk respons 422).
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) FieldErrors {
	fe[field] = append(fe[field], msg)
	return fe
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool {
	return target == errors.NotValid
}

// Err mengembalikan nil kalau tidak ada field yang gagal.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// =======================
// STORAGE ERROR
// =======================

type StorageError struct {
	Kind errors.ConstError
	Op   string
	Key  string
	Err  error
}

func NewStorageError(kind errors.ConstError, op, key string, err error) *StorageError {
	if kind == "" {
		kind = ErrStorage
	}
	return &StorageError{Kind: kind, Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Op != "" {
		b.WriteString(" (" + e.Op)
		if e.Key != "" {
			b.WriteString(" " + e.Key)
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage || target == e.Kind
}
