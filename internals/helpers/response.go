package helper

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/juju/errors"

	"kompetensi_backend/internals/helpers/apperr"
)

// FromServiceError memetakan error dari service ke response JSON standar.
// Urutan cek penting: FieldErrors lebih spesifik dari NotValid.
func FromServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var fields apperr.FieldErrors
	if stderrors.As(err, &fields) {
		return JsonValidationError(c, fields)
	}

	status, code := StatusFor(err)
	msg := errors.Cause(err).Error()
	if status >= 500 {
		msg = "Terjadi kesalahan pada server"
	}
	return jsonErrorWithCode(c, status, code, msg)
}

// StatusFor mengembalikan HTTP status + error_code untuk sebuah error domain.
func StatusFor(err error) (int, string) {
	switch {
	case apperr.IsValidation(err):
		return fiber.StatusUnprocessableEntity, "VALIDATION_ERROR"
	case apperr.IsNotFound(err):
		return fiber.StatusNotFound, "NOT_FOUND"
	case apperr.IsUnauthorized(err):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case apperr.IsPolicy(err):
		return fiber.StatusConflict, "POLICY_VIOLATION"
	case errors.Is(err, apperr.ErrSizeExceeded):
		return fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"
	case errors.Is(err, apperr.ErrBucketMissing):
		return fiber.StatusBadGateway, "BUCKET_MISSING"
	case errors.Is(err, apperr.ErrPermissionDenied):
		return fiber.StatusBadGateway, "STORAGE_PERMISSION_DENIED"
	case apperr.IsStorage(err):
		return fiber.StatusBadGateway, "STORAGE_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// ErrorHandler dipasang di fiber.Config supaya error yang lolos dari handler
// (termasuk 404 route & panic yang sudah di-recover) tetap berbentuk standar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromServiceError(c, err)
}
