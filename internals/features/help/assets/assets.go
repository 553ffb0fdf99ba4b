// Package assets berisi aturan file bersama untuk dokumen & video bantuan:
// folder bucket, batas ukuran, metadata storage dan penghapusan best-effort.
package assets

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"kompetensi_backend/internals/helpers/apperr"
	"kompetensi_backend/internals/helpers/logger"
	"kompetensi_backend/internals/helpers/storage"
)

const (
	FolderDocuments  = "documents"
	FolderThumbnails = "thumbnails"

	removeTimeout = 15 * time.Second
)

// Folders yang dipindai orphan reaper.
var Folders = []string{FolderDocuments, FolderThumbnails}

// MaxBytes: batas MB → byte, default 10 MB.
func MaxBytes(mb int) int64 {
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) << 20
}

// CheckSize → StorageError(ErrSizeExceeded) kalau file lebih besar dari batas.
func CheckSize(u *storage.Upload, max int64) error {
	if u.Size > max {
		return apperr.NewStorageError(apperr.ErrSizeExceeded, "upload", u.Filename,
			fmt.Errorf("ukuran file maksimal %d MB", max>>20))
	}
	return nil
}

// StorageMeta disimpan bersama row supaya object bisa dilacak lintas driver.
func StorageMeta(store storage.ObjectStorage, key string) datatypes.JSONMap {
	return datatypes.JSONMap{
		"driver": store.Driver(),
		"bucket": store.Bucket(),
		"key":    key,
	}
}

// RemoveQuietly menghapus object tanpa pernah mengembalikan error; kegagalan
// hanya dicatat (sisa object diambil reaper). Tetap jalan walau request sudah selesai.
func RemoveQuietly(ctx context.Context, store storage.ObjectStorage, log *logger.Logger, keys ...string) {
	var clean []string
	for _, k := range keys {
		if k != "" {
			clean = append(clean, k)
		}
	}
	if len(clean) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), removeTimeout)
	defer cancel()
	if err := store.Remove(ctx, clean...); err != nil {
		log.WarnErr(err, "hapus file %v gagal, menunggu reaper", clean)
		return
	}
	log.Debugf("file %v dihapus", clean)
}
