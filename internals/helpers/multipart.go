package helper

import (
	"mime/multipart"
	"strings"

	"github.com/juju/errors"

	"kompetensi_backend/internals/helpers/storage"
)

// Default kandidat nama field file yang umum dipakai FE/Postman.
var defaultFileFieldCandidates = []string{"file", "files", "files[]", "upload"}

// FirstFile mengambil file pertama dari form multipart sesuai urutan kandidat.
// nil kalau tidak ada file yang dikirim.
func FirstFile(form *multipart.Form, candidates ...string) *multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	if len(candidates) == 0 {
		candidates = defaultFileFieldCandidates
	}
	for _, key := range candidates {
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				return fh
			}
		}
	}
	return nil
}

// FormString: nilai pertama key (di-trim), "" kalau tidak ada.
func FormString(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	if vs := form.Value[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// FormPatchString: field dianggap hadir kalau key ada di form, walaupun kosong.
// Nilai "null" (literal) dianggap null.
func FormPatchString(form *multipart.Form, key string) PatchField[string] {
	if form == nil {
		return PatchField[string]{}
	}
	vs, ok := form.Value[key]
	if !ok {
		return PatchField[string]{}
	}
	if len(vs) == 0 || strings.EqualFold(strings.TrimSpace(vs[0]), "null") {
		return PatchField[string]{Present: true}
	}
	return Set(vs[0])
}

// FormBool: false kalau key tidak ada atau tidak bisa diparse.
func FormBool(form *multipart.Form, key string) bool {
	v := FormString(form, key)
	if v == "" {
		return false
	}
	b, err := ParseBoolLoose(v)
	return err == nil && b
}

// OpenUpload membuka file multipart menjadi storage.Upload. Panggil Close
// setelah selesai dipakai.
func OpenUpload(fh *multipart.FileHeader) (*storage.Upload, error) {
	if fh == nil {
		return nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, errors.Annotatef(err, "open upload %s", fh.Filename)
	}
	return &storage.Upload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        src,
	}, nil
}
