package constants

import (
	"path/filepath"
	"strings"
)

// Jenis dokumen bantuan (dipakai untuk label & content-type fallback).
const (
	FileKindPDF     = "pdf"
	FileKindWord    = "word"
	FileKindExcel   = "excel"
	FileKindSlide   = "slide"
	FileKindText    = "text"
	FileKindImage   = "image"
	FileKindUnknown = "unknown"
)

var fileKindByExt = map[string]string{
	"pdf":  FileKindPDF,
	"doc":  FileKindWord,
	"docx": FileKindWord,
	"xls":  FileKindExcel,
	"xlsx": FileKindExcel,
	"ppt":  FileKindSlide,
	"pptx": FileKindSlide,
	"txt":  FileKindText,
	"png":  FileKindImage,
	"jpg":  FileKindImage,
	"jpeg": FileKindImage,
	"webp": FileKindImage,
}

var contentTypeByExt = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain; charset=utf-8",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
}

func fileExt(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
}

func DetectFileKindFromExt(filename string) string {
	if k, ok := fileKindByExt[fileExt(filename)]; ok {
		return k
	}
	return FileKindUnknown
}

// ContentTypeFromExt: "" kalau ekstensi tidak dikenal.
func ContentTypeFromExt(filename string) string {
	return contentTypeByExt[fileExt(filename)]
}

// IsAllowedExt cek ekstensi (tanpa titik, case-insensitive) terhadap allow-list.
func IsAllowedExt(filename string, allowed []string) bool {
	ext := fileExt(filename)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(a), "."), ext) {
			return true
		}
	}
	return false
}
