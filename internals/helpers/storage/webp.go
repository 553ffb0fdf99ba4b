package storage

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* =======================================================================
   Thumbnail → WebP (resize keep-aspect)
======================================================================= */

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

var ErrUnsupportedImage = fmt.Errorf("format gambar tidak didukung (pakai jpg/png/webp)")

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.Contains(ct, "webp") || (ct == "application/octet-stream" && ext == ".webp"):
		return webp.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"), strings.Contains(ct, "gif"):
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	default:
		return nil, ErrUnsupportedImage
	}
}

// ConvertToWebP: decode → fit ke MaxW×MaxH (tidak pernah upscale) → encode webp.
func ConvertToWebP(all []byte, filename string, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		maxW, maxH := opt.MaxW, opt.MaxH
		if maxW <= 0 {
			maxW = b.Dx()
		}
		if maxH <= 0 {
			maxH = b.Dy()
		}
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WebPName mengganti ekstensi file menjadi .webp.
func WebPName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "thumbnail"
	}
	return base + ".webp"
}
