// Package imagex re-encodes uploaded logos as WebP data URLs.
package imagex

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"sei_backend/internals/configs"
)

var (
	ErrEmpty       = errors.New("empty file")
	ErrTooLarge    = errors.New("file too large")
	ErrUnsupported = errors.New("unsupported image format (use jpg, png or webp)")
)

const DataURLPrefix = "data:image/webp;base64,"

type Options struct {
	MaxW     int
	MaxH     int
	Quality  float32
	MaxBytes int64
}

// DefaultOptions: 512x512 box, quality 80, 5MB upload cap; IMAGE_WEBP_* env overrides.
func DefaultOptions() Options {
	q := float32(80)
	if v, err := strconv.ParseFloat(configs.GetEnv("IMAGE_WEBP_QUALITY", "80"), 32); err == nil && v > 0 && v <= 100 {
		q = float32(v)
	}
	return Options{
		MaxW:     configs.GetIntEnv("IMAGE_WEBP_MAX_W", 512),
		MaxH:     configs.GetIntEnv("IMAGE_WEBP_MAX_H", 512),
		Quality:  q,
		MaxBytes: int64(configs.GetIntEnv("IMAGE_MAX_UPLOAD_BYTES", 5*1024*1024)),
	}
}

// Decode sniffs the content type, falling back to the file extension.
func Decode(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, ErrEmpty
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	kind := ""
	switch {
	case strings.Contains(ct, "jpeg"):
		kind = "jpeg"
	case strings.Contains(ct, "png"):
		kind = "png"
	case strings.Contains(ct, "webp"):
		kind = "webp"
	default:
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			kind = "jpeg"
		case ".png":
			kind = "png"
		case ".webp":
			kind = "webp"
		}
	}

	var (
		img image.Image
		err error
	)
	switch kind {
	case "jpeg":
		img, err = jpeg.Decode(bytes.NewReader(all))
	case "png":
		img, err = png.Decode(bytes.NewReader(all))
	case "webp":
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ct)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return img, nil
}

// ToWebP decodes, fits into MaxW x MaxH (never upscales) and encodes lossy WebP.
func ToWebP(all []byte, filename string, opt Options) ([]byte, error) {
	if opt.MaxBytes > 0 && int64(len(all)) > opt.MaxBytes {
		return nil, ErrTooLarge
	}
	img, err := Decode(all, filename)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		img = imaging.Fit(img, opt.MaxW, opt.MaxH, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: opt.Quality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

func DataURL(webpData []byte) string {
	return DataURLPrefix + base64.StdEncoding.EncodeToString(webpData)
}

// FileToDataURL is the multipart entry point used by upload handlers.
func FileToDataURL(fh *multipart.FileHeader, opt Options) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmpty
	}
	if opt.MaxBytes > 0 && fh.Size > opt.MaxBytes {
		return "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	out, err := ToWebP(all, fh.Filename, opt)
	if err != nil {
		return "", err
	}
	return DataURL(out), nil
}
