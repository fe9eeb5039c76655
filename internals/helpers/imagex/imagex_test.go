package imagex

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_FitsIntoBox(t *testing.T) {
	opt := Options{MaxW: 512, MaxH: 512, Quality: 80}

	out, err := ToWebP(pngOf(t, 1024, 256), "logo.png", opt)
	require.NoError(t, err)
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)

	out, err = ToWebP(pngOf(t, 64, 32), "small.png", opt)
	require.NoError(t, err)
	cfg, err = webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width, "small images are not upscaled")
}

func TestToWebP_Rejects(t *testing.T) {
	opt := Options{MaxW: 512, MaxH: 512, Quality: 80, MaxBytes: 1024}

	_, err := ToWebP(nil, "x.png", opt)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ToWebP([]byte("GIF89a not really"), "x.gif", opt)
	assert.ErrorIs(t, err, ErrUnsupported)

	data := pngOf(t, 200, 200)
	opt.MaxBytes = int64(len(data)) - 1
	_, err = ToWebP(data, "big.png", opt)
	assert.ErrorIs(t, err, ErrTooLarge)

	opt.MaxBytes = int64(len(data))
	_, err = ToWebP(data, "big.png", opt)
	assert.NoError(t, err, "exactly at the cap is accepted")
}

func multipartFile(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("logo", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["logo"][0]
}

func TestFileToDataURL(t *testing.T) {
	data := pngOf(t, 64, 64)
	fh := multipartFile(t, "logo.png", data)

	u, err := FileToDataURL(fh, Options{MaxW: 512, MaxH: 512, Quality: 80, MaxBytes: int64(len(data))})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, DataURLPrefix))

	_, err = FileToDataURL(fh, Options{MaxW: 512, MaxH: 512, Quality: 80, MaxBytes: fh.Size - 1})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = FileToDataURL(nil, Options{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDataURL(t *testing.T) {
	u := DataURL([]byte{1, 2, 3})
	require.True(t, strings.HasPrefix(u, DataURLPrefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, DataURLPrefix))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, raw)
}
