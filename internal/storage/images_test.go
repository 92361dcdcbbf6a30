package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://gallery.test"

func newTestService(t *testing.T, maxSize int64) (*ImageService, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := NewLocalBackend(dir, testBaseURL)
	require.NoError(t, err)
	return NewImageService(backend, maxSize, []string{"jpg", "jpeg", "png", "webp"}, logging.Discard()), dir
}

// fileHeader builds a real multipart upload so Size and Open behave as in a request.
func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

// transparentPNG is w x h, fully transparent except an opaque red left half.
func transparentPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w/2; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func localPath(t *testing.T, dir, url string) string {
	t.Helper()
	rel := strings.TrimPrefix(url, testBaseURL+UploadsRoute+"/")
	require.NotEqual(t, url, rel, "url %s not under uploads", url)
	return filepath.Join(dir, filepath.FromSlash(rel))
}

func TestSaveImage_WritesOriginalAndBoundedOpaqueThumbnail(t *testing.T) {
	svc, dir := newTestService(t, 10<<20)

	imageURL, thumbURL, err := svc.SaveImage(context.Background(), fileHeader(t, "Lilies.PNG", transparentPNG(t, 900, 600)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(imageURL, testBaseURL+"/uploads/paintings/"))
	assert.True(t, strings.HasSuffix(imageURL, ".png"))
	assert.True(t, strings.HasPrefix(thumbURL, testBaseURL+"/uploads/paintings/thumbnails/thumb_"))
	assert.True(t, strings.HasSuffix(thumbURL, ".jpg"))

	assert.FileExists(t, localPath(t, dir, imageURL))

	f, err := os.Open(localPath(t, dir, thumbURL))
	require.NoError(t, err)
	defer f.Close()
	thumb, err := jpeg.Decode(f)
	require.NoError(t, err)

	b := thumb.Bounds()
	assert.Equal(t, 300, b.Dx())
	assert.Equal(t, 200, b.Dy())

	// The transparent right half must come out white, not black.
	r, g, bl, a := thumb.At(b.Dx()-5, b.Dy()/2).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, bl>>8, uint32(240))
}

func TestSaveImage_DoesNotUpscale(t *testing.T) {
	svc, dir := newTestService(t, 10<<20)

	_, thumbURL, err := svc.SaveImage(context.Background(), fileHeader(t, "small.png", transparentPNG(t, 120, 80)))
	require.NoError(t, err)

	f, err := os.Open(localPath(t, dir, thumbURL))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestSaveImage_TooLargeWritesNothing(t *testing.T) {
	svc, dir := newTestService(t, 10)

	_, _, err := svc.SaveImage(context.Background(), fileHeader(t, "big.png", transparentPNG(t, 64, 64)))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindTooLarge))

	entries, err := os.ReadDir(filepath.Join(dir, "paintings"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.IsDir(), "unexpected file %s", e.Name())
	}
}

func TestSaveImage_RejectsExtension(t *testing.T) {
	svc, _ := newTestService(t, 10<<20)

	for _, name := range []string{"notes.txt", "noextension", "archive.png.zip"} {
		_, _, err := svc.SaveImage(context.Background(), fileHeader(t, name, []byte("data")))
		assert.True(t, apperr.Is(err, apperr.KindValidation), name)
	}
}

func TestSaveImage_InvalidImageRemovesOriginal(t *testing.T) {
	svc, dir := newTestService(t, 10<<20)

	_, _, err := svc.SaveImage(context.Background(), fileHeader(t, "fake.jpg", []byte("definitely not a jpeg")))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "invalid image file", apperr.Message(err))

	entries, err := os.ReadDir(filepath.Join(dir, "paintings"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.IsDir(), "leftover file %s", e.Name())
	}
}

func TestDeleteImageFiles_RemovesAndIgnoresMissing(t *testing.T) {
	svc, dir := newTestService(t, 10<<20)

	imageURL, thumbURL, err := svc.SaveImage(context.Background(), fileHeader(t, "a.png", transparentPNG(t, 40, 40)))
	require.NoError(t, err)

	svc.DeleteImageFiles(context.Background(), imageURL, thumbURL, "",
		testBaseURL+"/uploads/paintings/missing.png", "http://elsewhere.test/other.png")

	assert.NoFileExists(t, localPath(t, dir, imageURL))
	assert.NoFileExists(t, localPath(t, dir, thumbURL))
}

func TestLocalBackend_PathFromURLRejectsTraversal(t *testing.T) {
	b, err := NewLocalBackend(t.TempDir(), testBaseURL)
	require.NoError(t, err)

	p, ok := b.PathFromURL(testBaseURL + "/uploads/paintings/x.png")
	assert.True(t, ok)
	assert.Equal(t, "paintings/x.png", p)

	_, ok = b.PathFromURL(testBaseURL + "/uploads/../secret")
	assert.False(t, ok)
	_, ok = b.PathFromURL(testBaseURL + "/static/x.png")
	assert.False(t, ok)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpeg", extension("photo.final.JPEG"))
	assert.Equal(t, "", extension("README"))
}

func TestSupabaseBackend_URLRoundTrip(t *testing.T) {
	b := &SupabaseBackend{bucket: "paintings", baseURL: "https://proj.supabase.co"}

	u := b.URL("paintings/thumbnails/thumb_1.jpg")
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/paintings/paintings/thumbnails/thumb_1.jpg", u)

	p, ok := b.PathFromURL(u)
	assert.True(t, ok)
	assert.Equal(t, "paintings/thumbnails/thumb_1.jpg", p)
}
