package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"art-gallery-backend/internal/apperr"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

const (
	originalDir  = "paintings"
	thumbnailDir = "paintings/thumbnails"

	ThumbnailSize        = 300
	thumbnailJPEGQuality = 85
)

type ImageService struct {
	backend     Backend
	maxSize     int64
	allowed     map[string]struct{}
	allowedList string
	log         logrus.FieldLogger
}

func NewImageService(backend Backend, maxSize int64, allowedExtensions []string, log logrus.FieldLogger) *ImageService {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &ImageService{
		backend:     backend,
		maxSize:     maxSize,
		allowed:     allowed,
		allowedList: strings.Join(allowedExtensions, ", "),
		log:         log,
	}
}

// SaveImage validates the upload, stores it and a JPEG thumbnail, and returns
// both public URLs. Nothing is left behind when it fails.
func (s *ImageService) SaveImage(ctx context.Context, fh *multipart.FileHeader) (imageURL, thumbnailURL string, err error) {
	if fh == nil {
		return "", "", apperr.Validation("image file is required")
	}
	if fh.Size > s.maxSize {
		return "", "", apperr.TooLarge("file too large, maximum size is %d bytes", s.maxSize)
	}

	ext := extension(fh.Filename)
	if _, ok := s.allowed[ext]; !ok {
		return "", "", apperr.Validation("file type not allowed, allowed types: %s", s.allowedList)
	}

	data, err := readUpload(fh, s.maxSize)
	if err != nil {
		return "", "", err
	}

	id := uuid.New().String()
	originalPath := fmt.Sprintf("%s/%s.%s", originalDir, id, ext)
	thumbPath := fmt.Sprintf("%s/thumb_%s.jpg", thumbnailDir, id)

	if err := s.backend.Put(ctx, originalPath, data, contentType(ext)); err != nil {
		return "", "", apperr.Internal(err, "failed to store image")
	}

	thumb, err := makeThumbnail(data)
	if err != nil {
		s.remove(ctx, originalPath)
		return "", "", err
	}

	if err := s.backend.Put(ctx, thumbPath, thumb, "image/jpeg"); err != nil {
		s.remove(ctx, originalPath)
		return "", "", apperr.Internal(err, "failed to store thumbnail")
	}

	return s.backend.URL(originalPath), s.backend.URL(thumbPath), nil
}

// DeleteImageFiles removes the files behind the given URLs. Empty, foreign and
// already-missing URLs are skipped; failures are logged only.
func (s *ImageService) DeleteImageFiles(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		p, ok := s.backend.PathFromURL(u)
		if !ok {
			s.log.WithField("url", u).Warn("skipping image url outside storage")
			continue
		}
		s.remove(ctx, p)
	}
}

func (s *ImageService) remove(ctx context.Context, p string) {
	if err := s.backend.Delete(ctx, p); err != nil {
		s.log.WithError(err).WithField("path", p).Warn("failed to delete image file")
	}
}

// extension is the lower-cased text after the last dot, or "" when there is none.
func extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

func contentType(ext string) string {
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func readUpload(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal(err, "failed to open upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, apperr.Internal(err, "failed to read upload")
	}
	if int64(len(data)) > maxSize {
		return nil, apperr.TooLarge("file too large, maximum size is %d bytes", maxSize)
	}
	return data, nil
}

// makeThumbnail fits the image inside ThumbnailSize square without upscaling,
// flattens transparency onto white and encodes it as JPEG.
func makeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Validation("invalid image file")
	}

	fitted := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	bounds := fitted.Bounds()
	flat := imaging.Overlay(imaging.New(bounds.Dx(), bounds.Dy(), color.White), fitted, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(thumbnailJPEGQuality)); err != nil {
		return nil, apperr.Internal(err, "failed to encode thumbnail")
	}
	return buf.Bytes(), nil
}
