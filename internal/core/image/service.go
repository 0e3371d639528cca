package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrInvalidDataURL the value is not a base64 image data URL
var ErrInvalidDataURL = errors.New("invalid image data url")

const jpegDataURLPrefix = "data:image/jpeg;base64,"

// Service turns generated image bytes into JPEG data URLs
type Service struct {
	maxSizeBytes int64
	quality      int
}

// NewService creates an image service
func NewService(maxSizeBytes int64, quality int) *Service {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Service{
		maxSizeBytes: maxSizeBytes,
		quality:      quality,
	}
}

// ToJPEGDataURL returns data as a data:image/jpeg;base64 URL, re-encoding non-JPEG input
func (s *Service) ToJPEGDataURL(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}
	if s.maxSizeBytes > 0 && int64(len(data)) > s.maxSizeBytes {
		return "", fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	if format == "jpeg" {
		return jpegDataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}
	return jpegDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ValidateDataURL accepts an empty value or a well-formed base64 image data URL within the size limit
func (s *Service) ValidateDataURL(value string) error {
	if value == "" {
		return nil
	}
	if !strings.HasPrefix(value, "data:image/") {
		return ErrInvalidDataURL
	}

	header, payload, ok := strings.Cut(value, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return ErrInvalidDataURL
	}

	if s.maxSizeBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxSizeBytes+2 {
		return fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return nil
}

func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
