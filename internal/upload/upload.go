// Package upload validates user-supplied artwork before it enters a batch.
package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/providers/image"
	"mockupstudio/pkg/dataurl"
)

// DefaultMaxBytes mirrors the 5 MB upload ceiling of the studio.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

var allowed = []string{"image/png", "image/jpeg"}

// LoadFile reads and validates the artwork at path.
func LoadFile(path string, maxBytes int64) (image.SourceImage, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return image.SourceImage{}, fmt.Errorf("upload: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return image.SourceImage{}, fmt.Errorf("upload: %s is a directory", path)
	}
	if info.Size() > maxBytes {
		return image.SourceImage{}, fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrSourceTooLarge, info.Size(), maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return image.SourceImage{}, fmt.Errorf("upload: read %s: %w", path, err)
	}
	return FromBytes(filepath.Base(path), data, maxBytes)
}

// FromDataURL validates artwork pasted as a base64 data URI. The declared
// media type must be PNG or JPEG and the payload must sniff as one.
func FromDataURL(name, uri string, maxBytes int64) (image.SourceImage, error) {
	declared, data, err := dataurl.Decode(uri)
	if err != nil {
		return image.SourceImage{}, fmt.Errorf("upload: %w", err)
	}
	if !mimetype.EqualsAny(declared, allowed...) {
		return image.SourceImage{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, declared)
	}
	return FromBytes(name, data, maxBytes)
}

// FromBytes validates in-memory artwork, sniffing its media type from content.
func FromBytes(name string, data []byte, maxBytes int64) (image.SourceImage, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(data) == 0 {
		return image.SourceImage{}, domain.ErrEmptySource
	}
	if int64(len(data)) > maxBytes {
		return image.SourceImage{}, fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrSourceTooLarge, len(data), maxBytes)
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return image.SourceImage{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, mt.String())
	}
	return image.SourceImage{
		Data:     data,
		MIME:     mt.String(),
		Filename: name,
	}, nil
}
