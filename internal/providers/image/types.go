package image

import (
	"context"
	"strings"

	"mockupstudio/pkg/dataurl"
)

// SourceImage is the user's uploaded artwork passed as conditioning input.
type SourceImage struct {
	Data     []byte
	MIME     string
	Filename string
}

// Empty reports whether the source carries no image bytes.
func (s SourceImage) Empty() bool {
	return len(s.Data) == 0
}

// GenerateRequest describes a single mockup attempt.
type GenerateRequest struct {
	Source      SourceImage
	Category    string
	Description string
	Prompt      string
	RequestID   string
}

// Asset is one generated mockup image.
type Asset struct {
	MIME string
	Data []byte
}

// DataURL renders the asset as a base64 data URI.
func (a Asset) DataURL() string {
	return dataurl.Encode(a.MIME, a.Data)
}

// Extension returns a file extension matching the asset's media type.
func (a Asset) Extension() string {
	switch normalizeFormat(a.MIME) {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

// Generator is the contract implemented by all image providers. One call
// produces at most one image.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
	HasCredentials() bool
	Name() string
}

func normalizeFormat(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch mime {
	case "image/jpeg", "image/jpg":
		return "image/jpeg"
	case "image/png":
		return "image/png"
	default:
		if strings.HasPrefix(mime, "image/") {
			return mime
		}
		return "image/png"
	}
}
