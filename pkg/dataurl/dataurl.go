// Package dataurl converts between raw image bytes and base64 data URIs.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultMIME is assumed when a payload carries no media type.
const DefaultMIME = "image/png"

var ErrMalformed = errors.New("dataurl: malformed data uri")

// Encode renders data as data:<mime>;base64,<payload>.
func Encode(mime string, data []byte) string {
	mime = strings.TrimSpace(mime)
	if mime == "" {
		mime = DefaultMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode parses a base64 data URI. A bare base64 string without the data:
// prefix is accepted and reported as DefaultMIME.
func Decode(uri string) (string, []byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", nil, ErrMalformed
	}

	mime := DefaultMIME
	payload := uri
	if strings.HasPrefix(uri, "data:") {
		header, body, ok := strings.Cut(uri[len("data:"):], ",")
		if !ok {
			return "", nil, ErrMalformed
		}
		meta := strings.Split(header, ";")
		if !containsFold(meta[1:], "base64") {
			return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformed)
		}
		if m := strings.TrimSpace(meta[0]); m != "" {
			mime = strings.ToLower(m)
		}
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return mime, data, nil
}

func containsFold(items []string, want string) bool {
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item), want) {
			return true
		}
	}
	return false
}
