package image

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGeminiTestServer(t *testing.T, handler func(body string) (int, string)) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash-image:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		status, payload := handler(string(raw))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestGemini(t *testing.T, baseURL string) *GeminiGenerator {
	t.Helper()
	gen, err := NewGeminiGenerator(context.Background(), GeminiOptions{
		APIKey:     "test-key",
		BaseURL:    baseURL + "/",
		HTTPClient: http.DefaultClient,
	})
	if err != nil {
		t.Fatalf("NewGeminiGenerator error: %v", err)
	}
	return gen
}

func TestGeminiGeneratorReturnsInlineImage(t *testing.T) {
	source := []byte{0x89, 0x50, 0x4e, 0x47, 0x01}
	output := []byte("generated-mockup")
	var captured string
	ts := newGeminiTestServer(t, func(body string) (int, string) {
		captured = body
		return http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[` +
			`{"text":"here you go"},` +
			`{"inlineData":{"mimeType":"image/png","data":"` + base64.StdEncoding.EncodeToString(output) + `"}}]}}]}`
	})

	gen := newTestGemini(t, ts.URL)
	asset, err := gen.Generate(context.Background(), GenerateRequest{
		Source:   SourceImage{Data: source, MIME: "image/png"},
		Category: "Coffee Mug",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if string(asset.Data) != string(output) {
		t.Fatalf("unexpected asset data: %q", asset.Data)
	}
	if asset.MIME != "image/png" {
		t.Fatalf("unexpected mime: %s", asset.MIME)
	}
	if !strings.Contains(captured, base64.StdEncoding.EncodeToString(source)) {
		t.Fatalf("source image not sent: %s", captured)
	}
	if !strings.Contains(captured, "mockup of a Coffee Mug") {
		t.Fatalf("prompt not sent: %s", captured)
	}
}

func TestGeminiGeneratorNoImagePart(t *testing.T) {
	ts := newGeminiTestServer(t, func(string) (int, string) {
		return http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"sorry"}]}}]}`
	})

	gen := newTestGemini(t, ts.URL)
	_, err := gen.Generate(context.Background(), GenerateRequest{
		Source:   SourceImage{Data: []byte{1}, MIME: "image/jpeg"},
		Category: "Hoodie",
	})
	if !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected ErrNoImageData, got %v", err)
	}
}

func TestGeminiGeneratorAPIError(t *testing.T) {
	ts := newGeminiTestServer(t, func(string) (int, string) {
		return http.StatusBadRequest, `{"error":{"code":400,"message":"bad image","status":"INVALID_ARGUMENT"}}`
	})

	gen := newTestGemini(t, ts.URL)
	_, err := gen.Generate(context.Background(), GenerateRequest{
		Source:   SourceImage{Data: []byte{1}, MIME: "image/png"},
		Category: "Hoodie",
	})
	if err == nil {
		t.Fatalf("expected error from API failure")
	}
}

func TestGeminiGeneratorMissingKey(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), GeminiOptions{})
	if err != nil {
		t.Fatalf("NewGeminiGenerator error: %v", err)
	}
	if gen.HasCredentials() {
		t.Fatalf("expected HasCredentials false without api key")
	}
	if gen.Name() != defaultGeminiModel {
		t.Fatalf("unexpected model: %s", gen.Name())
	}
	if _, err := gen.Generate(context.Background(), GenerateRequest{Source: SourceImage{Data: []byte{1}}}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
