package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	payload, err := ArchiveAssets([]Asset{
		{Filename: "mockup-1.png", MIME: "image/png", Data: []byte("one")},
		{Filename: "mockup-2.png", MIME: "image/png", Data: []byte("two")},
	})
	if err != nil {
		t.Fatalf("ArchiveAssets error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}
	f, err := zr.File[1].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if zr.File[1].Name != "mockup-2.png" || string(data) != "two" {
		t.Fatalf("unexpected entry %s: %q", zr.File[1].Name, data)
	}
}
