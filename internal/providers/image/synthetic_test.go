package image

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"mockupstudio/internal/domain"
)

func TestSyntheticGeneratorRendersPNG(t *testing.T) {
	gen := NewSyntheticGenerator(SyntheticOptions{})
	asset, err := gen.Generate(context.Background(), GenerateRequest{
		Source:    SourceImage{Data: []byte{1, 2, 3}, MIME: "image/png"},
		Category:  "Tote Bag",
		RequestID: "job-1",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if asset.MIME != "image/png" || asset.Extension() != "png" {
		t.Fatalf("unexpected asset format: %s", asset.MIME)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(asset.Data))
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	if cfg.Width != syntheticSize || cfg.Height != syntheticSize {
		t.Fatalf("unexpected dimensions %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSyntheticGeneratorVariesByRequestID(t *testing.T) {
	gen := NewSyntheticGenerator(SyntheticOptions{})
	req := GenerateRequest{Source: SourceImage{Data: []byte{1}}, Category: "Hoodie"}

	req.RequestID = "a"
	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	req.RequestID = "b"
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if bytes.Equal(first.Data, second.Data) {
		t.Fatalf("expected distinct renders for distinct request ids")
	}
}

func TestSyntheticGeneratorSimulatedFailure(t *testing.T) {
	gen := NewSyntheticGenerator(SyntheticOptions{FailureRate: 0.5, Roll: func() float64 { return 0.1 }})
	_, err := gen.Generate(context.Background(), GenerateRequest{Source: SourceImage{Data: []byte{1}}})
	if !errors.Is(err, ErrSyntheticFailure) {
		t.Fatalf("expected ErrSyntheticFailure, got %v", err)
	}
}

func TestSyntheticGeneratorRejectsEmptySource(t *testing.T) {
	gen := NewSyntheticGenerator(SyntheticOptions{})
	if _, err := gen.Generate(context.Background(), GenerateRequest{}); !errors.Is(err, domain.ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}

func TestSyntheticGeneratorHonorsContext(t *testing.T) {
	gen := NewSyntheticGenerator(SyntheticOptions{Delay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, GenerateRequest{Source: SourceImage{Data: []byte{1}}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestColorFromSeedShortSeed(t *testing.T) {
	c := colorFromSeed("ab", 1)
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Fatalf("short seeds should fall back to opaque black, got %+v", c)
	}
}
