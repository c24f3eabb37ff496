package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	stdimage "image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
)

const syntheticSize = 512

// ErrSyntheticFailure is the simulated call failure of the synthetic generator.
var ErrSyntheticFailure = errors.New("synthetic: simulated generation failure")

// SyntheticOptions configures the offline generator.
type SyntheticOptions struct {
	Delay       time.Duration
	FailureRate float64
	// Roll returns a value in [0,1) compared against FailureRate. Defaults to
	// a locked math/rand source.
	Roll   func() float64
	Logger *infra.Logger
}

// SyntheticGenerator renders placeholder PNG mockups without any network
// access. It keeps the batch pipeline usable in local runs and tests.
type SyntheticGenerator struct {
	delay       time.Duration
	failureRate float64
	roll        func() float64
	logger      *infra.Logger
}

func NewSyntheticGenerator(opts SyntheticOptions) *SyntheticGenerator {
	roll := opts.Roll
	if roll == nil {
		var mu sync.Mutex
		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
		roll = func() float64 {
			mu.Lock()
			defer mu.Unlock()
			return rng.Float64()
		}
	}
	logger := opts.Logger
	if logger == nil {
		l := infra.DiscardLogger()
		logger = &l
	}
	return &SyntheticGenerator{
		delay:       opts.Delay,
		failureRate: opts.FailureRate,
		roll:        roll,
		logger:      logger,
	}
}

func (s *SyntheticGenerator) HasCredentials() bool { return true }

func (s *SyntheticGenerator) Name() string { return "synthetic" }

func (s *SyntheticGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if req.Source.Empty() {
		return nil, domain.ErrEmptySource
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.failureRate > 0 && s.roll() < s.failureRate {
		return nil, ErrSyntheticFailure
	}

	seed := deterministicSeed(req.RequestID, req.Category, req.Description, len(req.Source.Data))
	data, err := renderSyntheticImage(syntheticSize, syntheticSize, seed)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("request_id", req.RequestID).
		Str("seed", seed).
		Msg("synthetic: rendered mockup")

	return &Asset{MIME: "image/png", Data: data}, nil
}

var _ Generator = (*SyntheticGenerator)(nil)

func renderSyntheticImage(width, height int, seed string) ([]byte, error) {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	base := colorFromSeed(seed, 0)
	accent := colorFromSeed(seed, 1)
	draw.Draw(img, img.Bounds(), &stdimage.Uniform{base}, stdimage.Point{}, draw.Src)

	stripeHeight := max(32, height/12)
	for y := 0; y < height; y += stripeHeight * 2 {
		stripe := stdimage.Rect(0, y, width, min(height, y+stripeHeight))
		draw.Draw(img, stripe, &stdimage.Uniform{accent}, stdimage.Point{}, draw.Over)
	}

	diagonal := colorFromSeed(seed, 2)
	for x := 0; x < max(width, height); x += max(16, width/32) {
		for y := 0; y < height; y++ {
			xx := x + y
			if xx >= width {
				break
			}
			img.Set(xx, y, diagonal)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("synthetic: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func colorFromSeed(seed string, shift int) color.RGBA {
	if len(seed) < 6 {
		seed = "000000"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{
		R: parseHexByte(segment[0:2]),
		G: parseHexByte(segment[2:4]),
		B: parseHexByte(segment[4:6]),
		A: 255,
	}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(fmt.Sprintf("%v", part)))
		hasher.Write([]byte{'|'})
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
