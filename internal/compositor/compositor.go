// Package compositor renders the year summary onto a fixed 1000×1000 image.
//
// Every data-bearing region is laid out analytically from the canvas size,
// so the same aggregate result always yields the same pixels. The only
// randomness is the cover art texture, which comes from an injectable
// source and is confined to the cover square.
package compositor

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
)

// Canvas size in pixels.
const (
	Width  = 1000
	Height = 1000
)

// Compositor renders summary images.
type Compositor struct {
	newRand  func() *rand.Rand
	coverArt bool
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithCoverSeed makes the cover art texture reproducible. Every render
// starts from the same seed.
func WithCoverSeed(seed uint64) Option {
	return func(c *Compositor) {
		c.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithRand draws the cover art from r. Consecutive renders continue the
// same stream.
func WithRand(r *rand.Rand) Option {
	return func(c *Compositor) {
		c.newRand = func() *rand.Rand { return r }
	}
}

// WithoutCoverArt leaves the cover square plain.
func WithoutCoverArt() Option {
	return func(c *Compositor) {
		c.coverArt = false
	}
}

// New returns a Compositor. Without a seed option the cover art changes
// from render to render.
func New(opts ...Option) *Compositor {
	c := &Compositor{coverArt: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.newRand == nil {
		c.newRand = func() *rand.Rand {
			now := uint64(time.Now().UnixNano())
			return rand.New(rand.NewPCG(now, now>>1))
		}
	}
	return c
}

// FileName returns the export file name for year.
func FileName(year int) string {
	return fmt.Sprintf("hackatime-wrapped-%d.png", year)
}

// Render draws the summary of res.
func (c *Compositor) Render(res aggregate.Result) (*image.RGBA, error) {
	ts, err := newTypesetter()
	if err != nil {
		return nil, err
	}
	defer ts.close()

	cv := newCanvas(Width, Height)
	cv.fillRect(0, 0, Width, Height, background)

	l := computeLayout()
	r := &renderer{cv: cv, ts: ts, layout: l}

	r.yearLabel(res.Year)
	var rng *rand.Rand
	if c.coverArt {
		rng = c.newRand()
	}
	r.cover(rng)
	r.heatmap(res)
	r.boxes(res)
	r.footer()

	return cv.img, nil
}

// Encode renders res and writes it to w as PNG.
func (c *Compositor) Encode(w io.Writer, res aggregate.Result) error {
	img, err := c.Render(res)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Export writes the summary image for res into dir and returns its path.
func (c *Compositor) Export(dir string, res aggregate.Result) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(res.Year))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if err := c.Encode(f, res); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return path, nil
}

type renderer struct {
	cv     *canvas
	ts     *typesetter
	layout layout
}
