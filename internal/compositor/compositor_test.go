package compositor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/hackatime-wrapped/internal/aggregate"
	"github.com/j-veylop/hackatime-wrapped/internal/calendar"
	"github.com/j-veylop/hackatime-wrapped/internal/models"
)

func sampleResult(t *testing.T) aggregate.Result {
	t.Helper()
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	seconds := []int64{7 * 3600, 0, 1800, 2 * 3600, 4 * 3600, 0, 0, 9000}
	records := make([]models.DailyRecord, len(seconds))
	for i, s := range seconds {
		records[i] = models.DailyRecord{
			Date: calendar.AddDays(start, i),
			Stats: models.DayStats{
				TotalSeconds: s,
				Languages:    []models.CategoryStat{{Name: "Go", Seconds: s / 2}, {Name: "A very long language name indeed", Seconds: s / 3}},
			},
			Fetched: true,
		}
	}
	store, err := models.NewRecordStore(records)
	if err != nil {
		t.Fatal(err)
	}
	return aggregate.Compute(store)
}

func render(t *testing.T, c *Compositor, res aggregate.Result) *image.RGBA {
	t.Helper()
	img, err := c.Render(res)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return img
}

func TestFileName(t *testing.T) {
	if got := FileName(2025); got != "hackatime-wrapped-2025.png" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestRender_Size(t *testing.T) {
	img := render(t, New(WithoutCoverArt()), sampleResult(t))
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Errorf("bounds = %v, want %dx%d", b, Width, Height)
	}
	if got := img.RGBAAt(2, Height-2); got != background {
		t.Errorf("corner pixel = %v, want background %v", got, background)
	}
}

func TestRender_Deterministic(t *testing.T) {
	res := sampleResult(t)
	a := render(t, New(WithCoverSeed(42)), res)
	b := render(t, New(WithCoverSeed(42)), res)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same seed produced different images")
	}

	c := New(WithCoverSeed(7))
	if !bytes.Equal(render(t, c, res).Pix, render(t, c, res).Pix) {
		t.Error("repeated renders with one compositor differ")
	}
}

func TestRender_CoverArtIsolated(t *testing.T) {
	res := sampleResult(t)
	a := render(t, New(WithCoverSeed(1)), res)
	b := render(t, New(WithCoverSeed(2)), res)
	plain := render(t, New(WithoutCoverArt()), res)

	cover := CoverBounds()
	insideDiffers := false
	for y := range Height {
		for x := range Width {
			p := image.Pt(x, y)
			if p.In(cover) {
				if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
					insideDiffers = true
				}
				continue
			}
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) || a.RGBAAt(x, y) != plain.RGBAAt(x, y) {
				t.Fatalf("pixel %v outside the cover depends on cover randomness", p)
			}
		}
	}
	if !insideDiffers {
		t.Error("different seeds produced identical cover art")
	}
}

func TestRender_HeatmapCells(t *testing.T) {
	res := sampleResult(t)
	img := render(t, New(WithoutCoverArt()), res)

	// 2025-01-01 is a Wednesday: day 0 sits in column 0, row 3.
	first := int(res.FirstDate.Weekday())
	tests := []struct {
		day  int
		want color.RGBA
	}{
		{0, TierColors[4]},
		{1, TierColors[0]},
		{2, TierColors[1]},
		{3, TierColors[2]},
		{4, TierColors[3]},
		{200, TierColors[0]},
	}
	for _, tt := range tests {
		idx := tt.day + first
		p := HeatmapCellCenter(idx/7, idx%7)
		if got := img.RGBAAt(p.X, p.Y); got != tt.want {
			t.Errorf("day %d cell at %v = %v, want %v", tt.day, p, got, tt.want)
		}
	}
}

func TestPaletteColours(t *testing.T) {
	brand := color.RGBA{R: 0xec, G: 0x37, B: 0x50, A: 0xff}
	if Palette[0] != brand || TierColors[4] != brand {
		t.Errorf("brand red = %v / %v, want %v", Palette[0], TierColors[4], brand)
	}
	if want := (color.RGBA{R: 0x84, G: 0x92, B: 0xa6, A: 0xff}); Palette[7] != want {
		t.Errorf("Palette[7] = %v, want %v", Palette[7], want)
	}
	for i, c := range append(Palette[:], TierColors[:]...) {
		if c.A != 0xff {
			t.Errorf("colour %d = %v, want opaque", i, c)
		}
	}
	if background != (color.RGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}) {
		t.Errorf("background = %v", background)
	}
}

func TestRender_EmptyResult(t *testing.T) {
	img := render(t, New(WithoutCoverArt()), aggregate.Compute(models.RecordStore{}))

	p := HeatmapCellCenter(10, 3)
	if got := img.RGBAAt(p.X, p.Y); got != panel {
		t.Errorf("empty heatmap cell = %v, want panel colour %v", got, panel)
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := sampleResult(t)

	path, err := New(WithCoverSeed(3)).Export(dir, res)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if filepath.Base(path) != "hackatime-wrapped-2025.png" {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout()
	if l.cellSize <= 0 {
		t.Fatalf("cellSize = %v", l.cellSize)
	}
	lastX, lastY := l.cellOrigin(heatCols-1, heatRows-1)
	if lastX+l.cellSize > l.heatX+l.heatW || lastY+l.cellSize > l.heatY+l.heatH {
		t.Errorf("heatmap grid overflows its panel")
	}
	if x, _ := l.boxOrigin(2, 0); x+l.boxWidth > Width-margin+0.001 {
		t.Errorf("third column overflows margin: %v", x+l.boxWidth)
	}
}

func TestTypesetterFit(t *testing.T) {
	ts, err := newTypesetter()
	if err != nil {
		t.Fatal(err)
	}
	defer ts.close()

	if got := ts.fit("Go", bold, 25, 200); got != "Go" {
		t.Errorf("fit() trimmed short text to %q", got)
	}
	long := "Supercalifragilisticexpialidocious"
	got := ts.fit(long, bold, 25, 120)
	if got == long || ts.measure(bold, 25, got) > 120 {
		t.Errorf("fit() = %q, width %v", got, ts.measure(bold, 25, got))
	}
}
