package compositor

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type weight int

const (
	regular weight = iota
	bold
)

type align int

const (
	alignLeft align = iota
	alignCenter
)

var loadFonts = sync.OnceValues(func() ([2]*opentype.Font, error) {
	var fonts [2]*opentype.Font
	var err error
	if fonts[regular], err = opentype.Parse(goregular.TTF); err != nil {
		return fonts, fmt.Errorf("parse regular font: %w", err)
	}
	if fonts[bold], err = opentype.Parse(gobold.TTF); err != nil {
		return fonts, fmt.Errorf("parse bold font: %w", err)
	}
	return fonts, nil
})

type faceKey struct {
	w    weight
	size float64
}

// typesetter caches faces for a single render. Faces are not safe for
// concurrent use, so each render gets its own.
type typesetter struct {
	fonts [2]*opentype.Font
	faces map[faceKey]font.Face
}

func newTypesetter() (*typesetter, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &typesetter{fonts: fonts, faces: make(map[faceKey]font.Face)}, nil
}

// face returns a face where size is in pixels.
func (ts *typesetter) face(w weight, size float64) font.Face {
	key := faceKey{w, size}
	if f, ok := ts.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(ts.fonts[w], &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// Go fonts always produce a face for positive sizes.
		panic(fmt.Sprintf("compositor: new face: %v", err))
	}
	ts.faces[key] = f
	return f
}

func (ts *typesetter) close() {
	for _, f := range ts.faces {
		_ = f.Close()
	}
}

func (ts *typesetter) measure(w weight, size float64, s string) float64 {
	return float64(font.MeasureString(ts.face(w, size), s)) / 64
}

// draw renders s with its baseline at y. For alignCenter x is the centre.
func (ts *typesetter) draw(dst draw.Image, s string, x, y float64, w weight, size float64, a align, c color.Color) {
	face := ts.face(w, size)
	if a == alignCenter {
		x -= float64(font.MeasureString(face, s)) / 64 / 2
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(s)
}

// fit shortens s with an ellipsis until it is at most maxWidth wide.
func (ts *typesetter) fit(s string, w weight, size, maxWidth float64) string {
	if ts.measure(w, size, s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if ts.measure(w, size, candidate) <= maxWidth {
			return candidate
		}
	}
	return "…"
}

// mask renders s in full opacity into an alpha image sized to the text,
// returning the mask and the baseline offset within it.
func (ts *typesetter) mask(s string, w weight, size float64) (*image.Alpha, int) {
	face := ts.face(w, size)
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()
	width := font.MeasureString(face, s).Ceil()

	a := image.NewAlpha(image.Rect(0, 0, max(width, 1), max(height, 1)))
	d := &font.Drawer{
		Dst:  a,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(s)
	return a, ascent
}

// drawRotated renders s turned a quarter turn counter-clockwise so that it
// reads bottom to top, centred on (cx, cy) along its length with the
// baseline at x = cx.
func (ts *typesetter) drawRotated(dst draw.Image, s string, cx, cy int, w weight, size float64, c color.Color) {
	src, ascent := ts.mask(s, w, size)
	sb := src.Bounds()

	rot := image.NewAlpha(image.Rect(0, 0, sb.Dy(), sb.Dx()))
	for ty := range sb.Dy() {
		for tx := range sb.Dx() {
			rot.SetAlpha(ty, sb.Dx()-1-tx, src.AlphaAt(tx, ty))
		}
	}

	r := rot.Bounds().Add(image.Pt(cx-ascent, cy-sb.Dx()/2))
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, rot, image.Point{}, draw.Over)
}

// drawShadow paints a blurred copy of s underneath where draw would render
// it. The blur comes from scaling the glyph mask down and back up.
func (ts *typesetter) drawShadow(dst draw.Image, s string, x, y float64, w weight, size float64, a align, blur int, c color.Color) {
	glyphs, ascent := ts.mask(s, w, size)
	if a == alignCenter {
		x -= ts.measure(w, size, s) / 2
	}

	pad := blur * 2
	gb := glyphs.Bounds()
	padded := image.NewAlpha(image.Rect(0, 0, gb.Dx()+2*pad, gb.Dy()+2*pad))
	draw.Draw(padded, gb.Add(image.Pt(pad, pad)), glyphs, image.Point{}, draw.Src)

	pb := padded.Bounds()
	factor := max(blur, 1)
	small := image.NewAlpha(image.Rect(0, 0, max(pb.Dx()/factor, 1), max(pb.Dy()/factor, 1)))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), padded, pb, draw.Src, nil)
	soft := image.NewAlpha(pb)
	draw.CatmullRom.Scale(soft, pb, small, small.Bounds(), draw.Src, nil)

	origin := image.Pt(int(x)-pad, int(y)-ascent-pad)
	draw.DrawMask(dst, pb.Add(origin), image.NewUniform(c), image.Point{}, soft, image.Point{}, draw.Over)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
