package compositor

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5523

// canvas draws anti-aliased shapes onto an RGBA image.
type canvas struct {
	img *image.RGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// path collects float coordinates for a rasterizer sized to its bounds.
type path struct {
	ops  []pathOp
	minX float32
	minY float32
	maxX float32
	maxY float32
}

type opKind int

const (
	opMove opKind = iota
	opLine
	opCube
	opClose
)

type pathOp struct {
	kind opKind
	pts  [3][2]float32
}

func newPath() *path {
	return &path{
		minX: math.MaxFloat32, minY: math.MaxFloat32,
		maxX: -math.MaxFloat32, maxY: -math.MaxFloat32,
	}
}

func (p *path) extend(x, y float32) {
	p.minX = min(p.minX, x)
	p.minY = min(p.minY, y)
	p.maxX = max(p.maxX, x)
	p.maxY = max(p.maxY, y)
}

func (p *path) moveTo(x, y float32) {
	p.extend(x, y)
	p.ops = append(p.ops, pathOp{kind: opMove, pts: [3][2]float32{{x, y}}})
}

func (p *path) lineTo(x, y float32) {
	p.extend(x, y)
	p.ops = append(p.ops, pathOp{kind: opLine, pts: [3][2]float32{{x, y}}})
}

func (p *path) cubeTo(bx, by, cx, cy, dx, dy float32) {
	p.extend(bx, by)
	p.extend(cx, cy)
	p.extend(dx, dy)
	p.ops = append(p.ops, pathOp{kind: opCube, pts: [3][2]float32{{bx, by}, {cx, cy}, {dx, dy}}})
}

func (p *path) close() {
	p.ops = append(p.ops, pathOp{kind: opClose})
}

// rect appends an axis-aligned rectangle.
func (p *path) rect(x, y, w, h float32) {
	p.moveTo(x, y)
	p.lineTo(x+w, y)
	p.lineTo(x+w, y+h)
	p.lineTo(x, y+h)
	p.close()
}

// roundRect appends a rectangle with circular corners of radius r.
func (p *path) roundRect(x, y, w, h, r float32) {
	r = min(r, w/2, h/2)
	if r <= 0 {
		p.rect(x, y, w, h)
		return
	}
	k := r * kappa
	p.moveTo(x+r, y)
	p.lineTo(x+w-r, y)
	p.cubeTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	p.lineTo(x+w, y+h-r)
	p.cubeTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	p.lineTo(x+r, y+h)
	p.cubeTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	p.lineTo(x, y+r)
	p.cubeTo(x, y+r-k, x+r-k, y, x+r, y)
	p.close()
}

// circle appends a circle. Reversed circles cut holes in forward ones.
func (p *path) circle(cx, cy, r float32, reverse bool) {
	k := r * kappa
	if !reverse {
		p.moveTo(cx+r, cy)
		p.cubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		p.cubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		p.cubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		p.cubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		p.close()
		return
	}
	p.moveTo(cx+r, cy)
	p.cubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
	p.cubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
	p.cubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
	p.cubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	p.close()
}

// segment appends a straight stroke of width lw from (x0,y0) to (x1,y1).
func (p *path) segment(x0, y0, x1, y1, lw float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*lw/2, dx/l*lw/2
	p.moveTo(x0+nx, y0+ny)
	p.lineTo(x1+nx, y1+ny)
	p.lineTo(x1-nx, y1-ny)
	p.lineTo(x0-nx, y0-ny)
	p.close()
}

// fill rasterizes p with c. The rasterizer covers only the path bounds
// clipped to the canvas.
func (cv *canvas) fill(p *path, c color.Color) {
	if len(p.ops) == 0 {
		return
	}
	r := image.Rect(
		int(math.Floor(float64(p.minX))), int(math.Floor(float64(p.minY))),
		int(math.Ceil(float64(p.maxX))), int(math.Ceil(float64(p.maxY))),
	).Intersect(cv.img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	for _, op := range p.ops {
		switch op.kind {
		case opMove:
			z.MoveTo(op.pts[0][0]-ox, op.pts[0][1]-oy)
		case opLine:
			z.LineTo(op.pts[0][0]-ox, op.pts[0][1]-oy)
		case opCube:
			z.CubeTo(
				op.pts[0][0]-ox, op.pts[0][1]-oy,
				op.pts[1][0]-ox, op.pts[1][1]-oy,
				op.pts[2][0]-ox, op.pts[2][1]-oy,
			)
		case opClose:
			z.ClosePath()
		}
	}
	z.Draw(cv.img, r, image.NewUniform(c), image.Point{})
}

func (cv *canvas) fillRect(x, y, w, h float64, c color.Color) {
	p := newPath()
	p.rect(float32(x), float32(y), float32(w), float32(h))
	cv.fill(p, c)
}

func (cv *canvas) fillRoundRect(x, y, w, h, r float64, c color.Color) {
	p := newPath()
	p.roundRect(float32(x), float32(y), float32(w), float32(h), float32(r))
	cv.fill(p, c)
}

// strokeCircle draws a ring of width lw centred on radius r.
func (cv *canvas) strokeCircle(cx, cy, r, lw float64, c color.Color) {
	p := newPath()
	p.circle(float32(cx), float32(cy), float32(r+lw/2), false)
	p.circle(float32(cx), float32(cy), float32(r-lw/2), true)
	cv.fill(p, c)
}

// strokePolyline draws connected straight segments of width lw.
func (cv *canvas) strokePolyline(pts [][2]float64, lw float64, c color.Color) {
	p := newPath()
	for i := 1; i < len(pts); i++ {
		p.segment(float32(pts[i-1][0]), float32(pts[i-1][1]), float32(pts[i][0]), float32(pts[i][1]), float32(lw))
	}
	cv.fill(p, c)
}

// withAlpha returns c with opacity a in [0,1].
func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}
