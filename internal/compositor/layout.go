package compositor

import (
	"image"
	"image/color"
	"math"
)

// Palette is the fixed box colour set.
var Palette = [8]color.RGBA{
	{0xec, 0x37, 0x50, 0xff},
	{0xff, 0x8c, 0x37, 0xff},
	{0xf1, 0xc4, 0x0f, 0xff},
	{0x33, 0xd6, 0xa6, 0xff},
	{0x5b, 0xc0, 0xde, 0xff},
	{0x33, 0x8e, 0xda, 0xff},
	{0xa6, 0x33, 0xd6, 0xff},
	{0x84, 0x92, 0xa6, 0xff},
}

// TierColors colour heatmap cells from no activity up to six hours or more.
var TierColors = [5]color.RGBA{
	{0x25, 0x25, 0x25, 0xff},
	{0x5c, 0x15, 0x20, 0xff},
	{0x8a, 0x1c, 0x2e, 0xff},
	{0xb8, 0x23, 0x3c, 0xff},
	{0xec, 0x37, 0x50, 0xff},
}

var (
	background = color.RGBA{0x12, 0x12, 0x12, 0xff}
	panel      = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	titleInk   = withAlpha(white, 0.8)
	rankInk    = withAlpha(white, 0.5)
	shadowInk  = color.NRGBA{A: 128}
)

const (
	margin    = 25.0
	gap       = 20.0
	gridTop   = 375.0
	boxHeight = 160.0
	boxRadius = 10.0

	coverSize = 275.0
	coverTop  = 50.0
	coverBars = 40

	heatCols    = 53
	heatRows    = 7
	cellGap     = 2.0
	cellRadius  = 1.0
	heatPadX    = 10.0
	heatTitleH  = 40.0
	heatReserve = 50.0
)

// layout holds geometry derived from the canvas size.
type layout struct {
	boxWidth float64

	coverX float64

	heatX, heatY, heatW, heatH float64
	cellSize                   float64
	cellX0, cellY0             float64
}

func computeLayout() layout {
	var l layout
	l.boxWidth = (Width - margin*2 - gap*2) / 3
	l.coverX = (Width - coverSize) / 2

	l.heatX = margin + l.boxWidth + gap
	l.heatY = gridTop
	l.heatW = l.boxWidth*2 + gap
	l.heatH = boxHeight

	availW := l.heatW - 2*heatPadX
	availH := l.heatH - heatReserve
	l.cellSize = math.Min(
		(availW-(heatCols-1)*cellGap)/heatCols,
		(availH-(heatRows-1)*cellGap)/heatRows,
	)

	gridH := heatRows*l.cellSize + (heatRows-1)*cellGap
	offsetY := (l.heatH - heatTitleH - gridH) / 2
	l.cellX0 = l.heatX + heatPadX
	l.cellY0 = l.heatY + heatTitleH + offsetY
	return l
}

// boxOrigin returns the top-left corner of the grid cell at (col, row).
func (l layout) boxOrigin(col, row int) (float64, float64) {
	return margin + float64(col)*(l.boxWidth+gap), gridTop + float64(row)*(boxHeight+gap)
}

// cellOrigin returns the top-left corner of heatmap cell (col, row).
func (l layout) cellOrigin(col, row int) (float64, float64) {
	return l.cellX0 + float64(col)*(l.cellSize+cellGap), l.cellY0 + float64(row)*(l.cellSize+cellGap)
}

// CoverBounds is the pixel rectangle the cover art may touch.
func CoverBounds() image.Rectangle {
	l := computeLayout()
	return image.Rect(
		int(math.Floor(l.coverX)), int(coverTop),
		int(math.Ceil(l.coverX+coverSize)), int(coverTop+coverSize),
	)
}

// HeatmapCellCenter returns the pixel at the centre of heatmap cell (col, row).
func HeatmapCellCenter(col, row int) image.Point {
	l := computeLayout()
	x, y := l.cellOrigin(col, row)
	return image.Pt(int(x+l.cellSize/2), int(y+l.cellSize/2))
}
