package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"f1acleaderboard/pkg/model"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/pkg/errors"
)

const (
	pictureWidth  = 1000
	pictureHeight = 600
	pictureMargin = 40.0
)

var (
	colorBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorAxis       = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorF1         = color.RGBA{0xe1, 0x06, 0x00, 0xff}
	colorAC         = color.RGBA{0x88, 0x88, 0x88, 0xff}
)

// ComparisonPNG draws the F1 and simulator averages as paired bars, one pair
// per circuit in row order. It carries no text so it needs no fonts; the
// caller labels it.
func ComparisonPNG(w io.Writer, rows []model.ComparisonRow) error {
	rect := image.Rect(0, 0, pictureWidth, pictureHeight)
	dest := image.NewRGBA(rect)
	gc := draw2dimg.NewGraphicContext(dest)

	gc.SetFillColor(colorBackground)
	draw2dkit.Rectangle(gc, 0, 0, pictureWidth, pictureHeight)
	gc.Fill()

	invertY(gc, rect)
	drawBars(gc, rows)
	drawAxis(gc)

	return errors.Wrap(png.Encode(w, dest), "encoding comparison picture")
}

// Flips the image around the Y axis so bars grow upwards.
func invertY(gc draw2d.GraphicContext, rect image.Rectangle) {
	gc.Translate(0, float64(rect.Max.Y))
	gc.Scale(1.0, -1.0)
}

func drawAxis(gc draw2d.GraphicContext) {
	gc.Save()
	gc.SetStrokeColor(colorAxis)
	gc.SetLineWidth(2)
	gc.MoveTo(pictureMargin, pictureHeight-pictureMargin)
	gc.LineTo(pictureMargin, pictureMargin)
	gc.LineTo(pictureWidth-pictureMargin, pictureMargin)
	gc.Stroke()
	gc.Restore()
}

func drawBars(gc draw2d.GraphicContext, rows []model.ComparisonRow) {
	if len(rows) == 0 {
		return
	}
	top := 0.0
	for _, r := range rows {
		top = max(top, r.F1AvgLapMS, r.ACAvgLapMS)
	}
	if top <= 0 {
		return
	}

	plotWidth := pictureWidth - 2*pictureMargin
	plotHeight := pictureHeight - 2*pictureMargin
	group := plotWidth / float64(len(rows))
	bar := group * 0.35

	for i, r := range rows {
		x := pictureMargin + float64(i)*group + group*0.15
		drawBar(gc, x, bar, r.F1AvgLapMS/top*plotHeight, colorF1)
		drawBar(gc, x+bar, bar, r.ACAvgLapMS/top*plotHeight, colorAC)
	}
}

func drawBar(gc draw2d.GraphicContext, x, width, height float64, c color.Color) {
	if height <= 0 {
		return
	}
	gc.Save()
	gc.SetFillColor(c)
	draw2dkit.Rectangle(gc, x, pictureMargin, x+width, pictureMargin+height)
	gc.Fill()
	gc.Restore()
}
