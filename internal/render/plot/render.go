package plot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	marginLeft   = 90.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 80.0

	titleSize = 18.0
	labelSize = 14.0
	tickSize  = 11.0

	// pixel coordinates are clamped to this many plot heights outside the area
	clampFactor = 10.0
)

// Renderer rasterises figures to PNG. It is safe for concurrent use: font
// faces are created per render from the shared parsed font.
type Renderer struct {
	width  int
	height int
	font   *truetype.Font
}

// NewRenderer creates a renderer producing width×height images.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= int(marginLeft+marginRight) || height <= int(marginTop+marginBottom) {
		return nil, fmt.Errorf("plot size %dx%d too small", width, height)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Renderer{width: width, height: height, font: f}, nil
}

// Size returns the output image dimensions.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// HealthCheck verifies that a font face can be built.
func (r *Renderer) HealthCheck() error {
	face := r.face(tickSize)
	defer face.Close()
	if _, ok := face.GlyphAdvance('0'); !ok {
		return fmt.Errorf("font has no glyph for '0'")
	}
	return nil
}

func (r *Renderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size, Hinting: font.HintingNone})
}

// PNG renders fig and writes it as PNG.
func (r *Renderer) PNG(fig Figure, w io.Writer) error {
	dc := r.draw(fig)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Image renders fig to an in-memory image.
func (r *Renderer) Image(fig Figure) image.Image {
	return r.draw(fig).Image()
}

// area maps data coordinates onto the plot rectangle.
type area struct {
	x0, y0, x1, y1 float64 // pixel bounds, y0 at top
	xr, yr         Range
}

func (a area) px(x float64) float64 {
	return clamp(a.x0+(x-a.xr.Min)/a.xr.Span()*(a.x1-a.x0), a.x0, a.x1, a.x1-a.x0)
}

func (a area) py(y float64) float64 {
	return clamp(a.y1-(y-a.yr.Min)/a.yr.Span()*(a.y1-a.y0), a.y0, a.y1, a.y1-a.y0)
}

func clamp(v, lo, hi, extent float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo-clampFactor*extent, math.Min(hi+clampFactor*extent, v))
}

func (r *Renderer) draw(fig Figure) *gg.Context {
	w, h := float64(r.width), float64(r.height)
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(color.White)
	dc.Clear()

	xr, yr := fig.X, fig.Y
	if xr.Span() <= 0 {
		xr = Range{Min: xr.Min - 1, Max: xr.Max + 1}
	}
	if yr.Span() <= 0 || math.IsInf(yr.Span(), 0) || math.IsNaN(yr.Span()) {
		yr = Range{Min: -1, Max: 1}
	}
	a := area{x0: marginLeft, y0: marginTop, x1: w - marginRight, y1: h - marginBottom, xr: xr, yr: yr}

	tick := r.face(tickSize)
	defer tick.Close()
	label := r.face(labelSize)
	defer label.Close()
	title := r.face(titleSize)
	defer title.Close()

	r.drawGridAndTicks(dc, fig, a, tick)

	dc.DrawRectangle(a.x0, a.y0, a.x1-a.x0, a.y1-a.y0)
	dc.Clip()
	for _, ref := range fig.RefLines {
		drawRefLine(dc, a, ref)
	}
	for _, s := range fig.Series {
		drawSeries(dc, a, s)
	}
	dc.ResetClip()

	dc.SetFontFace(tick)
	for _, m := range fig.Markers {
		if !xr.Contains(m.X) || !yr.Contains(m.Y) {
			continue
		}
		x, y := a.px(m.X), a.py(m.Y)
		dc.SetColor(m.Color)
		dc.DrawCircle(x, y, m.Radius)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(m.Label, x, y-m.Radius-4, 0.5, 0)
	}

	// frame
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(a.x0, a.y0, a.x1-a.x0, a.y1-a.y0)
	dc.Stroke()

	dc.SetFontFace(title)
	dc.DrawStringAnchored(fig.Title, (a.x0+a.x1)/2, marginTop/2, 0.5, 0.5)

	dc.SetFontFace(label)
	dc.DrawStringAnchored(fig.XLabel, (a.x0+a.x1)/2, a.y1+40, 0.5, 0.5)
	dc.Push()
	ylx, yly := 22.0, (a.y0+a.y1)/2
	dc.RotateAbout(-math.Pi/2, ylx, yly)
	dc.DrawStringAnchored(fig.YLabel, ylx, yly, 0.5, 0.5)
	dc.Pop()

	if fig.Caption != "" {
		dc.SetFontFace(tick)
		dc.SetColor(color.Gray{Y: 0x60})
		dc.DrawStringAnchored(fig.Caption, a.x0, h-14, 0, 0)
	}

	if fig.Legend {
		r.drawLegend(dc, fig, a, tick)
	}
	return dc
}

func (r *Renderer) drawGridAndTicks(dc *gg.Context, fig Figure, a area, face font.Face) {
	dc.SetFontFace(face)
	dc.SetLineWidth(1)

	for _, v := range Ticks(a.xr, 10) {
		x := a.px(v)
		if fig.Grid {
			dc.SetColor(GridColor)
			dc.DrawLine(x, a.y0, x, a.y1)
			dc.Stroke()
		}
		dc.SetColor(color.Black)
		dc.DrawLine(x, a.y1, x, a.y1+5)
		dc.Stroke()
		dc.DrawStringAnchored(FormatTick(v), x, a.y1+8, 0.5, 1)
	}
	for _, v := range Ticks(a.yr, 8) {
		y := a.py(v)
		if fig.Grid {
			dc.SetColor(GridColor)
			dc.DrawLine(a.x0, y, a.x1, y)
			dc.Stroke()
		}
		dc.SetColor(color.Black)
		dc.DrawLine(a.x0-5, y, a.x0, y)
		dc.Stroke()
		dc.DrawStringAnchored(FormatTick(v), a.x0-8, y, 1, 0.5)
	}
}

func drawRefLine(dc *gg.Context, a area, ref RefLine) {
	switch ref.Orientation {
	case Horizontal:
		if !a.yr.Contains(ref.Value) {
			return
		}
		y := a.py(ref.Value)
		dc.DrawLine(a.x0, y, a.x1, y)
	case Vertical:
		if !a.xr.Contains(ref.Value) {
			return
		}
		x := a.px(ref.Value)
		dc.DrawLine(x, a.y0, x, a.y1)
	}
	dc.SetColor(ref.Color)
	dc.SetLineWidth(ref.Width)
	dc.SetDash(ref.Dash...)
	dc.Stroke()
	dc.SetDash()
}

func drawSeries(dc *gg.Context, a area, s Series) {
	if len(s.Points) < 2 {
		return
	}
	dc.MoveTo(a.px(s.Points[0].X), a.py(s.Points[0].Y))
	for _, p := range s.Points[1:] {
		dc.LineTo(a.px(p.X), a.py(p.Y))
	}
	dc.SetColor(s.Color)
	dc.SetLineWidth(s.Width)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Stroke()
}

func (r *Renderer) drawLegend(dc *gg.Context, fig Figure, a area, face font.Face) {
	type entry struct {
		text   string
		color  color.Color
		marker bool
	}
	var entries []entry
	for _, s := range fig.Series {
		if s.Label != "" {
			entries = append(entries, entry{text: s.Label, color: s.Color})
		}
	}
	if len(fig.Markers) > 0 && fig.MarkerLabel != "" {
		entries = append(entries, entry{text: fig.MarkerLabel, color: fig.Markers[0].Color, marker: true})
	}
	if len(entries) == 0 {
		return
	}

	dc.SetFontFace(face)
	var textW float64
	for _, e := range entries {
		tw, _ := dc.MeasureString(e.text)
		textW = math.Max(textW, tw)
	}
	const rowH, swatch, pad = 20.0, 26.0, 8.0
	boxW := pad + swatch + pad + textW + pad
	boxH := pad + rowH*float64(len(entries)) + pad - 4
	bx, by := a.x1-boxW-10, a.y0+10

	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRectangle(bx, by, boxW, boxH)
	dc.FillPreserve()
	dc.SetColor(color.Gray{Y: 0xaa})
	dc.SetLineWidth(1)
	dc.Stroke()

	for i, e := range entries {
		cy := by + pad + rowH*float64(i) + rowH/2 - 2
		sx := bx + pad
		dc.SetColor(e.color)
		if e.marker {
			dc.DrawCircle(sx+swatch/2, cy, 5)
			dc.Fill()
		} else {
			dc.SetLineWidth(2)
			dc.DrawLine(sx, cy, sx+swatch, cy)
			dc.Stroke()
		}
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(e.text, sx+swatch+pad, cy, 0, 0.5)
	}
}

// Ticks returns evenly spaced "nice" tick values (steps of 1, 2, or 5 times a
// power of ten) inside r, aiming for about target ticks.
func Ticks(r Range, target int) []float64 {
	span := r.Span()
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) || target < 1 {
		return nil
	}
	step := niceStep(span / float64(target))
	first := math.Ceil(r.Min/step) * step
	var out []float64
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > r.Max+step*1e-9 || i > 4*target {
			break
		}
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// FormatTick formats a tick label compactly, switching to exponent form for
// very large or very small magnitudes.
func FormatTick(v float64) string {
	abs := math.Abs(v)
	if v == 0 {
		return "0"
	}
	if abs >= 1e5 || abs < 1e-3 {
		return strconv.FormatFloat(v, 'e', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
