// Package renderer turns frame draw trees into RGBA images.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ivlev/qrpromo/internal/scene"
	"github.com/ivlev/qrpromo/internal/source"
	"github.com/ivlev/qrpromo/internal/system"
)

// glowSteps is the number of layers a blurred shape is approximated with.
const glowSteps = 8

// Rasterizer draws scene nodes. It keeps per-size font faces and a scratch
// path rasterizer, so each render worker needs its own instance.
type Rasterizer struct {
	src   source.Source
	faces *faceCache
	z     *vector.Rasterizer
}

// New returns a rasterizer reading images from src. fonts may be nil.
func New(src source.Source, fonts *Fonts) *Rasterizer {
	if fonts == nil {
		fonts = &Fonts{}
	}
	return &Rasterizer{src: src, faces: newFaceCache(fonts), z: vector.NewRasterizer(0, 0)}
}

// Close releases the cached font faces.
func (r *Rasterizer) Close() {
	r.faces.close()
}

// Render draws root onto a fresh frame from the shared image pool. Return
// the frame with system.PutImage when done.
func (r *Rasterizer) Render(root scene.Node, width, height int) (*image.RGBA, error) {
	img := system.GetImage(width, height)
	if err := r.Draw(img, root); err != nil {
		system.PutImage(img)
		return nil, err
	}
	return img, nil
}

// Draw paints root over dst.
func (r *Rasterizer) Draw(dst *image.RGBA, root scene.Node) error {
	return r.draw(dst, &root, IdentityView(), 1)
}

// DrawScaled paints root over dst shrunk by zoom, anchored at the top left.
func (r *Rasterizer) DrawScaled(dst *image.RGBA, root scene.Node, zoom float64) error {
	return r.draw(dst, &root, View{Zoom: zoom}, 1)
}

func (r *Rasterizer) draw(dst *image.RGBA, n *scene.Node, parent View, parentOpacity float64) error {
	opacity := parentOpacity * n.Transform.Opacity
	if opacity <= 0 || n.Transform.Scale <= 0 {
		return nil
	}
	v := parent.Enter(n.Box, n.Transform)

	var err error
	switch n.Kind {
	case scene.KindRect:
		r.drawRect(dst, n, v, opacity)
	case scene.KindText:
		err = r.drawText(dst, n, v, opacity)
	case scene.KindImage:
		err = r.drawImage(dst, n, v, opacity)
	case scene.KindGrid:
		r.drawGrid(dst, n, v, opacity)
	case scene.KindGroup:
	default:
		err = fmt.Errorf("unknown node kind %q", n.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", n.Name, err)
	}

	for i := range n.Children {
		if err := r.draw(dst, &n.Children[i], v, opacity); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rasterizer) drawRect(dst *image.RGBA, n *scene.Node, v View, opacity float64) {
	b := v.Box(n.Box)
	radius := v.Length(n.Radius)

	if n.Blur > 0 {
		r.drawGlow(dst, b, radius, v.Length(n.Blur), n.Fill, opacity)
		return
	}

	if n.Border > 0 {
		bw := v.Length(n.Border)
		outer := roundedRect(b.X, b.Y, b.W, b.H, radius)
		inner := roundedRect(b.X+bw, b.Y+bw, b.W-2*bw, b.H-2*bw, radius-bw)
		r.fill(dst, withAlpha(n.BorderColor, opacity), outer, inner.reversed())
		r.fill(dst, withAlpha(n.Fill, opacity), inner)
		return
	}
	r.fill(dst, withAlpha(n.Fill, opacity), roundedRect(b.X, b.Y, b.W, b.H, radius))
}

// drawGlow approximates a blurred shape with concentric layers whose
// combined alpha at the centre equals the shape's alpha.
func (r *Rasterizer) drawGlow(dst *image.RGBA, b scene.Box, radius, blur float64, c scene.Color, opacity float64) {
	total := float64(c.A) / 255 * opacity
	layer := 1 - math.Pow(1-total, 1.0/glowSteps)
	lc := c
	lc.A = 255

	for i := 0; i < glowSteps; i++ {
		d := blur * (0.5 - float64(i)/glowSteps)
		g := b.Outset(d)
		r.fill(dst, withAlpha(lc, layer), roundedRect(g.X, g.Y, g.W, g.H, math.Max(0, radius+d)))
	}
}

func (r *Rasterizer) drawGrid(dst *image.RGBA, n *scene.Node, v View, opacity float64) {
	g := n.Grid
	if g == nil || g.Cols <= 0 {
		return
	}
	rows := g.Rows()
	b := v.Box(n.Box)
	gap := v.Length(g.Gap)
	cw := (b.W - gap*float64(g.Cols-1)) / float64(g.Cols)
	ch := (b.H - gap*float64(rows-1)) / float64(rows)
	radius := v.Length(g.Radius)

	cells := make([]polygon, 0, len(g.Cells))
	for i, on := range g.Cells {
		if !on {
			continue
		}
		col, row := i%g.Cols, i/g.Cols
		x := b.X + float64(col)*(cw+gap)
		y := b.Y + float64(row)*(ch+gap)
		cells = append(cells, roundedRect(x, y, cw, ch, radius))
	}
	r.fill(dst, withAlpha(g.Color, opacity), cells...)
}

func (r *Rasterizer) drawImage(dst *image.RGBA, n *scene.Node, v View, opacity float64) error {
	if r.src == nil {
		return fmt.Errorf("no image source for %q", n.Image)
	}
	src, err := r.src.Image(n.Image)
	if err != nil {
		return err
	}

	b := v.Box(n.Box)
	box := pixelRect(b)
	region := box.Intersect(dst.Bounds())
	if region.Empty() {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	// Rounded corners and opacity go through an alpha mask over region.
	mask := image.NewAlpha(image.Rect(0, 0, region.Dx(), region.Dy()))
	shape := roundedRect(b.X, b.Y, b.W, b.H, v.Length(n.Radius)).clip(region)
	r.rasterize(mask, region.Min, image.NewUniform(color.Alpha{A: uint8(math.Round(255 * clamp01(opacity)))}), shape)

	draw.DrawMask(dst, region, scaled, region.Min.Sub(box.Min), mask, image.Point{}, draw.Over)
	return nil
}

func (r *Rasterizer) drawText(dst *image.RGBA, n *scene.Node, v View, opacity float64) error {
	if n.Text == "" || n.Font == nil {
		return nil
	}
	size := v.Length(n.Font.Size)
	if size < 1 {
		return nil
	}
	b := v.Box(n.Box)
	src := image.NewUniform(withAlpha(n.Font.Color, opacity))

	face, err := r.faces.face(size, n.Font.Weight)
	if err != nil {
		return err
	}
	if face == nil {
		r.drawFallbackText(dst, n.Text, n.Font.Align, b, size, src)
		return nil
	}

	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	width := fixedToFloat(d.MeasureString(n.Text))
	m := face.Metrics()
	ascent, descent := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)

	x := alignX(n.Font.Align, b, width)
	baseline := b.Y + (b.H+ascent-descent)/2
	d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)}
	d.DrawString(n.Text)
	return nil
}

// drawFallbackText sets text in the bitmap face and scales it to size.
func (r *Rasterizer) drawFallbackText(dst *image.RGBA, text string, align scene.Align, b scene.Box, size float64, src image.Image) {
	m := fallbackFace.Metrics()
	lineH := fixedToFloat(m.Height)
	d := &font.Drawer{Face: fallbackFace, Src: src}
	w := d.MeasureString(text).Ceil()
	if w <= 0 {
		return
	}

	line := image.NewRGBA(image.Rect(0, 0, w, int(lineH)))
	d.Dst = line
	d.Dot = fixed.Point26_6{Y: m.Ascent}
	d.DrawString(text)

	k := size / lineH
	tw, th := float64(w)*k, lineH*k
	x := alignX(align, b, tw)
	y := b.Y + (b.H-th)/2
	target := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+tw)), int(math.Round(y+th)))
	xdraw.ApproxBiLinear.Scale(dst, target, line, line.Bounds(), draw.Over, nil)
}

func alignX(a scene.Align, b scene.Box, width float64) float64 {
	switch a {
	case scene.AlignLeft:
		return b.X
	case scene.AlignRight:
		return b.X + b.W - width
	default:
		return b.X + (b.W-width)/2
	}
}

// fill paints the union of polys (nonzero winding, so a reversed polygon
// cuts a hole) with c.
func (r *Rasterizer) fill(dst *image.RGBA, c color.NRGBA, polys ...polygon) {
	if c.A == 0 || len(polys) == 0 {
		return
	}
	var region image.Rectangle
	for _, p := range polys {
		region = region.Union(p.bounds())
	}
	region = region.Intersect(dst.Bounds())
	if region.Empty() {
		return
	}

	clipped := make([]polygon, 0, len(polys))
	for _, p := range polys {
		if q := p.clip(region); len(q) >= 3 {
			clipped = append(clipped, q)
		}
	}
	r.rasterize(dst, image.Point{}, image.NewUniform(c), clipped...)
}

// rasterize draws polys into dst. Polygons are in canvas pixels and must
// lie inside the canvas area dst covers; offset is the canvas position of
// dst's origin.
func (r *Rasterizer) rasterize(dst draw.Image, offset image.Point, src image.Image, polys ...polygon) {
	var area image.Rectangle
	for _, p := range polys {
		area = area.Union(p.bounds())
	}
	area = area.Intersect(dst.Bounds().Add(offset))
	if area.Empty() {
		return
	}

	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	r.z.Reset(area.Dx(), area.Dy())
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		r.z.MoveTo(float32(p[0].X-ox), float32(p[0].Y-oy))
		for _, q := range p[1:] {
			r.z.LineTo(float32(q.X-ox), float32(q.Y-oy))
		}
		r.z.ClosePath()
	}
	r.z.Draw(dst, area.Sub(offset), src, image.Point{})
}

func withAlpha(c scene.Color, opacity float64) color.NRGBA {
	n := c.NRGBA()
	n.A = uint8(math.Round(float64(n.A) * clamp01(opacity)))
	return n
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
