package arbor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WhitePixel is a 1x1 white image used for solid color fills.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// toRGBA converts a Color to a color.RGBA equivalent (premultiplied).
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// --- Theme ---

// Theme is the color set for the default widgets and the panel chrome.
type Theme struct {
	Background  Color
	RowText     Color
	RowTextDim  Color // text color for rows whose object is disabled
	Selection   Color
	Toggle      Color
	ScrollTrack Color
	ScrollThumb Color
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  Color{0.13, 0.14, 0.15, 1},
		RowText:     Color{0.87, 0.88, 0.89, 1},
		RowTextDim:  Color{0.45, 0.46, 0.48, 1},
		Selection:   Color{0.17, 0.36, 0.53, 1},
		Toggle:      Color{0.62, 0.63, 0.65, 1},
		ScrollTrack: Color{0.10, 0.10, 0.11, 1},
		ScrollThumb: Color{0.35, 0.36, 0.38, 1},
	}
}

// --- Default widget factory ---

// DefaultWidgets is a WidgetFactory that draws flat-colored rows and toggle
// arrows with Ebitengine. It keeps every widget it ever created in creation
// order; drawing walks that order, hit testing walks it in reverse. Pass a
// nil face to fall back to the debug bitmap font.
type DefaultWidgets struct {
	theme Theme
	face  text.Face
	all   []panelWidget
}

// panelWidget is what the factory can do with any widget it created,
// independent of row or toggle shape.
type panelWidget interface {
	draw(dst *ebiten.Image)
	hit(x, y float64) bool
	click()
}

// NewDefaultWidgets creates a factory with the given theme and text face.
func NewDefaultWidgets(theme Theme, face text.Face) *DefaultWidgets {
	return &DefaultWidgets{theme: theme, face: face}
}

// NewRow creates one label row widget.
func (d *DefaultWidgets) NewRow() RowWidget {
	w := &defaultRow{owner: d}
	d.all = append(d.all, w)
	return w
}

// NewToggle creates one expand/collapse arrow widget.
func (d *DefaultWidgets) NewToggle() ToggleWidget {
	w := &defaultToggle{owner: d}
	d.all = append(d.all, w)
	return w
}

// Draw renders every active widget onto dst in creation order.
func (d *DefaultWidgets) Draw(dst *ebiten.Image) {
	for _, w := range d.all {
		w.draw(dst)
	}
}

// Click routes a pointer position to the topmost active widget under it and
// reports whether one was hit.
func (d *DefaultWidgets) Click(x, y float64) bool {
	if w := d.widgetAt(x, y); w != nil {
		w.click()
		return true
	}
	return false
}

// widgetAt returns the topmost active widget containing (x, y).
func (d *DefaultWidgets) widgetAt(x, y float64) panelWidget {
	for i := len(d.all) - 1; i >= 0; i-- {
		if d.all[i].hit(x, y) {
			return d.all[i]
		}
	}
	return nil
}

// WidgetCount returns the total number of widgets the factory has created.
// With pooling this tracks the most rows ever visible at once, not the node
// count.
func (d *DefaultWidgets) WidgetCount() int {
	return len(d.all)
}

// --- Row widget ---

const rowTextPadX = 4.0

type defaultRow struct {
	owner    *DefaultWidgets
	frame    Rect
	label    string
	enabled  bool
	selected bool
	active   bool
	onClick  func()
}

func (w *defaultRow) SetActive(active bool) { w.active = active }

func (w *defaultRow) SetFrame(frame Rect) { w.frame = frame }

func (w *defaultRow) SetSelected(sel bool) { w.selected = sel }

func (w *defaultRow) SetOnClick(fn func()) { w.onClick = fn }

func (w *defaultRow) SetLabel(label string, enabled bool) {
	w.label = label
	w.enabled = enabled
}

func (w *defaultRow) draw(dst *ebiten.Image) {
	if !w.active {
		return
	}
	theme := w.owner.theme
	if w.selected {
		fillRect(dst, w.frame, theme.Selection)
	}
	col := theme.RowText
	if !w.enabled {
		col = theme.RowTextDim
	}
	if w.owner.face != nil {
		m := w.owner.face.Metrics()
		lh := m.HAscent + m.HDescent
		op := &text.DrawOptions{}
		op.GeoM.Translate(w.frame.X+rowTextPadX, w.frame.Y+(w.frame.Height-lh)/2)
		op.ColorScale.Scale(
			float32(col.R*col.A),
			float32(col.G*col.A),
			float32(col.B*col.A),
			float32(col.A),
		)
		text.Draw(dst, w.label, w.owner.face, op)
	} else {
		// Debug bitmap font is a fixed 6x16; center that box instead.
		ebitenutil.DebugPrintAt(dst, w.label,
			int(w.frame.X+rowTextPadX), int(w.frame.Y+(w.frame.Height-16)/2))
	}
}

func (w *defaultRow) hit(x, y float64) bool {
	return w.active && w.frame.Contains(x, y)
}

func (w *defaultRow) click() {
	if w.onClick != nil {
		w.onClick()
	}
}

// --- Toggle widget ---

var toggleIndices = []uint16{0, 1, 2}

type defaultToggle struct {
	owner    *DefaultWidgets
	frame    Rect
	expanded bool
	active   bool
	onClick  func()
	verts    [3]ebiten.Vertex // reused across frames, zero alloc per draw
}

func (w *defaultToggle) SetActive(active bool) { w.active = active }

func (w *defaultToggle) SetFrame(frame Rect) { w.frame = frame }

func (w *defaultToggle) SetExpanded(exp bool) { w.expanded = exp }

func (w *defaultToggle) SetOnClick(fn func()) { w.onClick = fn }

func (w *defaultToggle) draw(dst *ebiten.Image) {
	if !w.active {
		return
	}
	cx := w.frame.X + w.frame.Width/2
	cy := w.frame.Y + w.frame.Height/2
	s := w.frame.Width
	if w.frame.Height < s {
		s = w.frame.Height
	}
	half := s * 0.3
	if w.expanded {
		// Arrow points down.
		w.setVert(0, cx-half, cy-half/2)
		w.setVert(1, cx+half, cy-half/2)
		w.setVert(2, cx, cy+half)
	} else {
		// Arrow points right.
		w.setVert(0, cx-half/2, cy-half)
		w.setVert(1, cx-half/2, cy+half)
		w.setVert(2, cx+half, cy)
	}
	dst.DrawTriangles(w.verts[:], toggleIndices, WhitePixel, nil)
}

func (w *defaultToggle) setVert(i int, x, y float64) {
	c := w.owner.theme.Toggle
	w.verts[i] = ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	}
}

func (w *defaultToggle) hit(x, y float64) bool {
	return w.active && w.frame.Contains(x, y)
}

func (w *defaultToggle) click() {
	if w.onClick != nil {
		w.onClick()
	}
}

// fillRect draws a solid rectangle by scaling WhitePixel.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Empty() || c.A <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Scale(
		float32(c.R*c.A),
		float32(c.G*c.A),
		float32(c.B*c.A),
		float32(c.A),
	)
	dst.DrawImage(WhitePixel, op)
}

var (
	_ WidgetFactory = (*DefaultWidgets)(nil)
	_ RowWidget     = (*defaultRow)(nil)
	_ ToggleWidget  = (*defaultToggle)(nil)
)
