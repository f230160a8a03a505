package arbor

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

const (
	defaultWheelSpeed     = 40.0
	defaultScrollbarWidth = 8.0
)

// PanelConfig configures NewPanel. Zero values select the default noted on
// each field.
type PanelConfig struct {
	// Viewport is the screen rectangle the panel occupies.
	Viewport Rect
	// Face renders row labels. Nil falls back to the debug bitmap font.
	Face text.Face
	// Theme colors the widgets and chrome. Nil selects DefaultTheme.
	Theme *Theme
	// IndentWidth is the pixel width of one indent level. Default 16.
	IndentWidth float64
	// CullMargin is the widget slack around the viewport. Default 24.
	CullMargin float64
	// WheelSpeed is pixels scrolled per wheel notch. Default 40.
	WheelSpeed float64
	// ScrollbarWidth is the width of the vertical scrollbar. Default 8.
	ScrollbarWidth float64
	// ExpandByDefault makes newly discovered nodes start expanded.
	ExpandByDefault bool
}

// Panel glues an Outliner to Ebitengine: default widgets, wheel scrolling,
// click routing, a vertical scrollbar, and injected input for scripts and
// tests. Call Update from the game's Update and Draw from its Draw, both
// from the same goroutine.
type Panel struct {
	out     *Outliner
	widgets *DefaultWidgets
	theme   Theme

	scroll     scroller
	wheelSpeed float64
	barWidth   float64

	pointerDown bool
	pressTarget panelWidget

	injectQueue []syntheticEvent
	script      *Script
}

// NewPanel creates a panel over the given source with the default widgets
// installed.
func NewPanel(src TreeSource, cfg PanelConfig) *Panel {
	theme := DefaultTheme()
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	out := NewOutliner(src)
	out.SetViewport(cfg.Viewport)
	if cfg.IndentWidth > 0 {
		out.SetIndentWidth(cfg.IndentWidth)
	}
	if cfg.CullMargin > 0 {
		out.SetCullMargin(cfg.CullMargin)
	}
	out.SetExpandByDefault(cfg.ExpandByDefault)

	widgets := NewDefaultWidgets(theme, cfg.Face)
	out.SetWidgets(widgets)

	p := &Panel{
		out:        out,
		widgets:    widgets,
		theme:      theme,
		wheelSpeed: cfg.WheelSpeed,
		barWidth:   cfg.ScrollbarWidth,
	}
	if p.wheelSpeed <= 0 {
		p.wheelSpeed = defaultWheelSpeed
	}
	if p.barWidth <= 0 {
		p.barWidth = defaultScrollbarWidth
	}
	return p
}

// Update runs one tick: advance the input script, consume one injected
// event or read the real mouse, advance scrolling, then tick the engine.
func (p *Panel) Update() {
	if p.script != nil {
		p.script.step(p)
	}
	if !p.consumeInjected() {
		p.readMouse()
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	p.scroll.update(dt)
	p.syncScroll()
	p.out.Update()
}

// Draw renders the panel onto screen: background, widgets clipped to the
// viewport, then the scrollbar.
func (p *Panel) Draw(screen *ebiten.Image) {
	vp := p.out.Viewport()
	if vp.Empty() {
		return
	}
	clip := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
	target := screen.SubImage(clip).(*ebiten.Image)
	fillRect(target, vp, p.theme.Background)
	p.widgets.Draw(target)
	p.drawScrollbar(target, vp)
}

// syncScroll clamps the pixel offset against the current extents and pushes
// the normalized form into the engine.
func (p *Panel) syncScroll() {
	cw, ch := p.out.ContentSize()
	vp := p.out.Viewport()
	p.scroll.clamp(cw, ch, vp.Width, vp.Height)
	p.out.SetScroll(p.scroll.normalized(cw, ch, vp.Width, vp.Height))
}

// readMouse applies real wheel and pointer input. Wheel input only counts
// while the cursor is inside the viewport, so the panel coexists with other
// scrollable surfaces in the same window.
func (p *Panel) readMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if dx, dy := ebiten.Wheel(); (dx != 0 || dy != 0) && p.out.Viewport().Contains(x, y) {
		p.scroll.scrollBy(-dx*p.wheelSpeed, -dy*p.wheelSpeed)
	}
	p.pointerTick(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// pointerTick advances the press/release state machine. A click lands only
// when press and release both hit the same widget, the usual button rule.
func (p *Panel) pointerTick(x, y float64, pressed bool) {
	switch {
	case pressed && !p.pointerDown:
		p.pointerDown = true
		p.pressTarget = p.widgetAt(x, y)
	case !pressed && p.pointerDown:
		p.pointerDown = false
		if p.pressTarget != nil && p.pressTarget == p.widgetAt(x, y) {
			p.pressTarget.click()
		}
		p.pressTarget = nil
	}
}

// widgetAt hit-tests within the viewport only, so rows peeking into the
// cull margin outside it cannot be clicked.
func (p *Panel) widgetAt(x, y float64) panelWidget {
	if !p.out.Viewport().Contains(x, y) {
		return nil
	}
	return p.widgets.widgetAt(x, y)
}

// drawScrollbar draws the vertical track and thumb along the right edge.
// Hidden while the content fits the viewport.
func (p *Panel) drawScrollbar(dst *ebiten.Image, vp Rect) {
	_, ch := p.out.ContentSize()
	if ch <= vp.Height {
		return
	}
	track := Rect{X: vp.X + vp.Width - p.barWidth, Y: vp.Y, Width: p.barWidth, Height: vp.Height}
	fillRect(dst, track, p.theme.ScrollTrack)

	thumbH := vp.Height * vp.Height / ch
	if thumbH < p.barWidth {
		thumbH = p.barWidth
	}
	_, ny := p.out.Scroll()
	thumb := Rect{X: track.X, Y: vp.Y + ny*(vp.Height-thumbH), Width: p.barWidth, Height: thumbH}
	fillRect(dst, thumb, p.theme.ScrollThumb)
}

// --- Scrolling ---

// ScrollTo animates the pixel scroll offset to (x, y) over duration
// seconds. A zero duration jumps immediately; a nil easeFn is linear.
func (p *Panel) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	p.scroll.scrollTo(x, y, duration, easeFn)
}

// ScrollToItem scrolls so the item's row is vertically centered in the
// viewport, clamped to the content. Reports false when the item has no
// visible row because it is unknown or folded inside a collapsed ancestor.
func (p *Panel) ScrollToItem(item Item, duration float32, easeFn ease.TweenFunc) bool {
	r, ok := p.out.ItemRect(item)
	if !ok {
		return false
	}
	vp := p.out.Viewport()
	_, ch := p.out.ContentSize()
	targetY := clampOffset(r.Y-(vp.Height-r.Height)/2, scrollRange(ch, vp.Height))
	p.scroll.scrollTo(p.scroll.x, targetY, duration, easeFn)
	return true
}

// --- Injected input ---

// syntheticEvent is one injected input event: a pointer state or a wheel
// step. Consumed one per Update, replacing real input for that tick.
type syntheticEvent struct {
	kind    eventKind
	x, y    float64
	pressed bool
	dx, dy  float64
}

type eventKind uint8

const (
	eventPointer eventKind = iota
	eventWheel
)

// InjectPress queues a synthetic pointer press at screen coordinates. The
// event is consumed on the next Update.
func (p *Panel) InjectPress(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: eventPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a synthetic pointer release at screen coordinates.
func (p *Panel) InjectRelease(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: eventPointer, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two Updates.
func (p *Panel) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectWheel queues one synthetic wheel step, in notches.
func (p *Panel) InjectWheel(dx, dy float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: eventWheel, dx: dx, dy: dy})
}

// consumeInjected pops one synthetic event and applies it exactly as real
// input would be, reporting whether one was consumed.
func (p *Panel) consumeInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case eventPointer:
		p.pointerTick(evt.x, evt.y, evt.pressed)
	case eventWheel:
		p.scroll.scrollBy(-evt.dx*p.wheelSpeed, -evt.dy*p.wheelSpeed)
	}
	return true
}

// --- Accessors ---

// Outliner returns the underlying engine, for configuration beyond what
// PanelConfig covers.
func (p *Panel) Outliner() *Outliner {
	return p.out
}

// Widgets returns the default widget factory driving this panel.
func (p *Panel) Widgets() *DefaultWidgets {
	return p.widgets
}

// OnSelect installs a selection callback on the underlying engine.
func (p *Panel) OnSelect(fn func(SelectionEvent)) {
	p.out.OnSelect(fn)
}

// SetViewport moves the panel's screen rectangle.
func (p *Panel) SetViewport(viewport Rect) {
	p.out.SetViewport(viewport)
}

// SetScript installs a scripted input sequence, replacing any active one.
// A nil script stops scripted input.
func (p *Panel) SetScript(s *Script) {
	p.script = s
}
