package arbor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the panel X and Y offsets.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// scroller tracks a pixel scroll offset with optional tweened scroll-to.
// Offsets are content-space pixels; the panel clamps them and hands the
// engine the normalized form.
type scroller struct {
	x, y float64
	anim *scrollAnim
}

// scrollBy offsets the position immediately. Manual scrolling cancels an
// in-flight scroll-to, wheel input wins over animation.
func (s *scroller) scrollBy(dx, dy float64) {
	s.x += dx
	s.y += dy
	s.anim = nil
}

// scrollTo animates toward (x, y) over duration seconds. A zero duration
// jumps immediately. A nil easeFn falls back to linear.
func (s *scroller) scrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		s.x, s.y = x, y
		s.anim = nil
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	s.anim = &scrollAnim{
		tweenX: gween.New(float32(s.x), float32(x), duration, easeFn),
		tweenY: gween.New(float32(s.y), float32(y), duration, easeFn),
	}
}

// update advances an active scroll animation.
func (s *scroller) update(dt float32) {
	if s.anim == nil {
		return
	}
	if !s.anim.doneX {
		val, done := s.anim.tweenX.Update(dt)
		s.x = float64(val)
		s.anim.doneX = done
	}
	if !s.anim.doneY {
		val, done := s.anim.tweenY.Update(dt)
		s.y = float64(val)
		s.anim.doneY = done
	}
	if s.anim.doneX && s.anim.doneY {
		s.anim = nil
	}
}

// clamp restricts the offset to the scrollable range. Runs every tick, so
// both manual scrolling and in-flight animations stay in range even while
// the content reshapes under them.
func (s *scroller) clamp(contentW, contentH, viewW, viewH float64) {
	s.x = clampOffset(s.x, scrollRange(contentW, viewW))
	s.y = clampOffset(s.y, scrollRange(contentH, viewH))
}

// normalized returns the offset scaled to [0, 1] per axis, zero where there
// is no scrollable range.
func (s *scroller) normalized(contentW, contentH, viewW, viewH float64) (nx, ny float64) {
	if r := scrollRange(contentW, viewW); r > 0 {
		nx = s.x / r
	}
	if r := scrollRange(contentH, viewH); r > 0 {
		ny = s.y / r
	}
	return nx, ny
}

func clampOffset(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
