// Package arbor is an incremental tree-layout engine for scene-hierarchy
// outliners, built for [Ebitengine].
//
// Arbor renders a large, changing external tree (a scene graph, an entity
// hierarchy, a document) as a scrollable list of indented rows. It keeps a
// shadow layout tree in sync with the external one, recomputes only the
// geometry a change actually dirtied, recycles a small pool of row widgets
// across the visible window, and culls everything outside the viewport. Ten
// thousand nodes cost roughly the widgets for the thirty rows on screen.
//
// # Quick start
//
// Implement [TreeSource] over your data, wrap it in a [Panel], and call its
// Update and Draw from your [ebiten.Game]:
//
//	panel := arbor.NewPanel(source, arbor.PanelConfig{
//		Viewport: arbor.Rect{X: 0, Y: 0, Width: 320, Height: 480},
//	})
//	panel.OnSelect(func(ev arbor.SelectionEvent) {
//		log.Println("selected:", ev.Name)
//	})
//
//	type Game struct{ panel *arbor.Panel }
//
//	func (g *Game) Update() error { g.panel.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.panel.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// The panel ships default widgets (flat rows, arrow toggles, a scrollbar)
// themed via [Theme], wheel scrolling, and animated [Panel.ScrollTo] /
// [Panel.ScrollToItem] (via [gween]).
//
// # Sources
//
// A [TreeSource] exposes the external tree: top-level [Group]s, children,
// display names, sizes, and liveness per item. The engine polls it once per
// tick with a cheap count-based change detector and rebuilds only when the
// structure drifted; renames and other silent changes can be forced through
// with [Outliner.Rebuild]. Items are compared by identity and must be
// comparable (pointers or integer ids).
//
// The arbor/ecs subpackage adapts a [Donburi] world as a source and bridges
// selection events back into it.
//
// # Custom hosts
//
// [Outliner] is the engine core and has no opinion about drawing: it
// positions abstract [RowWidget] and [ToggleWidget] handles built by a
// [WidgetFactory]. Hosts with their own UI toolkit implement those three
// interfaces and drive [Outliner.Update] directly; [Panel] and
// [DefaultWidgets] show the intended wiring.
//
// All of arbor is single-threaded: one Update is one cooperative tick, and
// every method on an engine must be called from the same goroutine.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
