// Package ecs adapts a [Donburi] world to arbor, in both directions.
//
// [NewWorldSource] exposes the world as an arbor.TreeSource: entities with a
// [Name] component become rows, [ChildOf] builds the hierarchy, and the
// [Hidden] and [Disabled] tags map to the outliner's ignored and dimmed
// states.
//
// [NewDonburiSink] bridges the other way, publishing outliner selections
// into the world as typed events. Subscribe to [SelectionEventType] in ECS
// systems and drain it with ProcessEvents each tick.
//
// Usage:
//
//	world := donburi.NewWorld()
//	src := ecs.NewWorldSource(world, "World", 160, 20)
//	panel := arbor.NewPanel(src, arbor.PanelConfig{Viewport: viewport})
//	panel.Outliner().SetEventSink(ecs.NewDonburiSink(world))
//
//	ecs.SelectionEventType.Subscribe(world, onSelect)
//	// per tick, after panel.Update():
//	ecs.SelectionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
