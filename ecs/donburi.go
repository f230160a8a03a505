package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// NameData names an entity in the outliner.
type NameData struct {
	Value string
}

// ChildOfData parents an entity under another in the outliner.
type ChildOfData struct {
	Parent donburi.Entity
}

// Components and tags the WorldSource reads. Attach Name to every entity
// that should appear in the outliner; entities without ChildOf are roots.
var (
	Name    = donburi.NewComponentType[NameData]()
	ChildOf = donburi.NewComponentType[ChildOfData]()
	// Hidden excludes an entity and its whole subtree from the outliner.
	Hidden = donburi.NewTag()
	// Disabled keeps the entity listed but drawn dimmed.
	Disabled = donburi.NewTag()
)

// WorldSource adapts a Donburi world as an arbor.TreeSource: every entity
// with a Name component becomes a row under a single group. Roots walks the
// world and rebuilds a parent-to-children index; the other methods answer
// from that index until the next Roots call, which matches how the engine
// polls (Roots first, then counts). Sibling order follows Donburi's query
// iteration order: entities in one archetype keep creation order, entities
// split across archetypes group by archetype.
type WorldSource struct {
	world donburi.World
	label string
	rowW  float64
	rowH  float64

	query    *donburi.Query
	roots    []donburi.Entity
	children map[donburi.Entity][]donburi.Entity
}

// NewWorldSource adapts world as a single-group tree source. label titles
// the group header row; rowW and rowH size every row.
func NewWorldSource(world donburi.World, label string, rowW, rowH float64) *WorldSource {
	return &WorldSource{
		world:    world,
		label:    label,
		rowW:     rowW,
		rowH:     rowH,
		query:    donburi.NewQuery(filter.Contains(Name)),
		children: map[donburi.Entity][]donburi.Entity{},
	}
}

// Roots reindexes the world and returns the single group of root entities.
func (s *WorldSource) Roots() []arbor.Group {
	s.reindex()
	items := make([]arbor.Item, len(s.roots))
	for i, e := range s.roots {
		items[i] = e
	}
	return []arbor.Group{{Label: s.label, Items: items}}
}

// reindex rebuilds the root list and parent-to-children index from a single
// query pass over all named entities.
func (s *WorldSource) reindex() {
	s.roots = s.roots[:0]
	clear(s.children)
	s.query.Each(s.world, func(entry *donburi.Entry) {
		e := entry.Entity()
		if entry.HasComponent(ChildOf) {
			parent := ChildOf.Get(entry).Parent
			s.children[parent] = append(s.children[parent], e)
		} else {
			s.roots = append(s.roots, e)
		}
	})
}

// Children returns the entities parented under item.
func (s *WorldSource) Children(item arbor.Item) []arbor.Item {
	e, ok := item.(donburi.Entity)
	if !ok {
		return nil
	}
	ents := s.children[e]
	if len(ents) == 0 {
		return nil
	}
	out := make([]arbor.Item, len(ents))
	for i, c := range ents {
		out[i] = c
	}
	return out
}

// DisplayName returns the entity's Name component value.
func (s *WorldSource) DisplayName(item arbor.Item) string {
	entry := s.entry(item)
	if entry == nil || !entry.HasComponent(Name) {
		return ""
	}
	return Name.Get(entry).Value
}

// Active reports whether the entity lacks the Disabled tag.
func (s *WorldSource) Active(item arbor.Item) bool {
	entry := s.entry(item)
	return entry != nil && !entry.HasComponent(Disabled)
}

// ChildCount returns the number of entities parented under item.
func (s *WorldSource) ChildCount(item arbor.Item) int {
	e, ok := item.(donburi.Entity)
	if !ok {
		return 0
	}
	return len(s.children[e])
}

// ItemSize returns the uniform row size, for entities and the group header
// alike.
func (s *WorldSource) ItemSize(item arbor.Item) (w, h float64) {
	return s.rowW, s.rowH
}

// Valid reports whether the entity still exists in the world.
func (s *WorldSource) Valid(item arbor.Item) bool {
	e, ok := item.(donburi.Entity)
	return ok && s.world.Valid(e)
}

// Ignored reports whether the entity carries the Hidden tag.
func (s *WorldSource) Ignored(item arbor.Item) bool {
	entry := s.entry(item)
	return entry != nil && entry.HasComponent(Hidden)
}

// entry resolves an item to a live entry, nil when the entity is gone.
func (s *WorldSource) entry(item arbor.Item) *donburi.Entry {
	e, ok := item.(donburi.Entity)
	if !ok || !s.world.Valid(e) {
		return nil
	}
	return s.world.Entry(e)
}

// NewItem creates a named root entity.
func NewItem(world donburi.World, name string) donburi.Entity {
	e := world.Create(Name)
	Name.SetValue(world.Entry(e), NameData{Value: name})
	return e
}

// NewChildItem creates a named entity parented under parent.
func NewChildItem(world donburi.World, parent donburi.Entity, name string) donburi.Entity {
	e := world.Create(Name, ChildOf)
	entry := world.Entry(e)
	Name.SetValue(entry, NameData{Value: name})
	ChildOf.SetValue(entry, ChildOfData{Parent: parent})
	return e
}

// SelectionEventType is the Donburi event type for outliner selections.
// Subscribe to it in ECS systems and drain it with ProcessEvents each tick.
var SelectionEventType = events.NewEventType[arbor.SelectionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an arbor.EventSink that publishes selection events
// into a Donburi world via SelectionEventType.
func NewDonburiSink(world donburi.World) arbor.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSelection(ev arbor.SelectionEvent) {
	SelectionEventType.Publish(s.world, ev)
}

var _ arbor.TreeSource = (*WorldSource)(nil)
