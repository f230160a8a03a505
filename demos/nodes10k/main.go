// nodes10k drives an arbor panel with a tree of just over ten thousand
// nodes while the source keeps mutating and the view autoscrolls. A stress
// test for the resync, layout, and culling path.
package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/arbor"
)

const (
	screenW = 1280
	screenH = 720

	zoneCount     = 8
	squadsPerZone = 25
	unitsPerSquad = 50

	scrollSpeed = 40.0
)

type node struct {
	name     string
	children []*node
}

// armySource serves a zones > squads > units tree, identified by pointer.
type armySource struct {
	zones []*node
}

func (s *armySource) Roots() []arbor.Group {
	items := make([]arbor.Item, len(s.zones))
	for i, z := range s.zones {
		items[i] = z
	}
	return []arbor.Group{{Label: "Army", Items: items}}
}

func (s *armySource) Children(item arbor.Item) []arbor.Item {
	n := item.(*node)
	out := make([]arbor.Item, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (s *armySource) DisplayName(item arbor.Item) string { return item.(*node).name }

func (s *armySource) Active(item arbor.Item) bool { return true }

func (s *armySource) ChildCount(item arbor.Item) int { return len(item.(*node).children) }

func (s *armySource) ItemSize(item arbor.Item) (w, h float64) { return 260, 18 }

func (s *armySource) Valid(item arbor.Item) bool { return item != nil }

func (s *armySource) Ignored(item arbor.Item) bool { return false }

type game struct {
	panel  *arbor.Panel
	src    *armySource
	squads []*node
	total  int

	tick    int
	serial  int
	scrollY float64
	dir     float64
}

func buildGame() *game {
	g := &game{src: &armySource{}, dir: 1}
	for z := 0; z < zoneCount; z++ {
		zone := &node{name: fmt.Sprintf("Zone %02d", z)}
		g.src.zones = append(g.src.zones, zone)
		g.total++
		for s := 0; s < squadsPerZone; s++ {
			squad := &node{name: fmt.Sprintf("Squad %02d-%02d", z, s)}
			zone.children = append(zone.children, squad)
			g.squads = append(g.squads, squad)
			g.total++
			for u := 0; u < unitsPerSquad; u++ {
				g.serial++
				squad.children = append(squad.children, &node{name: fmt.Sprintf("Unit %05d", g.serial)})
				g.total++
			}
		}
	}
	return g
}

// mutate adds or removes one unit in a random squad, forcing a full resync
// of the whole tree on the next Update.
func (g *game) mutate() {
	squad := g.squads[rand.IntN(len(g.squads))]
	if len(squad.children) > unitsPerSquad/2 && rand.IntN(2) == 0 {
		squad.children = squad.children[:len(squad.children)-1]
		g.total--
		return
	}
	g.serial++
	squad.children = append(squad.children, &node{name: fmt.Sprintf("Unit %05d", g.serial)})
	g.total++
}

func (g *game) Update() error {
	g.tick++
	if g.tick%30 == 0 {
		g.mutate()
	}

	vp := g.panel.Outliner().Viewport()
	_, ch := g.panel.Outliner().ContentSize()
	maxY := max(ch-vp.Height, 0)
	g.scrollY += scrollSpeed * g.dir
	if g.scrollY >= maxY {
		g.scrollY = maxY
		g.dir = -1
	} else if g.scrollY <= 0 {
		g.scrollY = 0
		g.dir = 1
	}
	g.panel.ScrollTo(0, g.scrollY, 0, nil)

	g.panel.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 22, 255})
	g.panel.Draw(screen)

	cw, ch := g.panel.Outliner().ContentSize()
	msg := fmt.Sprintf("FPS: %.0f  TPS: %.0f\nnodes: %d  widgets pooled: %d\ncontent: %.0f x %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.total, g.panel.Widgets().WidgetCount(), cw, ch)
	ebitenutil.DebugPrintAt(screen, msg, 400, 16)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	g := buildGame()
	g.panel = arbor.NewPanel(g.src, arbor.PanelConfig{
		Viewport:        arbor.Rect{X: 16, Y: 16, Width: 360, Height: screenH - 32},
		ExpandByDefault: true,
	})

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Arbor \u2014 10k Nodes")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
