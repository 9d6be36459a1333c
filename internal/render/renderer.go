package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/tilemap"
)

// Renderer draws a floor and its entities onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen and floor index.
func NewRenderer(screen tcell.Screen, floorIndex int) *Renderer {
	w, h := screen.Size()
	// Reserve the bottom 3 rows for the HUD.
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, h-3),
		theme:  ThemeFor(floorIndex),
	}
}

// SetFloor switches the tile theme for a new floor.
func (r *Renderer) SetFloor(floorIndex int) { r.theme = ThemeFor(floorIndex) }

// CenterOn recenters the camera on world tile (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// DrawFrame renders the map and every positioned entity.
func (r *Renderer) DrawFrame(w *ecs.World, m *tilemap.TileMap) {
	r.camera.ClampTo(m.Width, m.Height)
	r.screen.Clear()
	r.drawMap(m)
	r.drawEntities(w)
}

func (r *Renderer) drawMap(m *tilemap.TileMap) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			var glyph string
			switch m.At(x, y).Kind {
			case tilemap.TileFloor:
				glyph = r.theme.Floor
			case tilemap.TileDoor:
				glyph = r.theme.Door
			default:
				glyph = r.theme.Wall
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order int
	x, y  int
	rend  component.Renderable
}

func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		entities = append(entities, renderableEntity{
			order: rend.RenderOrder,
			x:     int(pos.Pos.X),
			y:     int(pos.Pos.Y),
			rend:  rend,
		})
	}

	// Lower render order draws first, underneath.
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.x, e.y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
