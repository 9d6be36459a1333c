package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
)

// DrawHUD renders the status bar at the bottom of the screen and flushes
// the frame.
func (r *Renderer) DrawHUD(w *ecs.World, playerID ecs.EntityID, floorIndex int) {
	_, screenH := r.screen.Size()
	hudY := screenH - 3

	r.drawHLine(hudY, tcell.ColorGray)

	hpText := "HP: ?"
	if c := w.Get(playerID, component.CHealth); c != nil {
		hp := c.(component.Health)
		hpText = fmt.Sprintf("HP: %.0f/%.0f", hp.Current, hp.Max)
	}
	enemies := w.Count(component.CBrain)
	status := fmt.Sprintf("%s  Floor: %d  Enemies: %d", hpText, floorIndex, enemies)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawText(0, hudY+2, "wasd move · space attack · > descend · q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
