package render

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that world tile (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// ClampTo keeps the viewport inside a floor of mapW x mapH tiles so that
// centering near an edge does not scroll past it. A floor smaller than the
// view is pinned to the top-left corner.
func (c *Camera) ClampTo(mapW, mapH int) {
	tilesAcross := c.ViewWidth / 2
	if c.OffsetX > mapW-tilesAcross {
		c.OffsetX = mapW - tilesAcross
	}
	if c.OffsetX < 0 {
		c.OffsetX = 0
	}
	if c.OffsetY > mapH-c.ViewHeight {
		c.OffsetY = mapH - c.ViewHeight
	}
	if c.OffsetY < 0 {
		c.OffsetY = 0
	}
}

// WorldToScreen converts world tile (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
