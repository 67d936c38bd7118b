package gui

import "github.com/oliverbestmann/shaderplay/glm"

type gridState struct {
	colWidths  []float32
	rowHeights []float32
}

// Grid lays out widgets in columns. Column widths and row heights
// are remembered from the previous frame so cells line up.
type Grid struct {
	idSource   string
	numColumns int
	spacing    glm.Vec2f
	striped    bool
}

func NewGrid(idSource string) *Grid {
	return &Grid{
		idSource:   idSource,
		numColumns: 2,
		spacing:    glm.Vec2f{8, 4},
	}
}

func (g *Grid) NumColumns(n int) *Grid {
	g.numColumns = max(1, n)
	return g
}

func (g *Grid) Spacing(x, y float32) *Grid {
	g.spacing = glm.Vec2f{x, y}
	return g
}

// Striped paints a subtle background behind every other row.
func (g *Grid) Striped(striped bool) *Grid {
	g.striped = striped
	return g
}

func (g *Grid) Show(ui *Ui, add func(ui *Ui)) Response {
	id := ui.id.With(g.idSource)

	prev := ui.ctx.memory.grid(id)

	layout := &gridLayout{
		grid:   g,
		prev:   *prev,
		origin: ui.cursor,
		rowY:   ui.cursor[1],
	}

	parent := ui.grid
	ui.grid = layout

	add(ui)

	if layout.rowStarted {
		layout.endRow(ui)
	}

	ui.grid = parent

	*prev = layout.curr

	rect := glm.RectangleFromPoints(layout.origin, glm.Vec2f{layout.origin[0] + layout.totalWidth(), layout.rowY})

	ui.cursor[1] = layout.rowY
	if layout.row > 0 {
		// rowY already includes spacing after the last row
		ui.cursor[1] += ui.ctx.style.ItemSpacing[1] - g.spacing[1]
	}

	return Response{ID: id, Rect: rect}
}

type gridLayout struct {
	grid *Grid

	prev gridState
	curr gridState

	origin glm.Vec2f
	rowY   float32

	row, col   int
	rowStarted bool
	stripe     ShapeIdx
}

func (l *gridLayout) colWidth(col int) float32 {
	return max(at(l.prev.colWidths, col), at(l.curr.colWidths, col))
}

func (l *gridLayout) totalWidth() float32 {
	var width float32

	count := max(len(l.prev.colWidths), len(l.curr.colWidths))
	for col := range count {
		if col > 0 {
			width += l.grid.spacing[0]
		}

		width += l.colWidth(col)
	}

	return width
}

func (l *gridLayout) allocate(ui *Ui, size glm.Vec2f) glm.Rectf {
	if !l.rowStarted {
		l.rowStarted = true

		if l.grid.striped {
			l.stripe = ui.painter.Add(NoopShape{})
		}
	}

	x := l.origin[0]
	for col := range l.col {
		x += l.colWidth(col) + l.grid.spacing[0]
	}

	// center vertically within the row height of the previous frame
	y := l.rowY + max(0, at(l.prev.rowHeights, l.row)-size[1])/2

	rect := glm.RectangleFromSize(glm.Vec2f{x, y}, size)

	set(&l.curr.colWidths, l.col, max(at(l.curr.colWidths, l.col), size[0]))
	set(&l.curr.rowHeights, l.row, max(at(l.curr.rowHeights, l.row), rect.Max[1]-l.rowY))

	if l.col+1 < l.grid.numColumns {
		l.col++
	}

	return rect
}

func (l *gridLayout) endRow(ui *Ui) {
	height := at(l.curr.rowHeights, l.row)

	if l.rowStarted && l.grid.striped && l.row%2 == 1 {
		half := l.grid.spacing.MulScalar(0.5)

		rect := glm.RectangleFromPoints(
			glm.Vec2f{l.origin[0], l.rowY}.Sub(half),
			glm.Vec2f{l.origin[0] + l.totalWidth(), l.rowY + height}.Add(half),
		)

		ui.painter.Set(l.stripe, RectShape{Rect: rect, Fill: ui.ctx.style.StripeFill})
	}

	l.rowY += height + l.grid.spacing[1]
	l.row++
	l.col = 0
	l.rowStarted = false
}

func at(values []float32, idx int) float32 {
	if idx < len(values) {
		return values[idx]
	}

	return 0
}

func set(values *[]float32, idx int, value float32) {
	for len(*values) <= idx {
		*values = append(*values, 0)
	}

	(*values)[idx] = value
}
