// Package grid reads a canvas drawn as a board of equally sized cells.
package grid

import (
	"fmt"
	"strings"

	"github.com/kardolus/conscience/widget"
)

// Canvas is a drawing surface that can locate its items.
type Canvas interface {
	widget.Canvas
	Size() (width, height int)
	Coords(id widget.ItemID) ([]float64, bool)
	Enclosed(x1, y1, x2, y2 float64) []widget.ItemID
}

type Cell struct {
	Column int
	Row    int
}

type Point struct {
	X float64
	Y float64
}

type Grid struct {
	canvas     Canvas
	cellWidth  int
	cellHeight int
	spacing    float64
}

func New(c Canvas, cellWidth, cellHeight int) (*Grid, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size: %dx%d", cellWidth, cellHeight)
	}
	return &Grid{canvas: c, cellWidth: cellWidth, cellHeight: cellHeight}, nil
}

// WithSpacing widens every cell's search box by spacing on each side.
func (g *Grid) WithSpacing(spacing float64) *Grid {
	g.spacing = spacing
	return g
}

func (g *Grid) Dimensions() (columns, rows int) {
	width, height := g.canvas.Size()
	return width / g.cellWidth, height / g.cellHeight
}

// AllAt returns the items fully enclosed by the given cell.
func (g *Grid) AllAt(column, row int) []widget.ItemID {
	x := float64(column * g.cellWidth)
	y := float64(row * g.cellHeight)
	return g.canvas.Enclosed(
		x-g.spacing,
		y-g.spacing,
		x+float64(g.cellWidth)+g.spacing,
		y+float64(g.cellHeight)+g.spacing,
	)
}

// At returns the first non-empty text drawn in the given cell.
func (g *Grid) At(column, row int) (string, bool) {
	return g.firstText(g.AllAt(column, row))
}

func (g *Grid) Serialize() map[Cell][]widget.ItemID {
	columns, rows := g.Dimensions()

	result := make(map[Cell][]widget.ItemID, columns*rows)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			result[Cell{Column: column, Row: row}] = g.AllAt(column, row)
		}
	}
	return result
}

// Render draws the board as text, one "|a| |b|" line per row with a blank
// for cells without text.
func (g *Grid) Render() string {
	columns, rows := g.Dimensions()
	cells := g.Serialize()

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			text, ok := g.firstText(cells[Cell{Column: column, Row: row}])
			if !ok {
				text = " "
			}
			sb.WriteString("|" + text)
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// Positions maps the anchor point of every item to its text.
func (g *Grid) Positions() map[Point]string {
	result := make(map[Point]string)
	for _, id := range g.canvas.Items() {
		coords, ok := g.canvas.Coords(id)
		if !ok || len(coords) < 2 {
			continue
		}
		text, _ := g.canvas.ItemText(id)
		result[Point{X: coords[0], Y: coords[1]}] = text
	}
	return result
}

func (g *Grid) firstText(ids []widget.ItemID) (string, bool) {
	for _, id := range ids {
		if text, ok := g.canvas.ItemText(id); ok && text != "" {
			return text, true
		}
	}
	return "", false
}
