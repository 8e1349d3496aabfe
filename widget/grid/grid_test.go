package grid_test

import (
	"testing"

	"github.com/kardolus/conscience/toolkit"
	"github.com/kardolus/conscience/widget"
	"github.com/kardolus/conscience/widget/grid"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

var _ grid.Canvas = &toolkit.Canvas{}

func TestUnitGrid(t *testing.T) {
	spec.Run(t, "Testing the board grid", testGrid, spec.Report(report.Terminal{}))
}

func testGrid(t *testing.T, when spec.G, it spec.S) {
	var (
		canvas  *toolkit.Canvas
		subject *grid.Grid
	)

	text := func(column, row int, value string) widget.ItemID {
		id, err := canvas.CreateText(float64(column*20+10), float64(row*20+10), toolkit.Options{"text": value})
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	it.Before(func() {
		RegisterTestingT(t)

		root := toolkit.NewTk(toolkit.WithMethods(toolkit.NewMethods()))
		var err error
		canvas, err = toolkit.NewCanvas(root, toolkit.Options{"width": 60, "height": 40})
		Expect(err).NotTo(HaveOccurred())

		subject, err = grid.New(canvas, 20, 20)
		Expect(err).NotTo(HaveOccurred())
	})

	it("rejects empty cells", func() {
		_, err := grid.New(canvas, 0, 20)
		Expect(err).To(MatchError("invalid cell size: 0x20"))
	})

	it("derives its dimensions from the canvas size", func() {
		columns, rows := subject.Dimensions()
		Expect(columns).To(Equal(3))
		Expect(rows).To(Equal(2))
	})

	it("finds the items drawn in a cell", func() {
		a := text(0, 0, "a")
		background, _ := canvas.CreateRectangle(20, 0, 40, 20, nil)
		b := text(1, 0, "b")
		text(2, 1, "c")

		Expect(subject.AllAt(0, 0)).To(Equal([]widget.ItemID{a}))
		Expect(subject.AllAt(1, 0)).To(Equal([]widget.ItemID{background, b}))

		got, ok := subject.At(1, 0)
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal("b"))

		_, ok = subject.At(0, 1)
		Expect(ok).To(BeFalse())
	})

	it("widens the search box by the spacing", func() {
		id, _ := canvas.CreateRectangle(18, 0, 40, 20, nil)

		Expect(subject.AllAt(1, 0)).To(BeEmpty())
		Expect(subject.WithSpacing(2).AllAt(1, 0)).To(Equal([]widget.ItemID{id}))
	})

	it("renders the board row by row", func() {
		text(0, 0, "a")
		text(2, 0, "b")
		text(1, 1, "c")

		Expect(subject.Render()).To(Equal("|a| |b|\n| |c| |\n"))
		Expect(subject.Serialize()).To(HaveLen(6))
	})

	it("maps item positions to their text", func() {
		text(0, 0, "a")
		text(1, 1, "b")

		Expect(subject.Positions()).To(Equal(map[grid.Point]string{
			{X: 10, Y: 10}: "a",
			{X: 30, Y: 30}: "b",
		}))
	})
}
