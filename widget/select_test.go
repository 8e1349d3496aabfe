package widget_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/kardolus/conscience/widget"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

type node struct {
	role     string
	text     *string
	label    *string
	children []widget.Node
}

func (n *node) Children() []widget.Node { return n.children }

func (n *node) Role() string { return n.role }

func (n *node) Text() (string, bool) {
	if n.text == nil {
		return "", false
	}
	return *n.text, true
}

func (n *node) Label() (string, bool) {
	if n.label == nil {
		return "", false
	}
	return *n.label, true
}

func label(text string) *node {
	return &node{role: "Label", text: &text}
}

func frame(children ...widget.Node) *node {
	return &node{role: "Frame", children: children}
}

func menuEntry(text string) *node {
	return &node{role: "Menu", label: &text}
}

func TestUnitSelect(t *testing.T) {
	spec.Run(t, "Testing widget selection", testSelect, spec.Report(report.Terminal{}))
}

func testSelect(t *testing.T, when spec.G, it spec.S) {
	var (
		score, lives, empty, title *node
		inner, root                *node
	)

	it.Before(func() {
		RegisterTestingT(t)

		score = label("Score")
		lives = label("  LIVES: 3 ")
		empty = label("")
		title = label("Zombies")
		inner = frame(lives, empty)
		root = frame(score, inner, title)
	})

	when("Select()", func() {
		it("visits the root, then children depth first in declared order", func() {
			Expect(widget.Select(root, widget.Everything())).To(Equal([]widget.Node{
				root, score, inner, lives, empty, title,
			}))
		})

		it("finds exactly the node with matching text", func() {
			Expect(widget.Select(root, widget.ByText("Score"))).To(Equal([]widget.Node{score}))
		})

		it("returns nothing when no node matches", func() {
			Expect(widget.Select(root, widget.ByText("Health"))).To(BeEmpty())
		})

		it("is case sensitive for exact text", func() {
			Expect(widget.Select(root, widget.ByText("score"))).To(BeEmpty())
			Expect(widget.Select(root, widget.ByText("LIVES: 3"))).To(BeEmpty())
		})

		it("folds case and trims for rough text", func() {
			Expect(widget.Select(root, widget.ByRoughText("lives: 3"))).To(Equal([]widget.Node{lives}))
			Expect(widget.Select(root, widget.ByRoughText(" Lives: 3"))).To(Equal([]widget.Node{lives}))
			Expect(widget.Select(root, widget.ByRoughText("lives"))).To(BeEmpty())
		})

		it("matches the root itself", func() {
			Expect(widget.Select(score, widget.ByRole("Label"))).To(Equal([]widget.Node{score}))
		})

		it("selects by type", func() {
			Expect(widget.Select(root, widget.ByClass("Frame"))).To(Equal([]widget.Node{root, inner}))
		})

		it("treats an empty text as text, and no text option as none", func() {
			Expect(widget.Select(root, widget.HasText())).To(Equal([]widget.Node{score, lives, empty, title}))
		})

		it("selects leaves", func() {
			Expect(widget.Select(root, widget.IsLeaf())).To(Equal([]widget.Node{score, lives, empty, title}))
			Expect(widget.Select(frame(), widget.IsLeaf())).To(HaveLen(1))
		})

		it("combines selectors with All", func() {
			sel := widget.All(widget.IsLeaf(), widget.HasText(), widget.ByRoughText("zombies"))
			Expect(widget.Select(root, sel)).To(Equal([]widget.Node{title}))
			Expect(widget.Select(root, widget.All())).To(HaveLen(6))
		})

		it("matches labels by case-insensitive substring", func() {
			quit := menuEntry("Quit Game")
			menu := frame(menuEntry("New"), quit)
			Expect(widget.Select(menu, widget.ByLabel("quit"))).To(Equal([]widget.Node{quit}))
			Expect(widget.Select(root, widget.ByLabel("score"))).To(BeEmpty())
		})

		it("does not ask for text when only the type matters", func() {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := NewMockNode(ctrl)
			mock.EXPECT().Role().Return("Canvas").AnyTimes()
			mock.EXPECT().Children().Return(nil).AnyTimes()
			mock.EXPECT().Text().Times(0)

			Expect(widget.Select(mock, widget.ByRole("Canvas"))).To(Equal([]widget.Node{mock}))
		})
	})

	when("ExpectOne() and ExpectCount()", func() {
		it("returns the single match", func() {
			found, err := widget.ExpectOne(root, widget.ByText("Zombies"))
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeIdenticalTo(widget.Node(title)))
		})

		it("names the criterion and the full match set on failure", func() {
			_, err := widget.ExpectOne(root, widget.All(widget.ByRole("Label"), widget.HasText()))
			Expect(err).To(HaveOccurred())

			var typed widget.CountError
			Expect(err).To(BeAssignableToTypeOf(typed))
			Expect(err.Error()).To(Equal(
				`cannot find exactly 1 widget(s) matching type Label and any text, found ` +
					`[Label("Score"), Label("  LIVES: 3 "), Label(""), Label("Zombies")]`,
			))
		})

		it("reports an empty match set", func() {
			found, err := widget.ExpectCount(root, widget.ByRoughText("Game Over"), 1)
			Expect(found).To(BeEmpty())
			Expect(err).To(MatchError(`cannot find exactly 1 widget(s) matching text roughly "game over", found []`))
		})

		it("accepts other cardinalities", func() {
			found, err := widget.ExpectCount(root, widget.ByRole("Frame"), 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(2))
		})
	})

	when("String()", func() {
		it("describes every selector kind", func() {
			Expect(widget.Everything().String()).To(Equal("anything"))
			Expect(widget.ByText("a").String()).To(Equal(`text "a"`))
			Expect(widget.IsLeaf().String()).To(Equal("no children"))
			Expect(widget.ByLabel("Quit").String()).To(Equal(`label containing "quit"`))
			Expect(widget.ByRoughText(" Hi ").Kind()).To(Equal(widget.KindRoughText))
		})
	})
}

type canvas struct {
	texts  map[widget.ItemID]string
	images map[widget.ItemID]string
	order  []widget.ItemID
}

func (c *canvas) Items() []widget.ItemID { return c.order }

func (c *canvas) ItemText(id widget.ItemID) (string, bool) {
	text, ok := c.texts[id]
	return text, ok
}

func (c *canvas) ItemImage(id widget.ItemID) (string, bool) {
	image, ok := c.images[id]
	return image, ok
}

func TestUnitCanvas(t *testing.T) {
	spec.Run(t, "Testing canvas item selection", testCanvas, spec.Report(report.Terminal{}))
}

func testCanvas(t *testing.T, when spec.G, it spec.S) {
	var subject *canvas

	it.Before(func() {
		RegisterTestingT(t)

		subject = &canvas{
			texts:  map[widget.ItemID]string{1: "Z", 2: "P", 4: "Z"},
			images: map[widget.ItemID]string{3: "pyimage1", 5: "pyimage2", 6: "pyimage9"},
			order:  []widget.ItemID{1, 2, 3, 4, 5, 6},
		}
	})

	it("finds items by their text payload", func() {
		Expect(widget.CanvasText(subject, "Z")).To(Equal([]widget.ItemID{1, 4}))
		Expect(widget.CanvasText(subject, "z")).To(BeEmpty())
	})

	it("finds items by the registered identity of their image", func() {
		registry := widget.Images{"pyimage1": "zombie", "pyimage2": "player"}

		Expect(widget.CanvasImage(registry, subject, "zombie")).To(Equal([]widget.ItemID{3}))
		Expect(widget.CanvasImage(registry, subject, "player")).To(Equal([]widget.ItemID{5}))
		Expect(widget.CanvasImage(registry, subject, "chest")).To(BeEmpty())
	})
}
