package bdd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/kardolus/conscience/suite"
	"github.com/kardolus/conscience/toolkit"
	"github.com/kardolus/conscience/widget"
	"github.com/kardolus/conscience/widget/grid"
)

var errNoScenario = errors.New("no scenario is running")

// RegisterSteps adds the reusable steps to ctx.
func RegisterSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I press "([^"]*)"$`, press)
	ctx.Step(`^I wait (\d+) ?ms$`, wait)
	ctx.Step(`^I click "([^"]*)"$`, click)
	ctx.Step(`^I see "([^"]*)"$`, see)
	ctx.Step(`^I see exactly "([^"]*)"$`, seeExactly)
	ctx.Step(`^I do not see "([^"]*)"$`, doNotSee)
	ctx.Step(`^the window title is "([^"]*)"$`, windowTitle)
	ctx.Step(`^the file menu is displayed$`, fileMenuDisplayed)
	ctx.Step(`^I can see an? "([^"]*)" menu option$`, seeMenuOption)
	ctx.Step(`^I select the "([^"]*)" menu option$`, selectMenuOption)
	ctx.Step(`^the canvas shows the text "([^"]*)"$`, canvasShowsText)
	ctx.Step(`^the canvas shows (\d+) "([^"]*)" images?$`, canvasShowsImages)
	ctx.Step(`^the board cell (\d+),(\d+) shows "([^"]*)"$`, boardCellShows)
	ctx.Step(`^the board cell (\d+),(\d+) is empty$`, boardCellEmpty)
	ctx.Step(`^the board looks like:$`, boardLooksLike)
}

func scenario(ctx context.Context) (*suite.Scenario, error) {
	sc, ok := FromContext(ctx)
	if !ok {
		return nil, errNoScenario
	}
	return sc, nil
}

func press(ctx context.Context, key string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return sc.Press(key)
}

func wait(ctx context.Context, ms int) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return sc.Advance(ms)
}

func click(ctx context.Context, text string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	node, err := widget.ExpectOne(sc.Window, widget.All(widget.ByRole("Button"), widget.ByRoughText(text)))
	if err != nil {
		return err
	}
	button, ok := node.(*toolkit.Widget)
	if !ok {
		return fmt.Errorf("%s cannot be clicked", widget.Describe(node))
	}
	return button.Invoke()
}

// see expects exactly one widget showing text, ignoring case and
// surrounding spaces.
func see(ctx context.Context, text string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	found := widget.Select(sc.Window, widget.ByRoughText(text))
	switch len(found) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("nothing shows %q; text widgets: %s",
			text, widget.DescribeAll(widget.Select(sc.Window, widget.HasText())))
	default:
		return fmt.Errorf("%d widgets show %q, expected one: %s", len(found), text, widget.DescribeAll(found))
	}
}

func seeExactly(ctx context.Context, text string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	if _, err := widget.ExpectOne(sc.Window, widget.ByText(text)); err != nil {
		return fmt.Errorf("%w; text widgets: %s", err, widget.DescribeAll(widget.Select(sc.Window, widget.HasText())))
	}
	return nil
}

func doNotSee(ctx context.Context, text string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	if found := widget.Select(sc.Window, widget.ByRoughText(text)); len(found) > 0 {
		return fmt.Errorf("%q is shown by %s", text, widget.DescribeAll(found))
	}
	return nil
}

func windowTitle(ctx context.Context, title string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	if got := sc.Window.Title(); got != title {
		return fmt.Errorf("expected window title to be %q, but it was %q", title, got)
	}
	return nil
}

func fileMenuDisplayed(ctx context.Context) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}
	_, err = fileMenu(sc)
	return err
}

func seeMenuOption(ctx context.Context, label string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}
	_, err = menuOption(sc, label)
	return err
}

func selectMenuOption(ctx context.Context, label string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	entry, err := menuOption(sc, label)
	if err != nil {
		return err
	}
	return entry.Invoke()
}

// fileMenu returns the outermost menu holding an entry labeled "file" at
// any depth.
func fileMenu(sc *suite.Scenario) (*toolkit.Menu, error) {
	menus := widget.Select(sc.Window, widget.ByRole("Menu"))
	for _, node := range menus {
		menu, ok := node.(*toolkit.Menu)
		if ok && len(widget.Select(menu, menuEntry("file"))) > 0 {
			return menu, nil
		}
	}
	return nil, fmt.Errorf("unable to find a file menu, menus: %s", widget.DescribeAll(menus))
}

func menuOption(sc *suite.Scenario, label string) (*toolkit.Widget, error) {
	menu, err := fileMenu(sc)
	if err != nil {
		return nil, err
	}

	node, err := widget.ExpectOne(menu, menuEntry(label))
	if err != nil {
		return nil, fmt.Errorf("unable to find the %q menu option: %w; menu entries: %s",
			label, err, widget.DescribeAll(widget.Select(menu, widget.ByRole("MenuEntry"))))
	}
	entry, ok := node.(*toolkit.Widget)
	if !ok {
		return nil, fmt.Errorf("%s cannot be selected", widget.Describe(node))
	}
	return entry, nil
}

func menuEntry(label string) widget.Selector {
	return widget.All(widget.ByRole("MenuEntry"), widget.ByLabel(label))
}

func canvasShowsText(ctx context.Context, text string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	for _, c := range canvases(sc) {
		if len(widget.CanvasText(c, text)) > 0 {
			return nil
		}
	}
	return fmt.Errorf("no canvas shows the text %q", text)
}

func canvasShowsImages(ctx context.Context, n int, kind string) error {
	sc, err := scenario(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, c := range canvases(sc) {
		count += len(widget.CanvasImage(sc.Window.Images(), c, kind))
	}
	if count != n {
		return fmt.Errorf("expected %d %q image(s) on the canvas, found %d", n, kind, count)
	}
	return nil
}

func canvases(sc *suite.Scenario) []widget.Canvas {
	var result []widget.Canvas
	for _, node := range widget.Select(sc.Window, widget.ByRole("Canvas")) {
		if c, ok := node.(widget.Canvas); ok {
			result = append(result, c)
		}
	}
	return result
}

func boardCellShows(ctx context.Context, column, row int, text string) error {
	g, err := board(ctx)
	if err != nil {
		return err
	}

	got, ok := g.At(column, row)
	if !ok || got != text {
		return fmt.Errorf("expected cell %d,%d to show %q, board:\n%s", column, row, text, g.Render())
	}
	return nil
}

func boardCellEmpty(ctx context.Context, column, row int) error {
	g, err := board(ctx)
	if err != nil {
		return err
	}

	if got, ok := g.At(column, row); ok {
		return fmt.Errorf("expected cell %d,%d to be empty, it shows %q, board:\n%s", column, row, got, g.Render())
	}
	return nil
}

func boardLooksLike(ctx context.Context, doc *godog.DocString) error {
	g, err := board(ctx)
	if err != nil {
		return err
	}

	want := strings.TrimSpace(doc.Content)
	if got := strings.TrimSpace(g.Render()); got != want {
		return fmt.Errorf("expected the board:\n%s\nbut it was:\n%s", want, got)
	}
	return nil
}

// board reads the scenario's only canvas as a grid with the runner's cell
// size.
func board(ctx context.Context) (*grid.Grid, error) {
	sc, err := scenario(ctx)
	if err != nil {
		return nil, err
	}

	node, err := widget.ExpectOne(sc.Window, widget.ByRole("Canvas"))
	if err != nil {
		return nil, err
	}
	c, ok := node.(grid.Canvas)
	if !ok {
		return nil, fmt.Errorf("%s cannot be read as a board", widget.Describe(node))
	}

	size := cellSizeFrom(ctx)
	return grid.New(c, size.width, size.height)
}
