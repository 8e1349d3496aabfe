package bdd_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/kardolus/conscience/bdd"
	"github.com/kardolus/conscience/config"
	"github.com/kardolus/conscience/history"
	"github.com/kardolus/conscience/keyboard"
	"github.com/kardolus/conscience/suite"
	"github.com/kardolus/conscience/toolkit"
)

// counter scores Step points per second and moves on the d key.
type counter struct {
	Step int

	points int
	score  *toolkit.Widget
	status *toolkit.Widget
}

func (c *counter) show() {
	_ = c.score.Configure(toolkit.Options{"text": fmt.Sprintf("Score: %d", c.points)})
}

func (c *counter) reset() {
	c.points = 0
	c.show()
}

func (c *counter) Run(root *toolkit.Tk) {
	root.SetTitle("Counter")

	menubar, _ := toolkit.NewMenu(root, nil)
	file, _ := toolkit.NewMenu(menubar, toolkit.Options{"tearoff": 0})
	_, _ = file.AddCommand("New game", c.reset)
	_, _ = file.AddCommand("Quit", root.Destroy)
	_, _ = menubar.AddCascade("File", file)
	_ = root.Configure(toolkit.Options{"menu": menubar})

	c.score, _ = toolkit.NewLabel(root, toolkit.Options{"text": "Score: 0"})
	c.status, _ = toolkit.NewLabel(root, toolkit.Options{"text": "idle"})
	_, _ = toolkit.NewButton(root, toolkit.Options{"text": "Reset", "command": c.reset})

	board, _ := toolkit.NewCanvas(root, toolkit.Options{"width": 40, "height": 40})
	_, _ = board.CreateText(30, 5, toolkit.Options{"text": "GO"})
	_, _ = board.CreateText(10, 30, toolkit.Options{"text": "@"})
	zombie := root.PhotoImage("assets/zombie.gif")
	_, _ = board.CreateImage(10, 10, zombie, nil)
	_, _ = board.CreateImage(30, 10, zombie, nil)

	root.Bind("<KeyPress-d>", func(e *keyboard.Event) {
		_ = c.status.Configure(toolkit.Options{"text": "moved right"})
	})

	var tick func()
	tick = func() {
		c.points += c.Step
		c.show()
		root.After(1000, tick)
	}
	root.After(1000, tick)

	root.Mainloop()
}

const passing = `Feature: counter
  Scenario: scoring and moving
    Given the window title is "Counter"
    When I wait 1000ms
    Then I see "Score: 2"
    When I wait 1000ms
    Then I see exactly "Score: 4"
    When I press "d"
    Then I see "moved right"
    And I do not see "idle"
    When I click "reset"
    Then I see "score: 0"
    And the canvas shows the text "GO"
    And the canvas shows 2 "zombie" images
    And the board cell 1,0 shows "GO"
    And the board cell 0,0 is empty
    And the board looks like:
      """
      | |GO|
      |@| |
      """

  Scenario: starting over from the menu
    Given the file menu is displayed
    And I can see a "New game" menu option
    When I wait 1000ms
    Then I see "Score: 2"
    When I select the "new game" menu option
    Then I see exactly "Score: 0"
`

const failing = `Feature: counter
  Scenario: looking for something missing
    When I wait 1500ms
    Then I see "Game over"
`

const strict = `Feature: counter
  Scenario: asking for more than is shown
    Then I see exactly "score: 0"
`

// twins shows the same text twice.
type twins struct{}

func (twins) Run(root *toolkit.Tk) {
	_, _ = toolkit.NewLabel(root, toolkit.Options{"text": "ready"})
	_, _ = toolkit.NewLabel(root, toolkit.Options{"text": " Ready"})
	root.Mainloop()
}

func TestUnitBDD(t *testing.T) {
	spec.Run(t, "Testing the godog runner", testBDD, spec.Report(report.Terminal{}))
}

func testBDD(t *testing.T, when spec.G, it spec.S) {
	var (
		subject    *bdd.Runner
		s          *suite.Suite
		failures   *history.Manager
		newProgram = func() bdd.Program { return &counter{Step: 1} }
	)

	it.Before(func() {
		RegisterTestingT(t)

		var err error
		s, err = suite.New(config.Config{
			Name:               "counter",
			Seed:               42,
			Isolated:           true,
			TranscriptMaxBytes: 4096,
			Lobes:              []string{"mainloop", "after", "bind", "images"},
			Overrides:          map[string]string{"Step": "2"},
		})
		Expect(err).NotTo(HaveOccurred())

		failures = history.NewManager(history.New().WithFilePath(filepath.Join(t.TempDir(), "history.yaml")))
		subject = bdd.New(s, newProgram, bdd.WithHistory(failures))
	})

	run := func(contents string, output io.Writer) int {
		return subject.TestSuite("counter", &godog.Options{
			Format: "progress",
			Output: output,
			Strict: true,
			FeatureContents: []godog.Feature{
				{Name: "counter.feature", Contents: []byte(contents)},
			},
		}).Run()
	}

	when("the steps pass", func() {
		it("drives the program through the reusable steps", func() {
			Expect(run(passing, io.Discard)).To(Equal(0))
		})
	})

	when("a step fails", func() {
		it("reports the suite's hints with the failure", func() {
			var out bytes.Buffer
			Expect(run(failing, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`nothing shows "Game over"`))
			Expect(out.String()).To(ContainSubstring("bound keys:"))
			Expect(out.String()).To(ContainSubstring("still scheduled at 1500ms"))
		})

		it("reports text that is not shown exactly", func() {
			var out bytes.Buffer
			Expect(run(strict, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`cannot find exactly 1 widget(s) matching text "score: 0"`))
			Expect(out.String()).To(ContainSubstring(`Label("Score: 0")`))
		})

		it("reports a missing menu option with the menu's entries", func() {
			var out bytes.Buffer
			Expect(run(`Feature: counter
  Scenario: saving
    Then I can see a "Save" menu option
`, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`unable to find the "Save" menu option`))
			Expect(out.String()).To(ContainSubstring(`MenuEntry("New game")`))
		})

		it("reports a wrong window title", func() {
			var out bytes.Buffer
			Expect(run(`Feature: counter
  Scenario: renamed
    Then the window title is "Tetris"
`, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`but it was "Counter"`))
		})

		it("renders the board when a cell does not match", func() {
			var out bytes.Buffer
			Expect(run(`Feature: counter
  Scenario: misplaced
    Then the board cell 0,1 shows "GO"
`, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`expected cell 0,1 to show "GO"`))
		})

		it("refuses text shown by more than one widget", func() {
			subject = bdd.New(s, func() bdd.Program { return twins{} })

			var out bytes.Buffer
			Expect(run(`Feature: twins
  Scenario: ambiguous
    Then I see "ready"
`, &out)).NotTo(Equal(0))

			Expect(out.String()).To(ContainSubstring(`2 widgets show "ready", expected one`))
		})

		it("records the failure in the history", func() {
			Expect(run(failing, io.Discard)).NotTo(Equal(0))

			entries, err := failures.Entries()
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name).To(Equal("looking for something missing"))
			Expect(entries[0].Step).To(Equal(`I see "Game over"`))
			Expect(entries[0].Seed).To(Equal(int64(42)))
			Expect(entries[0].Hint).To(ContainSubstring("state:"))
		})
	})

	when("FromContext()", func() {
		it("reports false without a scenario", func() {
			_, ok := bdd.FromContext(context.Background())
			Expect(ok).To(BeFalse())
		})

		it("returns the stored scenario", func() {
			sc := &suite.Scenario{ID: "abc"}
			found, ok := bdd.FromContext(bdd.WithScenario(context.Background(), sc))
			Expect(ok).To(BeTrue())
			Expect(found).To(BeIdenticalTo(sc))
		})
	})

	it("renders the step and the hint of a HintError", func() {
		err := bdd.HintError{Step: `I see "x"`, Hint: "bound keys: <KeyPress-d>"}
		Expect(err.Error()).To(Equal("step \"I see \\\"x\\\"\" failed\nbound keys: <KeyPress-d>"))
	})
}
