// Package bdd runs suite scenarios under godog. Every godog scenario gets a
// fresh suite scenario, failing steps carry the suite's failure hints and a
// set of reusable steps drives the program under test.
package bdd

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/kardolus/conscience/history"
	"github.com/kardolus/conscience/suite"
	"github.com/kardolus/conscience/toolkit"
)

// Program is an application under test. Run builds its widgets on root and
// enters the main loop; enable the mainloop lobe so Run returns.
type Program interface {
	Run(root *toolkit.Tk)
}

// HintError annotates a failed step with what the suite knows about the
// scenario.
type HintError struct {
	Step string
	Hint string
}

func (e HintError) Error() string {
	return fmt.Sprintf("step %q failed\n%s", e.Step, e.Hint)
}

type Runner struct {
	suite      *suite.Suite
	newProgram func() Program
	history    *history.Manager
	cell       cellSize
	logger     *zap.Logger
}

type cellSize struct {
	width  int
	height int
}

var defaultCellSize = cellSize{width: 20, height: 20}

type Option func(*Runner)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHistory records every failed step in h.
func WithHistory(h *history.Manager) Option {
	return func(r *Runner) {
		r.history = h
	}
}

// WithCellSize sets the cell size the board steps read the canvas with.
func WithCellSize(width, height int) Option {
	return func(r *Runner) {
		r.cell = cellSize{width: width, height: height}
	}
}

// New returns a Runner starting a scenario of s for a program made by
// newProgram before each godog scenario.
func New(s *suite.Suite, newProgram func() Program, opts ...Option) *Runner {
	r := &Runner{
		suite:      s,
		newProgram: newProgram,
		cell:       defaultCellSize,
		logger:     zap.L(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TestSuite wires the runner into a godog test suite.
func (r *Runner) TestSuite(name string, opts *godog.Options) godog.TestSuite {
	return godog.TestSuite{
		Name:                name,
		ScenarioInitializer: r.InitializeScenario,
		Options:             opts,
	}
}

// InitializeScenario installs the lifecycle hooks and the reusable steps.
func (r *Runner) InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(r.before)
	ctx.After(r.after)
	ctx.StepContext().After(r.afterStep)
	RegisterSteps(ctx)
}

func (r *Runner) before(ctx context.Context, gs *godog.Scenario) (context.Context, error) {
	program := r.newProgram()
	sc, err := r.suite.Start(program)
	if err != nil {
		r.logger.Error("failed to start scenario", zap.String("name", gs.Name), zap.Error(err))
		return ctx, fmt.Errorf("start %q: %w", gs.Name, err)
	}

	sc.Logger().Debug("running program", zap.String("name", gs.Name))
	program.Run(sc.Window)
	ctx = context.WithValue(WithScenario(ctx, sc), nameKey{}, gs.Name)
	return context.WithValue(ctx, cellKey{}, r.cell), nil
}

func (r *Runner) after(ctx context.Context, gs *godog.Scenario, err error) (context.Context, error) {
	if sc, ok := FromContext(ctx); ok {
		sc.Close()
	}
	return ctx, nil
}

func (r *Runner) afterStep(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
	if status != godog.StepFailed {
		return ctx, nil
	}

	sc, ok := FromContext(ctx)
	if !ok {
		return ctx, nil
	}

	hint, ok := r.suite.OnFail(sc, st.Text)
	if !ok {
		return ctx, nil
	}
	r.record(ctx, sc, st.Text, hint)
	return ctx, HintError{Step: st.Text, Hint: hint}
}

func (r *Runner) record(ctx context.Context, sc *suite.Scenario, step, hint string) {
	if r.history == nil {
		return
	}

	name, _ := ctx.Value(nameKey{}).(string)
	entry := history.Entry{Scenario: sc.ID, Name: name, Step: step, Seed: sc.Seed, Hint: hint}
	if err := r.history.Record(entry); err != nil {
		sc.Logger().Warn("failed to record failure", zap.Error(err))
	}
}

type (
	scenarioKey struct{}
	nameKey     struct{}
	cellKey     struct{}
)

// WithScenario stores sc in ctx for the steps.
func WithScenario(ctx context.Context, sc *suite.Scenario) context.Context {
	return context.WithValue(ctx, scenarioKey{}, sc)
}

// FromContext returns the scenario the runner started for ctx.
func FromContext(ctx context.Context) (*suite.Scenario, bool) {
	sc, ok := ctx.Value(scenarioKey{}).(*suite.Scenario)
	return sc, ok && sc != nil
}

func cellSizeFrom(ctx context.Context) cellSize {
	if size, ok := ctx.Value(cellKey{}).(cellSize); ok {
		return size
	}
	return defaultCellSize
}
