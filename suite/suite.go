// Package suite runs the per-scenario lifecycle of a headless GUI test: it
// installs interceptions over the toolkit before the program under test
// starts, owns the scenario's virtual clock, and annotates failures.
package suite

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kardolus/conscience/clock"
	"github.com/kardolus/conscience/config"
	"github.com/kardolus/conscience/intercept"
	"github.com/kardolus/conscience/keyboard"
	"github.com/kardolus/conscience/toolkit"
)

//go:generate mockgen -destination=lobemocks_test.go -package=suite_test github.com/kardolus/conscience/suite Lobe

// Lobe adds one capability to a suite. OnLoad runs once per suite, OnStart
// once per scenario, and FailureMessage may contribute a hint when a step
// fails.
type Lobe interface {
	Name() string
	OnLoad(s *Suite) error
	OnStart(sc *Scenario) error
	FailureMessage(sc *Scenario, step string) (string, bool)
}

type override struct {
	name  string
	value any
}

type warning struct {
	owner   any
	member  string
	message string
}

type Suite struct {
	cfg    config.Config
	logger *zap.Logger

	mu        sync.Mutex
	lobes     []Lobe
	overrides []override
	warnings  []warning

	loadMu  sync.Mutex
	loaded  bool
	loadErr error
}

type Option func(*Suite)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Suite) {
		s.logger = logger
	}
}

// New creates a suite with the lobes named in cfg enabled.
func New(cfg config.Config, opts ...Option) (*Suite, error) {
	s := &Suite{cfg: cfg, logger: zap.L()}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range cfg.Lobes {
		lobe, err := Builtin(name, cfg)
		if err != nil {
			return nil, err
		}
		s.Enable(lobe)
	}
	return s, nil
}

func (s *Suite) Config() config.Config { return s.cfg }

func (s *Suite) Enable(lobes ...Lobe) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobes = append(s.lobes, lobes...)
	return s
}

func (s *Suite) Lobes() []Lobe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Lobe(nil), s.lobes...)
}

// Override assigns value to the target's field (or map entry) name at the
// start of every scenario.
func (s *Suite) Override(name string, value any) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = append(s.overrides, override{name: name, value: value})
	return s
}

// WarnOn swallows every call to owner's member during a scenario and
// records message in the scenario's transcript instead.
func (s *Suite) WarnOn(owner any, member, message string) *Suite {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, warning{owner: owner, member: member, message: message})
	return s
}

// Load runs every lobe's OnLoad hook once. Later calls return the first
// outcome, so a suite that failed to load never starts a scenario.
func (s *Suite) Load() error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.loaded {
		return s.loadErr
	}

	var err error
	for _, lobe := range s.Lobes() {
		if lerr := lobe.OnLoad(s); lerr != nil {
			err = multierr.Append(err, LobeError{Lobe: lobe.Name(), Hook: "load", Err: lerr})
		}
	}

	s.loaded = true
	s.loadErr = err
	return err
}

// Start prepares a scenario for target, the program under test: it seeds
// randomness, applies overrides, installs warnings and runs each lobe's
// OnStart hook. On failure every interception made so far is restored.
func (s *Suite) Start(target any) (*Scenario, error) {
	if err := s.Load(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	overrides := append([]override(nil), s.overrides...)
	warnings := append([]warning(nil), s.warnings...)
	s.mu.Unlock()

	sc := s.newScenario(target)

	var err error
	names := make([]string, 0, len(s.cfg.Overrides))
	for name := range s.cfg.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		err = multierr.Append(err, assign(target, name, s.cfg.Overrides[name]))
	}
	for _, o := range overrides {
		err = multierr.Append(err, assign(target, o.name, o.value))
	}
	for _, w := range warnings {
		err = multierr.Append(err, sc.warnOn(w))
	}
	if err == nil {
		for _, lobe := range s.Lobes() {
			if lerr := lobe.OnStart(sc); lerr != nil {
				err = multierr.Append(err, LobeError{Lobe: lobe.Name(), Hook: "start", Err: lerr})
			}
		}
	}

	if err != nil {
		sc.Close()
		return nil, err
	}

	sc.logger.Info("scenario started",
		zap.Int64("seed", sc.Seed),
		zap.Int("bindings", len(sc.Registry.Active())),
	)
	return sc, nil
}

// OnFail collects the hints of every lobe, the scenario's transcript and a
// snapshot of its state.
func (s *Suite) OnFail(sc *Scenario, step string) (string, bool) {
	var parts []string
	for _, lobe := range s.Lobes() {
		if message, ok := lobe.FailureMessage(sc, step); ok && message != "" {
			parts = append(parts, strings.TrimRight(message, "\n"))
		}
	}

	if transcript := sc.Transcript.String(); transcript != "" {
		parts = append(parts, "transcript:\n"+strings.TrimRight(transcript, "\n"))
	}

	if snapshot, err := sc.Snapshot().YAML(); err == nil {
		parts = append(parts, "state:\n"+strings.TrimRight(snapshot, "\n"))
	} else {
		s.logger.Warn("failed to render scenario state", zap.Error(err))
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func (s *Suite) newScenario(target any) *Scenario {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clockOpts := []clock.Option{clock.WithLogger(s.logger)}
	if s.cfg.FailFast {
		clockOpts = append(clockOpts, clock.WithFailFast())
	}

	methods := toolkit.Default
	if s.cfg.Isolated {
		methods = toolkit.NewMethods()
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("scenario", id))

	sc := &Scenario{
		ID:         id,
		Seed:       seed,
		Registry:   intercept.NewRegistry(intercept.WithLogger(logger)),
		Clock:      clock.NewVirtual(clockOpts...),
		Rand:       rand.New(rand.NewSource(seed)),
		Methods:    methods,
		Transcript: NewTranscript(s.cfg.TranscriptMaxBytes),
		target:     target,
		router:     keyboard.NewRouter(keyboard.WithLogger(logger)),
		named:      make(map[string]*intercept.Binding),
		logger:     logger,
	}

	title := s.cfg.Name
	if title == "" {
		title = "tk"
	}
	sc.Window = toolkit.NewTk(toolkit.WithMethods(methods), toolkit.WithTitle(title))
	return sc
}

func describeWarning(w warning) string {
	return fmt.Sprintf("%T.%s", w.owner, w.member)
}
