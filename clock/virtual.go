package clock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const idPrefix = "after#"

// ID identifies a scheduled callback. IDs are never reused by a Virtual.
type ID uint64

func (id ID) String() string {
	return idPrefix + strconv.FormatUint(uint64(id), 10)
}

// ParseID reverses ID.String.
func ParseID(s string) (ID, bool) {
	if !strings.HasPrefix(s, idPrefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, idPrefix), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return ID(n), true
}

// Scheduled is a snapshot of a callback waiting to fire.
type Scheduled struct {
	ID  ID    `yaml:"id"`
	Due int64 `yaml:"due_ms"`
}

type entry struct {
	id        ID
	due       int64
	fn        func()
	cancelled bool
}

// Virtual is a manually advanced scheduler. Time only moves when Advance or
// Sleep is called, and starts at zero.
type Virtual struct {
	mu       sync.Mutex
	epoch    time.Time
	elapsed  int64
	last     ID
	queue    *binaryheap.Heap
	pending  map[ID]*entry
	failFast bool
	logger   *zap.Logger
}

// Ensure Virtual implements the Clock interface
var _ Clock = &Virtual{}

type Option func(*Virtual)

func WithLogger(logger *zap.Logger) Option {
	return func(v *Virtual) {
		v.logger = logger
	}
}

// WithFailFast stops Advance at the first failing callback. Remaining due
// callbacks stay queued and fire on the next Advance.
func WithFailFast() Option {
	return func(v *Virtual) {
		v.failFast = true
	}
}

// WithEpoch sets the wall time reported by Now at elapsed zero.
func WithEpoch(epoch time.Time) Option {
	return func(v *Virtual) {
		v.epoch = epoch
	}
}

func NewVirtual(opts ...Option) *Virtual {
	v := &Virtual{
		epoch:   time.Unix(0, 0).UTC(),
		queue:   binaryheap.NewWith(byDueThenID),
		pending: make(map[ID]*entry),
		logger:  zap.L(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func byDueThenID(a, b interface{}) int {
	x, y := a.(*entry), b.(*entry)
	switch {
	case x.due < y.due:
		return -1
	case x.due > y.due:
		return 1
	case x.id < y.id:
		return -1
	case x.id > y.id:
		return 1
	default:
		return 0
	}
}

// Schedule queues fn to fire once delayMs of simulated time has passed.
func (v *Virtual) Schedule(delayMs int, fn func()) (ID, error) {
	if delayMs < 0 {
		return 0, InvalidDelayError{Op: "schedule", Delay: delayMs}
	}
	if fn == nil {
		return 0, fmt.Errorf("schedule: nil callback")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.last++
	e := &entry{id: v.last, due: v.elapsed + int64(delayMs), fn: fn}
	v.queue.Push(e)
	v.pending[e.id] = e

	v.logger.Debug("callback scheduled",
		zap.Stringer("id", e.id),
		zap.Int64("due_ms", e.due),
	)
	return e.id, nil
}

// Cancel prevents id from firing. Unknown, fired or already cancelled ids
// are ignored.
func (v *Virtual) Cancel(id ID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.pending[id]
	if !ok {
		return
	}
	e.cancelled = true
	delete(v.pending, id)

	v.logger.Debug("callback cancelled", zap.Stringer("id", id))
}

// Advance moves time forward by ms and fires every callback that becomes
// due, earliest first and FIFO among equal due times. Callbacks scheduled
// while firing also run if they are due. Panics are collected and returned
// together once the batch is done.
func (v *Virtual) Advance(ms int) error {
	if ms < 0 {
		return InvalidDelayError{Op: "advance", Delay: ms}
	}

	v.mu.Lock()
	v.elapsed += int64(ms)
	now := v.elapsed
	v.mu.Unlock()

	var errs error
	fired := 0
	for {
		e, ok := v.popDue(now)
		if !ok {
			break
		}

		fired++
		if err := v.fire(e); err != nil {
			v.logger.Warn("callback failed", zap.Stringer("id", e.id), zap.Error(err))
			errs = multierr.Append(errs, err)
			if v.failFast {
				break
			}
		}
	}

	v.logger.Debug("time advanced",
		zap.Int("by_ms", ms),
		zap.Int64("now_ms", now),
		zap.Int("fired", fired),
	)
	return errs
}

// Elapsed returns the simulated milliseconds since the clock was created.
func (v *Virtual) Elapsed() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.elapsed
}

func (v *Virtual) Now() time.Time {
	return v.epoch.Add(time.Duration(v.Elapsed()) * time.Millisecond)
}

// Sleep advances simulated time by d, truncated to milliseconds.
func (v *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return v.Advance(int(d / time.Millisecond))
}

// Pending returns the callbacks still waiting to fire, in firing order.
func (v *Virtual) Pending() []Scheduled {
	v.mu.Lock()
	defer v.mu.Unlock()

	result := make([]Scheduled, 0, len(v.pending))
	for _, e := range v.pending {
		result = append(result, Scheduled{ID: e.id, Due: e.due})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Due != result[j].Due {
			return result[i].Due < result[j].Due
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (v *Virtual) popDue(now int64) (*entry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for {
		top, ok := v.queue.Peek()
		if !ok {
			return nil, false
		}

		e := top.(*entry)
		if e.cancelled {
			v.queue.Pop()
			continue
		}
		if e.due > now {
			return nil, false
		}

		v.queue.Pop()
		delete(v.pending, e.id)
		return e, true
	}
}

func (v *Virtual) fire(e *entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = CallbackError{ID: e.id, Due: e.due, Value: r}
		}
	}()

	e.fn()
	return nil
}
