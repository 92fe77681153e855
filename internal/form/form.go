// Package form drives one BMI form through its submission lifecycle:
// Idle -> Submitting -> Success|Failed -> Idle.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"bmi-calculator/internal/bmi"

	"go.uber.org/zap"
)

// BannerTTL is how long an error banner stays visible.
const BannerTTL = 5 * time.Second

const genericBanner = "An error occurred"

// ErrBusy is returned by Submit while another submission is in flight.
var ErrBusy = errors.New("a calculation is already in progress")

// Calculator is the remote side of a submission. *bmiclient.Client satisfies it.
type Calculator interface {
	Calculate(ctx context.Context, in bmi.MeasurementInput) (bmi.CalculationResult, error)
}

// State is the position of a form in its submission lifecycle.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Banner is a transient error message.
type Banner struct {
	Message   string
	ExpiresAt time.Time
}

func (b Banner) Active(now time.Time) bool {
	return b.Message != "" && now.Before(b.ExpiresAt)
}

type transition struct{ from, to State }

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for submission outcomes. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) { f.logger = l }
}

// WithClock replaces time.Now for banner expiry.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// WithTransitionHook registers fn to observe every state change. fn runs
// after the form's lock is released, in transition order.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(f *Form) { f.onTransition = fn }
}

// Form holds the state of one open form. It is safe for concurrent use;
// a second Submit while one is in flight fails with ErrBusy.
type Form struct {
	calc         Calculator
	logger       *zap.Logger
	now          func() time.Time
	onTransition func(from, to State)

	mu     sync.Mutex
	state  State
	sel    bmi.Selection
	fields bmi.Fields
	banner Banner
	result *bmi.Display
}

// New returns an Idle form with the metric unit selected.
func New(calc Calculator, opts ...Option) *Form {
	f := &Form{
		calc:   calc,
		logger: zap.NewNop(),
		now:    time.Now,
		sel:    bmi.NewSelection(bmi.Metric),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SelectUnit switches the unit used by the next submission and returns the
// matching input hints. An in-flight submission keeps the unit it started with.
func (f *Form) SelectUnit(u bmi.Unit) bmi.Hints {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sel = f.sel.Toggle(u)
	return f.sel.Hints()
}

func (f *Form) Selection() bmi.Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fields returns the values last entered. Failures never clear them.
func (f *Form) Fields() bmi.Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Banner returns the current error banner while it has not expired.
func (f *Form) Banner() (Banner, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.banner.Active(f.now()) {
		return Banner{}, false
	}
	return f.banner, true
}

// Result returns the display of the last successful calculation.
func (f *Form) Result() (bmi.Display, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result == nil {
		return bmi.Display{}, false
	}
	return *f.result, true
}

// Submit validates fields locally and, when they pass, runs one calculation.
//
// Local validation failures raise the banner and return a
// *bmi.ValidationFailure without leaving Idle. Remote failures pass through
// Failed back to Idle and return the calculator's error.
func (f *Form) Submit(ctx context.Context, fields bmi.Fields) (bmi.Display, error) {
	f.mu.Lock()
	if f.state != Idle {
		f.mu.Unlock()
		return bmi.Display{}, ErrBusy
	}

	f.fields = fields
	in, err := bmi.Collect(fields, f.sel)
	if err != nil {
		f.raise(err)
		f.mu.Unlock()
		f.logger.Info("input rejected", zap.Error(err))
		return bmi.Display{}, err
	}

	f.result = nil
	f.banner = Banner{}
	fired := []transition{f.moveTo(Submitting)}
	f.mu.Unlock()
	f.notify(fired)

	res, err := f.calculate(ctx, in)

	f.mu.Lock()
	if err != nil {
		fired = []transition{f.moveTo(Failed)}
		f.raise(err)
		fired = append(fired, f.moveTo(Idle))
		f.mu.Unlock()
		f.notify(fired)

		f.logger.Error("calculation failed",
			zap.String("unit", in.Unit.String()),
			zap.Error(err),
		)
		return bmi.Display{}, err
	}

	display := bmi.NewDisplay(res)
	f.result = &display
	fired = []transition{f.moveTo(Success), f.moveTo(Idle)}
	f.mu.Unlock()
	f.notify(fired)

	f.logger.Info("bmi calculation result",
		zap.String("unit", in.Unit.String()),
		zap.String("bmi", display.BMI),
		zap.String("category", display.Category),
	)
	return display, nil
}

// Reset clears the entered values, result and banner. It is a no-op while a
// submission is in flight.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Idle {
		return
	}
	f.fields = bmi.Fields{}
	f.result = nil
	f.banner = Banner{}
}

// calculate runs the calculator. If it panics the form goes through Failed
// back to Idle with a generic banner before the panic continues.
func (f *Form) calculate(ctx context.Context, in bmi.MeasurementInput) (bmi.CalculationResult, error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f.mu.Lock()
		fired := []transition{f.moveTo(Failed)}
		f.banner = Banner{Message: genericBanner, ExpiresAt: f.now().Add(BannerTTL)}
		fired = append(fired, f.moveTo(Idle))
		f.mu.Unlock()
		f.notify(fired)

		f.logger.Error("calculator panicked",
			zap.String("unit", in.Unit.String()),
			zap.Any("panic", r),
		)
		panic(r)
	}()
	return f.calc.Calculate(ctx, in)
}

// moveTo must be called with mu held.
func (f *Form) moveTo(s State) transition {
	t := transition{from: f.state, to: s}
	f.state = s
	return t
}

// raise must be called with mu held.
func (f *Form) raise(err error) {
	msg := err.Error()
	if msg == "" {
		msg = genericBanner
	}
	f.banner = Banner{Message: msg, ExpiresAt: f.now().Add(BannerTTL)}
}

func (f *Form) notify(ts []transition) {
	if f.onTransition == nil {
		return
	}
	for _, t := range ts {
		f.onTransition(t.from, t.to)
	}
}
