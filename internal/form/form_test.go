package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bmi-calculator/internal/bmi"
	"bmi-calculator/internal/bmiclient"

	"github.com/stretchr/testify/require"
)

type fakeCalculator struct {
	mu      sync.Mutex
	calls   []bmi.MeasurementInput
	result  bmi.CalculationResult
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCalculator) Calculate(ctx context.Context, in bmi.MeasurementInput) (bmi.CalculationResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, in)
	f.mu.Unlock()

	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return bmi.CalculationResult{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeCalculator) Calls() []bmi.MeasurementInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bmi.MeasurementInput(nil), f.calls...)
}

type panickingCalculator struct{}

func (panickingCalculator) Calculate(context.Context, bmi.MeasurementInput) (bmi.CalculationResult, error) {
	panic("calculator exploded")
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func normalResult() bmi.CalculationResult {
	return bmi.CalculationResult{
		BMI:           22.857,
		Category:      "Normal weight",
		HealthMessage: "You have a healthy weight. Keep up the good work!",
		HealthAdvice:  "• Maintain your current routine\n• Eat a balanced diet",
		ColorCode:     "#27ae60",
	}
}

func TestSubmitSuccessWalksStateMachine(t *testing.T) {
	calc := &fakeCalculator{result: normalResult()}
	var seen []State
	f := New(calc, WithTransitionHook(func(from, to State) { seen = append(seen, to) }))

	display, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.NoError(t, err)

	require.Equal(t, "22.86", display.BMI)
	require.Equal(t, []State{Submitting, Success, Idle}, seen)
	require.Equal(t, Idle, f.State())

	got, ok := f.Result()
	require.True(t, ok)
	require.Equal(t, display, got)

	require.Equal(t, []bmi.MeasurementInput{{Weight: 70, Height: 1.75, Unit: bmi.Metric}}, calc.Calls())
}

func TestSubmitUsesSelectedUnitWithoutConversion(t *testing.T) {
	calc := &fakeCalculator{result: normalResult()}
	f := New(calc)

	hints := f.SelectUnit(bmi.Imperial)
	require.Equal(t, "in inches (in)", hints.HeightHint)

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "154", Height: "68"})
	require.NoError(t, err)
	require.Equal(t, []bmi.MeasurementInput{{Weight: 154, Height: 68, Unit: bmi.Imperial}}, calc.Calls())
}

func TestSubmitValidationFailureStaysIdle(t *testing.T) {
	calc := &fakeCalculator{}
	clk := &clock{t: time.Unix(1000, 0)}
	var seen []State
	f := New(calc, WithClock(clk.Now), WithTransitionHook(func(from, to State) { seen = append(seen, to) }))

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "", Height: "1.75"})
	require.ErrorIs(t, err, bmi.ErrMissingField)

	require.Empty(t, calc.Calls())
	require.Empty(t, seen)
	require.Equal(t, Idle, f.State())
	require.Equal(t, bmi.Fields{Weight: "", Height: "1.75"}, f.Fields())

	banner, ok := f.Banner()
	require.True(t, ok)
	require.Equal(t, "Please enter both weight and height!", banner.Message)
}

func TestSubmitRemoteFailureRaisesBannerAndKeepsFields(t *testing.T) {
	calc := &fakeCalculator{err: &bmiclient.CalculationError{
		Kind:    bmiclient.FieldError,
		Field:   "weight",
		Message: "Weight must be positive",
	}}
	clk := &clock{t: time.Unix(1000, 0)}
	var seen []State
	f := New(calc, WithClock(clk.Now), WithTransitionHook(func(from, to State) { seen = append(seen, to) }))

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.ErrorIs(t, err, bmiclient.ErrFieldInvalid)

	require.Equal(t, []State{Submitting, Failed, Idle}, seen)
	require.Equal(t, bmi.Fields{Weight: "70", Height: "1.75"}, f.Fields())

	banner, ok := f.Banner()
	require.True(t, ok)
	require.Equal(t, "Weight must be positive", banner.Message)

	_, ok = f.Result()
	require.False(t, ok)
}

func TestBannerAutoDismisses(t *testing.T) {
	clk := &clock{t: time.Unix(1000, 0)}
	f := New(&fakeCalculator{}, WithClock(clk.Now))

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "-1", Height: "1.75"})
	require.ErrorIs(t, err, bmi.ErrNonPositive)

	clk.t = clk.t.Add(BannerTTL - time.Millisecond)
	_, ok := f.Banner()
	require.True(t, ok)

	clk.t = clk.t.Add(time.Millisecond)
	_, ok = f.Banner()
	require.False(t, ok)
}

func TestSubmitClearsPreviousResult(t *testing.T) {
	calc := &fakeCalculator{result: normalResult()}
	f := New(calc)

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.NoError(t, err)

	calc.err = errors.New("boom")
	_, err = f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.Error(t, err)

	_, ok := f.Result()
	require.False(t, ok)
}

func TestSecondSubmitWhileSubmittingIsRejected(t *testing.T) {
	calc := &fakeCalculator{
		result:  normalResult(),
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	f := New(calc)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
		done <- err
	}()

	<-calc.entered
	require.Equal(t, Submitting, f.State())

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "80", Height: "1.80"})
	require.ErrorIs(t, err, ErrBusy)

	f.Reset()
	require.Equal(t, bmi.Fields{Weight: "70", Height: "1.75"}, f.Fields())

	close(calc.block)
	require.NoError(t, <-done)
	require.Equal(t, Idle, f.State())
	require.Len(t, calc.Calls(), 1)
}

func TestCancelledSubmissionReturnsToIdle(t *testing.T) {
	calc := &fakeCalculator{block: make(chan struct{})}
	f := New(calc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Submit(ctx, bmi.Fields{Weight: "70", Height: "1.75"})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Idle, f.State())
}

func TestPanickingCalculatorReturnsToIdle(t *testing.T) {
	var seen []State
	f := New(panickingCalculator{}, WithTransitionHook(func(from, to State) { seen = append(seen, to) }))

	require.PanicsWithValue(t, "calculator exploded", func() {
		f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	})

	require.Equal(t, Idle, f.State())
	require.Equal(t, []State{Submitting, Failed, Idle}, seen)

	banner, ok := f.Banner()
	require.True(t, ok)
	require.Equal(t, "An error occurred", banner.Message)

	f.calc = &fakeCalculator{result: normalResult()}
	display, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.NoError(t, err)
	require.Equal(t, "22.86", display.BMI)
}

func TestReset(t *testing.T) {
	f := New(&fakeCalculator{result: normalResult()})

	_, err := f.Submit(context.Background(), bmi.Fields{Weight: "70", Height: "1.75"})
	require.NoError(t, err)

	f.Reset()

	require.Equal(t, bmi.Fields{}, f.Fields())
	_, ok := f.Result()
	require.False(t, ok)
}
