package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"bmi-calculator/internal/bmi"
	"bmi-calculator/internal/bmiclient"
	"bmi-calculator/internal/form"
	"bmi-calculator/internal/observability"
)

// Exit codes for scripting.
const (
	ExitSuccess     = 0
	ExitUsage       = 1
	ExitInvalid     = 2
	ExitRejected    = 3
	ExitUnreachable = 4
)

type session struct {
	client   *bmiclient.Client
	shutdown []func(context.Context) error
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	rt := &session{}

	return &cli.App{
		Name:      "bmi",
		Usage:     "Body-mass-index calculator client",
		Version:   version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		// main turns exit codes into os.Exit so tests can run the app in-process.
		ExitErrHandler: func(c *cli.Context, err error) {
			var exit cli.ExitCoder
			if errors.As(err, &exit) && err.Error() != "" {
				fmt.Fprintln(c.App.ErrWriter, err)
			}
		},

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base-url",
				Value:   bmiclient.DefaultBaseURL,
				Usage:   "Calculation service base URL",
				EnvVars: []string{"BMI_API_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Request timeout (0 waits until interrupted)",
				EnvVars: []string{"BMI_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"BMI_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "telemetry",
				Usage:   "Export traces and metrics over OTLP/HTTP",
				EnvVars: []string{"BMI_TELEMETRY"},
			},
		},

		Before: rt.setup,
		After:  rt.teardown,

		Commands: []*cli.Command{
			calculateCommand(rt),
			interactiveCommand(rt),
			healthCommand(rt),
		},
	}
}

func (rt *session) setup(c *cli.Context) error {
	if err := observability.InitConsoleLogger(c.String("log-level")); err != nil {
		return cli.Exit(err.Error(), ExitUsage)
	}

	if c.Bool("telemetry") {
		traceShutdown, err := observability.InitTracing(c.Context)
		if err != nil {
			return cli.Exit(fmt.Sprintf("init tracing: %v", err), ExitUsage)
		}
		metricShutdown, err := observability.InitMetrics(c.Context)
		if err != nil {
			return cli.Exit(fmt.Sprintf("init metrics: %v", err), ExitUsage)
		}
		rt.shutdown = append(rt.shutdown, traceShutdown, metricShutdown)
	}

	if err := bmiclient.InitMetrics(); err != nil {
		return cli.Exit(err.Error(), ExitUsage)
	}

	client, err := bmiclient.New(bmiclient.Config{
		BaseURL: c.String("base-url"),
		Timeout: c.Duration("timeout"),
		Logger:  observability.Logger.Named("client"),
	})
	if err != nil {
		return cli.Exit(err.Error(), ExitUsage)
	}
	rt.client = client

	return nil
}

func (rt *session) teardown(c *cli.Context) error {
	for _, fn := range rt.shutdown {
		if err := fn(context.Background()); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	observability.SyncLogger()
	return nil
}

func (rt *session) newForm() *form.Form {
	return form.New(rt.client, form.WithLogger(observability.Logger.Named("form")))
}

// submissionContext tags ctx with a fresh request ID so client and service
// log lines for one submission correlate.
func submissionContext(ctx context.Context) context.Context {
	return observability.ContextWithRequestID(ctx, observability.NewRequestID())
}

// exitCode maps a submission error onto the process exit code.
func exitCode(err error) int {
	var vf *bmi.ValidationFailure
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &vf):
		return ExitInvalid
	case errors.Is(err, bmiclient.ErrUnreachable):
		return ExitUnreachable
	default:
		return ExitRejected
	}
}
