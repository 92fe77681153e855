package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"bmi-calculator/internal/bmi"
	"bmi-calculator/internal/form"
)

func calculateCommand(rt *session) *cli.Command {
	return &cli.Command{
		Name:    "calculate",
		Aliases: []string{"calc"},
		Usage:   "Calculate BMI for one measurement",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "weight",
				Aliases: []string{"w"},
				Usage:   "Weight in kg (metric) or lbs (imperial)",
			},
			&cli.StringFlag{
				Name:    "height",
				Aliases: []string{"H"},
				Usage:   "Height in m (metric) or in (imperial)",
			},
			&cli.StringFlag{
				Name:    "unit",
				Aliases: []string{"u"},
				Value:   string(bmi.Metric),
				Usage:   "Unit system (metric, imperial)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "text",
				Usage:   "Output format (text, json)",
			},
		},
		Action: func(c *cli.Context) error {
			unit, err := bmi.ParseUnit(c.String("unit"))
			if err != nil {
				return cli.Exit(err.Error(), ExitUsage)
			}
			render, err := rendererFor(c.String("output"))
			if err != nil {
				return cli.Exit(err.Error(), ExitUsage)
			}

			f := rt.newForm()
			f.SelectUnit(unit)

			display, err := f.Submit(submissionContext(c.Context), bmi.Fields{
				Weight: c.String("weight"),
				Height: c.String("height"),
			})
			if err != nil {
				return cli.Exit(bannerText(err.Error()), exitCode(err))
			}

			return render(c.App.Writer, display)
		},
	}
}

func interactiveCommand(rt *session) *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Enter measurements line by line",
		Action: func(c *cli.Context) error {
			rt.client.Probe(c.Context)

			f := rt.newForm()
			out := c.App.Writer
			printPrompt(out, f.Selection().Hints())

			scanner := bufio.NewScanner(c.App.Reader)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(line) {
				case "":
					continue
				case "quit", "exit", "q":
					return nil
				case "reset":
					f.Reset()
					fmt.Fprintln(out, "Form cleared.")
				case string(bmi.Metric), string(bmi.Imperial):
					printPrompt(out, f.SelectUnit(bmi.Unit(strings.ToLower(line))))
				default:
					submitLine(c, f, line)
				}
			}
			return scanner.Err()
		},
	}
}

func submitLine(c *cli.Context, f *form.Form, line string) {
	var fields bmi.Fields
	parts := strings.Fields(line)
	if len(parts) > 0 {
		fields.Weight = parts[0]
	}
	if len(parts) > 1 {
		fields.Height = parts[1]
	}

	display, err := f.Submit(submissionContext(c.Context), fields)
	if err != nil {
		if banner, ok := f.Banner(); ok {
			fmt.Fprintln(c.App.ErrWriter, bannerText(banner.Message))
		}
		return
	}
	renderText(c.App.Writer, display)
}

func healthCommand(rt *session) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the calculation service is running",
		Action: func(c *cli.Context) error {
			msg, err := rt.client.Health(submissionContext(c.Context))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Backend not reachable: %v", err), ExitUnreachable)
			}
			fmt.Fprintf(c.App.Writer, "Backend status: %s\n", msg)
			return nil
		},
	}
}
