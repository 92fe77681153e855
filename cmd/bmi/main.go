// Command bmi is a terminal front end for the BMI calculation service.
//
// Usage:
//
//	bmi calculate --weight 70 --height 1.75
//	bmi calculate --unit imperial --weight 154 --height 68 --output json
//	bmi interactive
//	bmi health
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"bmi-calculator/internal/config"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}

	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		// Parse errors are not ExitCoders and have not been printed yet.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}
}
