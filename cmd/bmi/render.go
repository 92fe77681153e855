package main

import (
	"encoding/json"
	"fmt"
	"io"

	"bmi-calculator/internal/bmi"
)

type renderer func(io.Writer, bmi.Display) error

func rendererFor(format string) (renderer, error) {
	switch format {
	case "text", "":
		return renderText, nil
	case "json":
		return renderJSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(w io.Writer, d bmi.Display) error {
	fmt.Fprintf(w, "BMI:      %s\n", d.BMI)
	fmt.Fprintf(w, "Category: %s (%s)\n", d.Category, d.ColorCode)
	fmt.Fprintf(w, "%s\n", d.HealthMessage)
	if len(d.Advice) > 0 {
		fmt.Fprintln(w, "Advice:")
		for _, line := range d.Advice {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

func renderJSON(w io.Writer, d bmi.Display) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func bannerText(msg string) string {
	return "❌ " + msg
}

func printPrompt(w io.Writer, h bmi.Hints) {
	fmt.Fprintf(w, "Enter weight %s and height %s (e.g. %q), a unit name to switch, reset or quit.\n",
		h.WeightHint, h.HeightHint,
		trimExample(h.WeightPlaceholder)+" "+trimExample(h.HeightPlaceholder))
}

func trimExample(p string) string {
	const prefix = "e.g., "
	if len(p) > len(prefix) && p[:len(prefix)] == prefix {
		return p[len(prefix):]
	}
	return p
}
