package bmi

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Display is a CalculationResult shaped for output.
type Display struct {
	BMI           string   `json:"bmi"`
	Category      string   `json:"category"`
	HealthMessage string   `json:"healthMessage"`
	Advice        []string `json:"advice"`
	ColorCode     string   `json:"colorCode"`
}

// NewDisplay prepares a service result for rendering.
func NewDisplay(r CalculationResult) Display {
	return Display{
		BMI:           FormatBMI(r.BMI),
		Category:      r.Category,
		HealthMessage: r.HealthMessage,
		Advice:        AdviceLines(r.HealthAdvice),
		ColorCode:     r.ColorCode,
	}
}

// FormatBMI rounds to two decimals and keeps trailing zeros ("22.90").
func FormatBMI(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// AdviceLines splits newline-delimited advice, dropping blank lines.
func AdviceLines(advice string) []string {
	lines := strings.Split(advice, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
