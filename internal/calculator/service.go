package calculator

import (
	"errors"
	"math"
	"strings"

	"bmi-calculator/internal/bmi"
)

const (
	poundsToKilograms = 0.453592
	inchesToMeters    = 0.0254
)

// Field validation messages, keyed by the request field they belong to.
const (
	msgWeightRequired = "Weight is required"
	msgWeightPositive = "Weight must be positive"
	msgHeightRequired = "Height is required"
	msgHeightPositive = "Height must be positive"
	msgUnitInvalid    = "Unit must be metric or imperial"
)

var ErrUnknownUnit = errors.New("unknown unit")

var (
	underweight = Category{
		Name:    "Underweight",
		Message: "You may need to gain weight. Consult with a healthcare provider.",
		Advice: "• Eat protein-rich foods\n" +
			"• Eat 5-6 small meals daily\n" +
			"• Do strength training\n" +
			"• Consult a nutritionist",
		Color: "#3498db",
	}
	normalWeight = Category{
		Name:    "Normal weight",
		Message: "You have a healthy weight. Keep up the good work!",
		Advice: "• Maintain your current routine\n" +
			"• Continue regular exercise\n" +
			"• Eat a balanced diet\n" +
			"• Get 7-8 hours of sleep",
		Color: "#27ae60",
	}
	overweight = Category{
		Name:    "Overweight",
		Message: "You may need to lose some weight. Consider a balanced diet and exercise.",
		Advice: "• Reduce calorie intake\n" +
			"• Walk 30 minutes daily\n" +
			"• Avoid sugar and fried foods\n" +
			"• Drink 3-4 liters of water",
		Color: "#f39c12",
	}
	obese = Category{
		Name:    "Obese",
		Message: "Your health may be at risk. Please consult with a healthcare provider.",
		Advice: "• Consult a doctor immediately\n" +
			"• Follow a proper diet plan\n" +
			"• Get regular medical checkups\n" +
			"• Make lifestyle changes",
		Color: "#e74c3c",
	}
)

// Classify maps a (rounded) BMI onto its band.
func Classify(value float64) Category {
	switch {
	case value < 18.5:
		return underweight
	case value < 25:
		return normalWeight
	case value < 30:
		return overweight
	default:
		return obese
	}
}

// resolveUnit treats an empty unit as metric.
func resolveUnit(raw string) (bmi.Unit, error) {
	if strings.TrimSpace(raw) == "" {
		return bmi.Metric, nil
	}
	u, err := bmi.ParseUnit(raw)
	if err != nil {
		return "", ErrUnknownUnit
	}
	return u, nil
}

// toMetric converts imperial input to kilograms and meters.
func toMetric(weight, height float64, unit bmi.Unit) (float64, float64) {
	if unit == bmi.Imperial {
		return weight * poundsToKilograms, height * inchesToMeters
	}
	return weight, height
}

// roundHundredths rounds the float product v*100 half-up, the way
// Math.round(v*100)/100 does. At .xx5 boundaries the product is often just
// below the half, so 24.995 becomes 24.99. The explicit conversion keeps
// the product from being fused into a multiply-add.
func roundHundredths(v float64) float64 {
	return math.Floor(float64(v*100)+0.5) / 100
}

// Compute converts the input to metric, computes kg/m² rounded to two
// decimals, and classifies the rounded value.
func Compute(in bmi.MeasurementInput) CalculateResponse {
	kg, m := toMetric(in.Weight, in.Height, in.Unit)

	value := roundHundredths(kg / (m * m))

	cat := Classify(value)

	return CalculateResponse{
		BMI:           value,
		Category:      cat.Name,
		HealthMessage: cat.Message,
		HealthAdvice:  cat.Advice,
		Weight:        kg,
		Height:        m,
		ColorCode:     cat.Color,
	}
}

// validate returns the field errors for req, or nil when it is acceptable.
// Every offending field is reported; clients choose which one to show.
func validate(req CalculateRequest) (bmi.MeasurementInput, map[string]string) {
	errs := map[string]string{}

	switch {
	case req.Weight == nil:
		errs["weight"] = msgWeightRequired
	case *req.Weight <= 0:
		errs["weight"] = msgWeightPositive
	}

	switch {
	case req.Height == nil:
		errs["height"] = msgHeightRequired
	case *req.Height <= 0:
		errs["height"] = msgHeightPositive
	}

	unit, err := resolveUnit(req.Unit)
	if err != nil {
		errs["message"] = msgUnitInvalid
	}

	if len(errs) > 0 {
		return bmi.MeasurementInput{}, errs
	}

	return bmi.MeasurementInput{
		Weight: *req.Weight,
		Height: *req.Height,
		Unit:   unit,
	}, nil
}
