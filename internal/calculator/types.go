package calculator

import "bmi-calculator/internal/bmi"

// CalculateRequest is the JSON body for POST /api/bmi/calculate. Pointers
// distinguish an absent field from an explicit zero.
type CalculateRequest struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
	Unit   string   `json:"unit"`
}

// CalculateResponse is the success body for both calculate endpoints.
type CalculateResponse = bmi.CalculationResult

// HealthResponse is the body of GET /api/bmi/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Category is one BMI classification band and the text shown for it.
type Category struct {
	Name    string
	Message string
	Advice  string
	Color   string
}
