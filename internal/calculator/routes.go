package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the BMI endpoints onto the given router under the
// /api/bmi prefix.
func RegisterRoutes(r chi.Router) {
	r.Route("/api/bmi", func(r chi.Router) {
		r.Post("/calculate", Calculate)
		r.Get("/calculate", CalculateQuery)
		r.Get("/health", Health)
	})
}
