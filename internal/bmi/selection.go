package bmi

// Selection is the current unit choice of a form. It is a value: Toggle
// returns a new Selection and never mutates the receiver.
type Selection struct {
	unit Unit
}

// NewSelection returns a selection for u, falling back to Metric when u is
// not a known unit.
func NewSelection(u Unit) Selection {
	if !u.Valid() {
		u = Metric
	}
	return Selection{unit: u}
}

// Unit returns the selected unit. The zero Selection is Metric.
func (s Selection) Unit() Unit {
	if s.unit == "" {
		return Metric
	}
	return s.unit
}

// Toggle returns a selection of u. Unknown units select Metric.
func (s Selection) Toggle(u Unit) Selection {
	return NewSelection(u)
}

// Hints are the placeholders and unit labels shown next to the inputs.
type Hints struct {
	WeightPlaceholder string
	HeightPlaceholder string
	WeightHint        string
	HeightHint        string
}

// Hints returns the input hints for the selected unit.
func (s Selection) Hints() Hints {
	if s.Unit() == Imperial {
		return Hints{
			WeightPlaceholder: "e.g., 154",
			HeightPlaceholder: "e.g., 68",
			WeightHint:        "in pounds (lbs)",
			HeightHint:        "in inches (in)",
		}
	}
	return Hints{
		WeightPlaceholder: "e.g., 70",
		HeightPlaceholder: "e.g., 1.75",
		WeightHint:        "in kilograms (kg)",
		HeightHint:        "in meters (m)",
	}
}
