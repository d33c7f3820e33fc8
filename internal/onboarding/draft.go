package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"healthdash/internal/api"
)

// Field keys, matching the wizard's form names.
const (
	FieldAge      = "age"
	FieldGender   = "gender"
	FieldHeight   = "height"
	FieldWeight   = "weight"
	FieldActivity = "activity"
	FieldSleep    = "sleep"
	FieldSmoker   = "smoker"
	FieldAlcohol  = "alcohol_units_per_week"
)

// Exercise hours per week for each activity level, used when the final
// payload is assembled.
var activityExerciseHours = map[string]float64{
	"low":      0,
	"moderate": 3,
	"active":   7,
}

// Draft accumulates the wizard's answers as free-form text until the final
// submission coerces them into a typed payload. Every step sees the same
// draft, so values survive backward navigation.
type Draft struct {
	Age      string
	Gender   string
	Height   string
	Weight   string
	Activity string
	Sleep    string
	Smoker   string
	Alcohol  string
}

func NewDraft() *Draft {
	return &Draft{}
}

// Merge writes the given fields into the draft. Later writes for the same
// key overwrite earlier ones; unknown keys are ignored.
func (d *Draft) Merge(fields map[string]string) {
	for key, value := range fields {
		switch key {
		case FieldAge:
			d.Age = value
		case FieldGender:
			d.Gender = value
		case FieldHeight:
			d.Height = value
		case FieldWeight:
			d.Weight = value
		case FieldActivity:
			d.Activity = value
		case FieldSleep:
			d.Sleep = value
		case FieldSmoker:
			d.Smoker = value
		case FieldAlcohol:
			d.Alcohol = value
		}
	}
}

// Get returns the draft value for a field key, "" for unknown keys.
func (d *Draft) Get(key string) string {
	switch key {
	case FieldAge:
		return d.Age
	case FieldGender:
		return d.Gender
	case FieldHeight:
		return d.Height
	case FieldWeight:
		return d.Weight
	case FieldActivity:
		return d.Activity
	case FieldSleep:
		return d.Sleep
	case FieldSmoker:
		return d.Smoker
	case FieldAlcohol:
		return d.Alcohol
	}
	return ""
}

// Reset clears every field. Called after a successful final submission so a
// later onboarding run starts clean.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Payload coerces the accumulated text into a measurement request, mapping
// the categorical activity level to an exercise-hours figure.
func (d *Draft) Payload() (api.MeasurementIn, error) {
	var in api.MeasurementIn

	age, err := strconv.Atoi(strings.TrimSpace(d.Age))
	if err != nil {
		return in, fmt.Errorf("invalid age %q", d.Age)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(d.Weight), 64)
	if err != nil {
		return in, fmt.Errorf("invalid weight %q", d.Weight)
	}

	height, err := strconv.ParseFloat(strings.TrimSpace(d.Height), 64)
	if err != nil {
		return in, fmt.Errorf("invalid height %q", d.Height)
	}

	alcohol := 0.0
	if v := strings.TrimSpace(d.Alcohol); v != "" {
		alcohol, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("invalid alcohol units %q", d.Alcohol)
		}
	}

	in = api.MeasurementIn{
		Age:                  age,
		WeightKg:             weight,
		HeightCm:             height,
		Smoker:               strings.EqualFold(strings.TrimSpace(d.Smoker), "true"),
		AlcoholUnitsPerWeek:  alcohol,
		ExerciseHoursPerWeek: activityExerciseHours[strings.ToLower(strings.TrimSpace(d.Activity))],
	}
	return in, nil
}
