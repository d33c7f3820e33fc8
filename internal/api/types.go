package api

// MeasurementIn is the payload for a prediction request. Field names match
// the wire format expected by the prediction service.
type MeasurementIn struct {
	Age                  int     `json:"age"`
	WeightKg             float64 `json:"weight_kg"`
	HeightCm             float64 `json:"height_cm"`
	Smoker               bool    `json:"smoker"`
	AlcoholUnitsPerWeek  float64 `json:"alcohol_units_per_week"`
	ExerciseHoursPerWeek float64 `json:"exercise_hours_per_week"`
}

// MeasurementOut is a server-computed risk assessment. Immutable once
// created; the client only holds read-only copies for the current view.
// CreatedAt stays a string because the service emits bare ISO timestamps
// without a zone suffix.
type MeasurementOut struct {
	ID        int64    `json:"id"`
	UserID    *int64   `json:"user_id,omitempty"`
	Age       int      `json:"age"`
	BMI       *float64 `json:"bmi,omitempty"`
	RiskScore float64  `json:"risk_score"`
	CreatedAt string   `json:"created_at"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
