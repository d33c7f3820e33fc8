package onboarding

import "testing"

func TestMerge_StepsAccumulate(t *testing.T) {
	d := NewDraft()

	d.Merge(map[string]string{FieldAge: "45", FieldGender: "female"})
	d.Merge(map[string]string{FieldHeight: "170", FieldWeight: "75"})
	d.Merge(map[string]string{
		FieldActivity: "moderate",
		FieldSleep:    "7",
		FieldSmoker:   "false",
		FieldAlcohol:  "2",
	})

	if d.Age != "45" || d.Gender != "female" {
		t.Errorf("step 1 fields lost: age=%q gender=%q", d.Age, d.Gender)
	}
	if d.Height != "170" || d.Weight != "75" {
		t.Errorf("step 2 fields lost: height=%q weight=%q", d.Height, d.Weight)
	}
	if d.Activity != "moderate" || d.Sleep != "7" || d.Smoker != "false" || d.Alcohol != "2" {
		t.Errorf("step 3 fields lost: %+v", d)
	}
}

func TestMerge_LaterWritesWin(t *testing.T) {
	d := NewDraft()

	d.Merge(map[string]string{FieldAge: "45"})
	d.Merge(map[string]string{FieldAge: "46"})

	if d.Age != "46" {
		t.Errorf("expected most recent value '46', got %q", d.Age)
	}
}

func TestMerge_UnknownKeysIgnored(t *testing.T) {
	d := NewDraft()
	d.Merge(map[string]string{"favourite_color": "teal", FieldAge: "30"})

	if d.Age != "30" {
		t.Errorf("expected age merged, got %q", d.Age)
	}
	if d.Get("favourite_color") != "" {
		t.Error("expected unknown key to be dropped")
	}
}

func TestGet_MatchesFields(t *testing.T) {
	d := NewDraft()
	d.Merge(map[string]string{
		FieldAge:      "45",
		FieldGender:   "other",
		FieldHeight:   "170",
		FieldWeight:   "75",
		FieldActivity: "active",
		FieldSleep:    "8",
		FieldSmoker:   "true",
		FieldAlcohol:  "1",
	})

	for _, key := range []string{FieldAge, FieldGender, FieldHeight, FieldWeight, FieldActivity, FieldSleep, FieldSmoker, FieldAlcohol} {
		if d.Get(key) == "" {
			t.Errorf("expected value for key %q", key)
		}
	}
}

func TestPayload_CoercesAndMapsActivity(t *testing.T) {
	d := NewDraft()
	d.Merge(map[string]string{
		FieldAge:      "45",
		FieldGender:   "female",
		FieldHeight:   "170",
		FieldWeight:   "75.5",
		FieldActivity: "moderate",
		FieldSleep:    "7",
		FieldSmoker:   "false",
		FieldAlcohol:  "2",
	})

	in, err := d.Payload()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Age != 45 {
		t.Errorf("expected age 45, got %d", in.Age)
	}
	if in.WeightKg != 75.5 {
		t.Errorf("expected weight 75.5, got %v", in.WeightKg)
	}
	if in.HeightCm != 170 {
		t.Errorf("expected height 170, got %v", in.HeightCm)
	}
	if in.Smoker {
		t.Error("expected smoker false")
	}
	if in.AlcoholUnitsPerWeek != 2 {
		t.Errorf("expected alcohol 2, got %v", in.AlcoholUnitsPerWeek)
	}
	if in.ExerciseHoursPerWeek != 3 {
		t.Errorf("expected moderate activity to map to 3 hours, got %v", in.ExerciseHoursPerWeek)
	}
}

func TestPayload_ActivityLookup(t *testing.T) {
	tests := []struct {
		activity string
		want     float64
	}{
		{activity: "low", want: 0},
		{activity: "moderate", want: 3},
		{activity: "active", want: 7},
		{activity: "Active", want: 7},
		{activity: "unknown", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.activity, func(t *testing.T) {
			d := NewDraft()
			d.Merge(map[string]string{
				FieldAge:      "30",
				FieldHeight:   "180",
				FieldWeight:   "80",
				FieldActivity: tt.activity,
				FieldSmoker:   "true",
			})

			in, err := d.Payload()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in.ExerciseHoursPerWeek != tt.want {
				t.Errorf("expected %v hours for %q, got %v", tt.want, tt.activity, in.ExerciseHoursPerWeek)
			}
			if !in.Smoker {
				t.Error("expected smoker true")
			}
		})
	}
}

func TestPayload_EmptyAlcoholDefaultsToZero(t *testing.T) {
	d := NewDraft()
	d.Merge(map[string]string{
		FieldAge:    "30",
		FieldHeight: "180",
		FieldWeight: "80",
	})

	in, err := d.Payload()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.AlcoholUnitsPerWeek != 0 {
		t.Errorf("expected 0, got %v", in.AlcoholUnitsPerWeek)
	}
}

func TestPayload_RejectsUnparseableFields(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "bad age", fields: map[string]string{FieldAge: "forty", FieldHeight: "170", FieldWeight: "75"}},
		{name: "bad height", fields: map[string]string{FieldAge: "40", FieldHeight: "tall", FieldWeight: "75"}},
		{name: "bad weight", fields: map[string]string{FieldAge: "40", FieldHeight: "170", FieldWeight: "heavy"}},
		{name: "bad alcohol", fields: map[string]string{FieldAge: "40", FieldHeight: "170", FieldWeight: "75", FieldAlcohol: "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			d.Merge(tt.fields)
			if _, err := d.Payload(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReset_ClearsEveryField(t *testing.T) {
	d := NewDraft()
	d.Merge(map[string]string{
		FieldAge:      "45",
		FieldGender:   "male",
		FieldHeight:   "170",
		FieldWeight:   "75",
		FieldActivity: "low",
		FieldSleep:    "6",
		FieldSmoker:   "true",
		FieldAlcohol:  "10",
	})

	d.Reset()

	if *d != (Draft{}) {
		t.Errorf("expected empty draft after reset, got %+v", d)
	}
}
