package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func validIntake() HealthIntake {
	return HealthIntake{
		ID:       "id",
		Name:     "Ada",
		Age:      36,
		Gender:   GenderFemale,
		Symptoms: []string{"Fever"},
		Severity: SeverityMild,
		Duration: "1-3-days",
	}
}

func TestHealthIntake_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*HealthIntake)
		field  string
	}{
		{"ok", func(*HealthIntake) {}, ""},
		{"empty duration ok", func(h *HealthIntake) { h.Duration = "" }, ""},
		{"blank name", func(h *HealthIntake) { h.Name = "  " }, "name"},
		{"zero age", func(h *HealthIntake) { h.Age = 0 }, "age"},
		{"negative age", func(h *HealthIntake) { h.Age = -3 }, "age"},
		{"bad gender", func(h *HealthIntake) { h.Gender = "robot" }, "gender"},
		{"no symptoms", func(h *HealthIntake) { h.Symptoms = nil }, "symptom"},
		{"bad severity", func(h *HealthIntake) { h.Severity = "extreme" }, "severity"},
		{"bad duration", func(h *HealthIntake) { h.Duration = "forever" }, "duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validIntake()
			tc.mutate(&in)
			err := in.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidIntake) {
				t.Fatalf("want ErrInvalidIntake, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("error %q should mention %q", err, tc.field)
			}
		})
	}
}

func TestNewHealthIntake_NormalizesAndStamps(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	in, err := NewHealthIntake("  Bob ", 40, GenderMale, []string{" Fever", "fever", "", "Chest  pain"}, " hot ", SeveritySevere, "", now)
	if err != nil {
		t.Fatalf("NewHealthIntake: %v", err)
	}
	if in.ID == "" {
		t.Fatalf("expected generated id")
	}
	if in.Name != "Bob" || in.Description != "hot" {
		t.Fatalf("fields not trimmed: %+v", in)
	}
	if want := []string{"Fever", "Chest pain"}; !reflect.DeepEqual(in.Symptoms, want) {
		t.Fatalf("symptoms = %v; want %v", in.Symptoms, want)
	}
	if !in.Timestamp.Equal(now) || in.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v; want %v in UTC", in.Timestamp, now)
	}

	if _, err := NewHealthIntake("Bob", 40, GenderMale, []string{"  "}, "", SeverityMild, "", now); !errors.Is(err, ErrInvalidIntake) {
		t.Fatalf("blank-only symptoms should fail validation, got %v", err)
	}
}

func TestNormalizeSymptoms_CaseFoldDedup(t *testing.T) {
	got := NormalizeSymptoms([]string{"Headache", "HEADACHE", "headache ", "Straße", "STRASSE", "Cough"})
	want := []string{"Headache", "Straße", "Cough"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeSymptoms = %v; want %v", got, want)
	}
	if out := NormalizeSymptoms(nil); len(out) != 0 {
		t.Fatalf("nil input should give empty slice, got %v", out)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{" High ": LevelHigh, "medium": LevelMedium, "LOW": LevelLow} {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %q,%v; want %q,true", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("critical"); ok {
		t.Errorf("ParseLevel(critical) should be invalid")
	}
}

func TestSuggestion_Validate(t *testing.T) {
	ok := Suggestion{Condition: "Cold", Likelihood: LevelLow, Description: "d", Recommendations: []string{"rest"}, Urgency: LevelLow}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid suggestion rejected: %v", err)
	}

	bad := []Suggestion{
		{Likelihood: LevelLow, Recommendations: []string{"x"}, Urgency: LevelLow},
		{Condition: "c", Likelihood: "likely", Recommendations: []string{"x"}, Urgency: LevelLow},
		{Condition: "c", Likelihood: LevelLow, Recommendations: []string{"x"}, Urgency: "soon"},
		{Condition: "c", Likelihood: LevelLow, Urgency: LevelLow},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, s)
		}
	}
}
