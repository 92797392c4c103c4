// Package domain defines the core types of the health assistant: the intake
// record a user submits for analysis, the suggestions produced from it, the
// conversational turns of the assistant chat, and the persisted chat log.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Gender is the self-reported gender of an intake.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Severity is the self-reported severity of the symptoms.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Level is the three-step scale shared by suggestion likelihood and urgency.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is low, medium or high.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// ParseLevel normalizes case and surrounding whitespace before validating.
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

// DurationBuckets lists the accepted duration labels, shortest first.
// An intake may also leave the duration empty.
var DurationBuckets = []string{
	"less-than-1-day",
	"1-3-days",
	"4-7-days",
	"1-2-weeks",
	"2-4-weeks",
	"more-than-1-month",
}

// ValidDuration reports whether d is empty or one of DurationBuckets.
func ValidDuration(d string) bool {
	if d == "" {
		return true
	}
	for _, b := range DurationBuckets {
		if d == b {
			return true
		}
	}
	return false
}

// CommonSymptoms is the checklist offered to users; free-text symptoms are
// accepted as well.
var CommonSymptoms = []string{
	"Fever", "Headache", "Cough", "Sore throat", "Fatigue", "Nausea",
	"Dizziness", "Chest pain", "Stomach pain", "Muscle aches", "Runny nose",
	"Difficulty breathing", "Loss of appetite", "Insomnia", "Skin rash",
}

// ErrInvalidIntake is wrapped by every HealthIntake validation failure.
var ErrInvalidIntake = errors.New("invalid health intake")

// HealthIntake is one self-report submitted for analysis. It is created once
// and not modified afterwards.
type HealthIntake struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      Gender    `json:"gender"`
	Symptoms    []string  `json:"symptoms"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Duration    string    `json:"duration"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewHealthIntake builds a validated intake with a fresh id and timestamp.
// Symptoms are normalized with NormalizeSymptoms first.
func NewHealthIntake(name string, age int, gender Gender, symptoms []string, description string, severity Severity, duration string, now time.Time) (HealthIntake, error) {
	in := HealthIntake{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Age:         age,
		Gender:      gender,
		Symptoms:    NormalizeSymptoms(symptoms),
		Description: strings.TrimSpace(description),
		Severity:    severity,
		Duration:    strings.TrimSpace(duration),
		Timestamp:   now.UTC(),
	}
	if err := in.Validate(); err != nil {
		return HealthIntake{}, err
	}
	return in, nil
}

// Validate checks the presence and enum constraints of the intake.
func (h HealthIntake) Validate() error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidIntake)
	case h.Age <= 0:
		return fmt.Errorf("%w: age must be a positive integer", ErrInvalidIntake)
	case !h.Gender.Valid():
		return fmt.Errorf("%w: gender must be one of male, female, other", ErrInvalidIntake)
	case len(h.Symptoms) == 0:
		return fmt.Errorf("%w: at least one symptom is required", ErrInvalidIntake)
	case !h.Severity.Valid():
		return fmt.Errorf("%w: severity must be one of mild, moderate, severe", ErrInvalidIntake)
	case !ValidDuration(h.Duration):
		return fmt.Errorf("%w: duration must be empty or one of %s", ErrInvalidIntake, strings.Join(DurationBuckets, ", "))
	}
	return nil
}

// NormalizeSymptoms trims labels, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling and the original order.
func NormalizeSymptoms(in []string) []string {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		key := fold.String(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Suggestion is one possible explanation returned by an analysis.
type Suggestion struct {
	Condition       string   `json:"condition"`
	Likelihood      Level    `json:"likelihood"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Urgency         Level    `json:"urgency"`
}

// Validate enforces the suggestion shape: a condition label, enum levels and
// at least one recommendation.
func (s Suggestion) Validate() error {
	switch {
	case strings.TrimSpace(s.Condition) == "":
		return errors.New("condition is required")
	case !s.Likelihood.Valid():
		return fmt.Errorf("likelihood %q is not low, medium or high", s.Likelihood)
	case !s.Urgency.Valid():
		return fmt.Errorf("urgency %q is not low, medium or high", s.Urgency)
	case len(s.Recommendations) == 0:
		return errors.New("recommendations must not be empty")
	}
	return nil
}
