package services

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

// Rule tables are evaluated in order. For categories the first match wins;
// for symptom families every match contributes one suggestion.

type categoryRule struct {
	keywords []string
	category domain.Category
}

var categoryRules = []categoryRule{
	{keywords: []string{"emergency", "immediately", "urgent"}, category: domain.CategoryWarning},
	{keywords: []string{"suggest", "recommend", "try"}, category: domain.CategorySuggestion},
}

// Classify returns the display category of an assistant reply.
func Classify(text string) domain.Category {
	folded := cases.Fold().String(text)
	for _, r := range categoryRules {
		if containsAny(folded, r.keywords) {
			return r.category
		}
	}
	return domain.CategoryText
}

type symptomRule struct {
	keywords []string
	build    func(severity domain.Severity) domain.Suggestion
}

// urgencyFor is medium for severe intakes and low otherwise.
func urgencyFor(s domain.Severity) domain.Level {
	if s == domain.SeveritySevere {
		return domain.LevelMedium
	}
	return domain.LevelLow
}

var symptomRules = []symptomRule{
	{
		keywords: []string{"fever", "temperature"},
		build: func(s domain.Severity) domain.Suggestion {
			return domain.Suggestion{
				Condition:   "Possible Viral Infection",
				Likelihood:  domain.LevelMedium,
				Description: "Fever often indicates your body is fighting an infection, commonly viral in nature.",
				Recommendations: []string{
					"Get plenty of rest",
					"Stay well hydrated",
					"Monitor your temperature regularly",
					"Consider over-the-counter fever reducers if needed",
					"Consult a healthcare provider if fever persists or worsens",
				},
				Urgency: urgencyFor(s),
			}
		},
	},
	{
		keywords: []string{"chest", "breathing", "breath"},
		build: func(domain.Severity) domain.Suggestion {
			return domain.Suggestion{
				Condition:   "Respiratory Concern",
				Likelihood:  domain.LevelHigh,
				Description: "Chest or breathing symptoms require careful attention and monitoring.",
				Recommendations: []string{
					"Seek immediate medical attention if breathing becomes severely difficult",
					"Rest in an upright position",
					"Avoid strenuous activities",
					"Monitor symptoms closely",
					"Contact a healthcare provider promptly",
				},
				Urgency: domain.LevelHigh,
			}
		},
	},
	{
		keywords: []string{"headache", "head"},
		build: func(s domain.Severity) domain.Suggestion {
			return domain.Suggestion{
				Condition:   "Headache",
				Likelihood:  domain.LevelMedium,
				Description: "Headaches can result from various causes including stress, dehydration, or tension.",
				Recommendations: []string{
					"Rest in a quiet, dark environment",
					"Apply a cold or warm compress",
					"Stay hydrated",
					"Consider over-the-counter pain relief",
					"Consult a doctor if headaches are severe or persistent",
				},
				Urgency: urgencyFor(s),
			}
		},
	},
}

func genericConcern(s domain.Severity) domain.Suggestion {
	return domain.Suggestion{
		Condition:   "General Health Concern",
		Likelihood:  domain.LevelLow,
		Description: "Your symptoms have been noted. General self-care and monitoring are recommended.",
		Recommendations: []string{
			"Get adequate rest and sleep",
			"Maintain proper hydration",
			"Monitor your symptoms for changes",
			"Consider consulting a healthcare provider if symptoms persist",
			"Seek immediate care if symptoms worsen significantly",
		},
		Urgency: urgencyFor(s),
	}
}

// parseFallback wraps undecodable model text as a single suggestion.
func parseFallback(raw string) domain.Suggestion {
	return domain.Suggestion{
		Condition:   "General Health Assessment",
		Likelihood:  domain.LevelMedium,
		Description: raw,
		Recommendations: []string{
			"Monitor your symptoms closely",
			"Stay hydrated and get adequate rest",
			"Consult a healthcare provider if symptoms persist or worsen",
			"Seek immediate medical attention if you experience severe symptoms",
		},
		Urgency: domain.LevelLow,
	}
}

// RuleBasedSuggestions scans the intake symptoms against the keyword
// families. Families are emitted in table order, each at most once; the
// generic concern is returned only when nothing matched.
func RuleBasedSuggestions(in domain.HealthIntake) []domain.Suggestion {
	fold := cases.Fold()
	folded := make([]string, len(in.Symptoms))
	for i, s := range in.Symptoms {
		folded[i] = fold.String(s)
	}

	out := make([]domain.Suggestion, 0, len(symptomRules))
	for _, r := range symptomRules {
		for _, s := range folded {
			if containsAny(s, r.keywords) {
				out = append(out, r.build(in.Severity))
				break
			}
		}
	}
	if len(out) == 0 {
		out = append(out, genericConcern(in.Severity))
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
