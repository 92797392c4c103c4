package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-health-assistant/internal/domain"
	"github.com/tbourn/go-health-assistant/internal/services"
)

// AnalysisRequest is the self-report submitted for analysis.
type AnalysisRequest struct {
	Name        string   `json:"name" example:"Ada"`
	Age         int      `json:"age" example:"36"`
	Gender      string   `json:"gender" enums:"male,female,other" example:"female"`
	Symptoms    []string `json:"symptoms" example:"Fever,Headache"`
	Description string   `json:"description" example:"Started after a long flight"`
	Severity    string   `json:"severity" enums:"mild,moderate,severe" example:"moderate"`
	Duration    string   `json:"duration" enums:"less-than-1-day,1-3-days,4-7-days,1-2-weeks,2-4-weeks,more-than-1-month" example:"1-3-days"`
}

// AnalysisResponse pairs the stored intake with its suggestions.
type AnalysisResponse struct {
	Intake      domain.HealthIntake `json:"intake"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// CreateAnalysis godoc
// @ID          createAnalysis
// @Summary     Analyze a health self-report
// @Description Validates the intake and returns one to three possible explanations.
// @Description When the model is unavailable the suggestions come from built-in symptom rules.
// @Tags        Analyses
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.AnalysisRequest  true  "Health intake"
// @Success     200   {object}  handlers.AnalysisResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid intake"
// @Router      /api/v1/analyses [post]
func (h *Handlers) CreateAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidJSON)
		return
	}

	in, err := domain.NewHealthIntake(req.Name, req.Age, domain.Gender(req.Gender), req.Symptoms,
		req.Description, domain.Severity(req.Severity), req.Duration, h.now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIntake) {
			fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, AnalysisResponse{
		Intake:      in,
		Suggestions: h.analyzer.Analyze(c.Request.Context(), in),
	})
}

// IntakeOptionsResponse lists the choices offered by the intake form and the
// chat starter prompts.
type IntakeOptionsResponse struct {
	Symptoms       []string `json:"symptoms" example:"Fever,Headache"`
	Durations      []string `json:"durations" example:"less-than-1-day,1-3-days"`
	Genders        []string `json:"genders" example:"male,female,other"`
	Severities     []string `json:"severities" example:"mild,moderate,severe"`
	QuickQuestions []string `json:"quick_questions" example:"When should I see a doctor?"`
}

// GetIntakeOptions godoc
// @ID          getIntakeOptions
// @Summary     List intake form choices
// @Description Common symptoms, duration buckets and the quick questions offered before the first chat message.
// @Tags        Analyses
// @Produce     json
// @Success     200  {object}  handlers.IntakeOptionsResponse
// @Router      /api/v1/intake-options [get]
func (h *Handlers) GetIntakeOptions(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	ok(c, http.StatusOK, IntakeOptionsResponse{
		Symptoms:  domain.CommonSymptoms,
		Durations: domain.DurationBuckets,
		Genders: []string{
			string(domain.GenderMale), string(domain.GenderFemale), string(domain.GenderOther),
		},
		Severities: []string{
			string(domain.SeverityMild), string(domain.SeverityModerate), string(domain.SeveritySevere),
		},
		QuickQuestions: services.QuickQuestions,
	})
}
