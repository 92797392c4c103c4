package services

import (
	"fmt"
	"strings"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

const personaPrompt = `You are a helpful AI health assistant. Your role is to:

1. Provide general health information and guidance
2. Help users understand their symptoms
3. Suggest when to seek professional medical care
4. ALWAYS emphasize that you are not a substitute for professional medical advice
5. Be empathetic and supportive
6. Ask clarifying questions when needed
7. Provide practical self-care suggestions when appropriate

IMPORTANT DISCLAIMERS:
- You are not a doctor and cannot provide medical diagnoses
- Always recommend consulting healthcare professionals for serious concerns
- In emergencies, direct users to call emergency services immediately
- Your responses are for informational purposes only

Keep responses concise, helpful, and easy to understand. Use a caring but professional tone.`

const chatReminders = `Remember to:
- Be helpful and empathetic
- Provide practical advice when appropriate
- Always emphasize the importance of professional medical care
- Ask clarifying questions if needed
- Keep responses concise and easy to understand`

// analysisPrompt embeds every intake field and asks for a JSON array of
// suggestion objects.
func analysisPrompt(in domain.HealthIntake) string {
	duration := in.Duration
	if duration == "" {
		duration = "not specified"
	}
	var b strings.Builder
	b.WriteString("Analyze the following health information and provide 1-3 possible conditions or explanations:\n\n")
	b.WriteString("Patient Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", in.Name)
	fmt.Fprintf(&b, "- Age: %d\n", in.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", in.Gender)
	fmt.Fprintf(&b, "- Symptoms: %s\n", strings.Join(in.Symptoms, ", "))
	fmt.Fprintf(&b, "- Severity: %s\n", in.Severity)
	fmt.Fprintf(&b, "- Duration: %s\n", duration)
	fmt.Fprintf(&b, "- Description: %s\n\n", in.Description)
	b.WriteString(`Respond with only a JSON array of suggestions. Each suggestion must have:
- condition: string (name of possible condition)
- likelihood: "low" | "medium" | "high"
- description: string (explanation of the condition)
- recommendations: string[] (array of practical recommendations)
- urgency: "low" | "medium" | "high" (how urgent medical attention is needed)

Focus on common conditions and always emphasize the need for professional medical evaluation when appropriate.`)
	return b.String()
}

// chatPrompt combines the persona, the rendered context window and the
// latest message.
func chatPrompt(context, message string) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\nPrevious conversation:\n")
	b.WriteString(context)
	fmt.Fprintf(&b, "\n\nPlease respond to the user's latest message: \"%s\"\n\n", message)
	b.WriteString(chatReminders)
	return b.String()
}

// renderTurns formats turns as "sender: text" lines.
func renderTurns(turns []domain.ChatTurn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = string(t.Sender) + ": " + t.Text
	}
	return strings.Join(lines, "\n")
}
