package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

var (
	// ErrNoAPIKey means no generator key is configured; the user has to
	// set one before any AI feature works.
	ErrNoAPIKey = errors.New("GEMINI_API_KEY is not set")
	// ErrMalformed means the generator answered with something that is
	// not the requested JSON shape. Callers discard the result and treat
	// the operation as a soft failure.
	ErrMalformed = errors.New("malformed generator response")
)

// ExtractJSON strips markdown code fences and surrounding prose from a
// generator reply, returning the innermost JSON object or array text.
// Models regularly wrap JSON in ```json fences or a lead-in sentence
// even when told not to.
func ExtractJSON(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	firstBrace := strings.Index(cleaned, "{")
	lastBrace := strings.LastIndex(cleaned, "}")
	firstBracket := strings.Index(cleaned, "[")
	lastBracket := strings.LastIndex(cleaned, "]")

	if firstBrace != -1 && lastBrace > firstBrace && (firstBracket == -1 || firstBrace < firstBracket) {
		return cleaned[firstBrace : lastBrace+1]
	}
	if firstBracket != -1 && lastBracket > firstBracket {
		return cleaned[firstBracket : lastBracket+1]
	}
	return strings.TrimSpace(cleaned)
}

// DecodeQuestion parses and validates a quiz question reply
func DecodeQuestion(text string) (*models.Question, error) {
	var q models.Question
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if q.Text == "" || len(q.Options) != 4 {
		return nil, fmt.Errorf("%w: question missing text or options", ErrMalformed)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return nil, fmt.Errorf("%w: correctAnswer out of range", ErrMalformed)
	}
	return &q, nil
}

// DecodePlan parses and validates a study plan reply. Completed flags are
// forced to false regardless of what the model produced.
func DecodePlan(text string) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if plan.Subject == "" || len(plan.Weeks) == 0 {
		return nil, fmt.Errorf("%w: plan missing subject or weeks", ErrMalformed)
	}
	for w := range plan.Weeks {
		for d := range plan.Weeks[w].Days {
			for t := range plan.Weeks[w].Days[d].Tasks {
				task := &plan.Weeks[w].Days[d].Tasks[t]
				if task.ID == "" || task.Description == "" {
					return nil, fmt.Errorf("%w: task missing id or description", ErrMalformed)
				}
				task.Completed = false
				task.QuizTaken = nil
			}
		}
	}
	return &plan, nil
}

// DecodeResources parses a resource list reply, dropping entries that
// fail validation. An empty result after filtering is malformed.
func DecodeResources(text string) ([]models.Resource, error) {
	var raw []models.Resource
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	resources := make([]models.Resource, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" || r.Title == "" || r.URL == "" {
			continue
		}
		switch r.Type {
		case "video", "article", "exercise":
		default:
			continue
		}
		if r.Authority != "High" && r.Authority != "Medium" {
			r.Authority = "Medium"
		}
		resources = append(resources, r)
	}
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: no valid resources", ErrMalformed)
	}
	return resources, nil
}
