package narrative

import (
	"github.com/Yates-Labs/historian/internal/history"
	"github.com/cockroachdb/errors"
	"github.com/tmc/langchaingo/prompts"
)

var (
	ErrPromptRender = errors.New("prompt rendering failed")
)

// PromptFields are the named values substituted into the historian prompt.
type PromptFields struct {
	Event       string
	Year        string
	Description string
	KeyFigures  string
	Question    string
}

// BuildFields prepares the prompt values for a record and question. Missing
// record fields take the placeholders defined in package history. The
// question is embedded verbatim, without escaping.
func BuildFields(record history.Record, question string) PromptFields {
	return PromptFields{
		Event:       record.Title(),
		Year:        record.When(),
		Description: record.Summary(),
		KeyFigures:  record.Figures(),
		Question:    question,
	}
}

// Values returns the fields keyed by template variable name.
func (f PromptFields) Values() map[string]any {
	return map[string]any{
		"event":       f.Event,
		"year":        f.Year,
		"description": f.Description,
		"key_figures": f.KeyFigures,
		"question":    f.Question,
	}
}

const historianTemplate = `
You are a passionate historian sharing knowledge about:

📅 Event: {{.event}}
📆 Year: {{.year}}
📚 Description: {{.description}}
👥 Key Figures: {{.key_figures}}

Please address this question with historical insight and engaging details:
{{.question}}

Remember to:
- Highlight interesting connections to other historical events
- Share fascinating lesser-known facts
- Explain the historical significance
- Make the output short and concise
- Do not use markdown; write plain text that reads well in a terminal window
`

var historianPrompt = prompts.NewPromptTemplate(
	historianTemplate,
	[]string{"event", "year", "description", "key_figures", "question"},
)

// RenderPrompt renders the fixed historian template with fields.
func RenderPrompt(fields PromptFields) (string, error) {
	text, err := historianPrompt.Format(fields.Values())
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, ErrPromptRender.Error()), ErrPromptRender)
	}
	return text, nil
}

// AssemblePrompt builds and renders the prompt for a record and question.
func AssemblePrompt(record history.Record, question string) (string, error) {
	return RenderPrompt(BuildFields(record, question))
}
