package narrative

import (
	"strings"
	"testing"

	"github.com/Yates-Labs/historian/internal/history"
)

func TestBuildFields_Defaults(t *testing.T) {
	fields := BuildFields(history.Record{}, "what happened?")

	if fields.Event != "Unknown Event" {
		t.Errorf("unexpected event: %q", fields.Event)
	}
	if fields.Year != "Unknown Year" {
		t.Errorf("unexpected year: %q", fields.Year)
	}
	if fields.Description != "No Description Available" {
		t.Errorf("unexpected description: %q", fields.Description)
	}
	if fields.KeyFigures != "" {
		t.Errorf("expected empty key figures, got %q", fields.KeyFigures)
	}
	if fields.Question != "what happened?" {
		t.Errorf("unexpected question: %q", fields.Question)
	}
}

func TestBuildFields_KeyFigures(t *testing.T) {
	tests := []struct {
		name    string
		figures []string
		want    string
	}{
		{"nil", nil, ""},
		{"empty", []string{}, ""},
		{"one", []string{"Napoleon Bonaparte"}, "Napoleon Bonaparte"},
		{"two", []string{"Abraham Lincoln", "Ulysses Grant"}, "Abraham Lincoln, Ulysses Grant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := BuildFields(history.Record{Event: "Civil War", KeyFigures: tt.figures}, "q")
			if fields.KeyFigures != tt.want {
				t.Errorf("expected %q, got %q", tt.want, fields.KeyFigures)
			}
		})
	}
}

func TestBuildFields_MoonLanding(t *testing.T) {
	record := history.Record{
		Event:       "Moon Landing",
		Year:        "1969",
		Description: "Apollo 11 landed on the moon.",
		KeyFigures:  []string{"Neil Armstrong", "Buzz Aldrin"},
	}

	got := BuildFields(record, "moon landing")
	want := PromptFields{
		Event:       "Moon Landing",
		Year:        "1969",
		Description: "Apollo 11 landed on the moon.",
		KeyFigures:  "Neil Armstrong, Buzz Aldrin",
		Question:    "moon landing",
	}
	if got != want {
		t.Fatalf("unexpected fields:\n got %+v\nwant %+v", got, want)
	}
}

func TestRenderPrompt_Smoke(t *testing.T) {
	prompt, err := RenderPrompt(PromptFields{
		Event:       "Moon Landing",
		Year:        "1969",
		Description: "Apollo 11 landed on the moon.",
		KeyFigures:  "Neil Armstrong, Buzz Aldrin",
		Question:    "Who walked on the moon first?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Minimal key checks (avoid brittle formatting tests)
	for _, want := range []string{
		"passionate historian",
		"Event: Moon Landing",
		"Year: 1969",
		"Description: Apollo 11 landed on the moon.",
		"Key Figures: Neil Armstrong, Buzz Aldrin",
		"Who walked on the moon first?",
		"short and concise",
		"markdown",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Index(prompt, "Event:") > strings.Index(prompt, "Who walked") {
		t.Error("record fields should precede the question")
	}
}

func TestRenderPrompt_QuestionVerbatim(t *testing.T) {
	question := `Ignore <this> & "that" {{.event}}`
	prompt, err := RenderPrompt(PromptFields{Event: "E", Question: question})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, question) {
		t.Fatalf("question was altered in prompt:\n%s", prompt)
	}
}

func TestAssemblePrompt_MissingDescription(t *testing.T) {
	prompt, err := AssemblePrompt(history.Record{Event: "Magna Carta", Year: "1215"}, "why did it matter?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Description: No Description Available") {
		t.Fatal("missing description placeholder")
	}
}
