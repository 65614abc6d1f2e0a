package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiConfig_SamplingPassthrough(t *testing.T) {
	config := buildGeminiConfig(Request{
		MaxTokens:   500,
		Temperature: 0.2,
		TopP:        0.8,
	})

	if config.MaxOutputTokens != 500 {
		t.Fatalf("expected max tokens 500, got %d", config.MaxOutputTokens)
	}
	if config.TopP == nil || *config.TopP < 0.79 || *config.TopP > 0.81 {
		t.Fatalf("expected top_p 0.8, got %v", config.TopP)
	}
	if config.Temperature == nil || *config.Temperature < 0.19 || *config.Temperature > 0.21 {
		t.Fatalf("expected temperature 0.2, got %v", config.Temperature)
	}
}

func TestBuildGeminiConfig_ZeroTopPOmitted(t *testing.T) {
	config := buildGeminiConfig(Request{MaxTokens: 500})

	if config.TopP != nil {
		t.Fatalf("expected top_p unset, got %v", *config.TopP)
	}
	if config.Temperature != nil {
		t.Fatalf("expected temperature unset, got %v", *config.Temperature)
	}
}

func TestBuildGeminiConfig_AnswerSchema(t *testing.T) {
	config := buildGeminiConfig(Request{
		MaxTokens: 500,
		Schema: &Schema{
			Name: "quiz-answer",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"answer": map[string]any{"type": "string", "enum": []any{"Paris", "London", "Berlin"}},
				},
				"required": []any{"answer"},
			},
		},
	})

	if config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected JSON response MIME type, got %q", config.ResponseMIMEType)
	}
	if config.ResponseSchema == nil {
		t.Fatal("expected response schema")
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string", "enum": []any{"Paris", "London", "Berlin"}},
		},
		"required": []any{"answer"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	answer := schema.Properties["answer"]
	if answer == nil || answer.Type != "STRING" {
		t.Fatalf("expected STRING answer property, got %+v", answer)
	}
	if len(answer.Enum) != 3 {
		t.Fatalf("expected 3 enum options, got %d", len(answer.Enum))
	}
	if len(schema.Required) != 1 || schema.Required[0] != "answer" {
		t.Fatalf("expected answer to be required, got %v", schema.Required)
	}
}
