package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestBuildGeminiContents(t *testing.T) {
	system, contents := buildGeminiContents([]Message{
		SystemText("You are a tutor."),
		UserText("What is a goroutine?"),
		AssistantText("A lightweight thread."),
		UserText(""),
		UserText("And a channel?"),
	})
	if system != "You are a tutor." {
		t.Errorf("system = %q", system)
	}
	var roles []string
	for _, c := range contents {
		roles = append(roles, c.Role)
	}
	want := []string{genai.RoleUser, genai.RoleModel, genai.RoleUser}
	if diff := cmp.Diff(want, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig("sys", Request{
		Temperature:     Temperature(0.3),
		MaxOutputTokens: 512,
		ResponseSchema:  answerSchema,
	})
	if cfg.Temperature == nil || *cfg.Temperature != 0.3 {
		t.Errorf("temperature = %v", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != 512 {
		t.Errorf("max output tokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.ResponseMIMEType != "application/json" {
		t.Errorf("mime type = %q", cfg.ResponseMIMEType)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system instruction = %+v", cfg.SystemInstruction)
	}

	plain := buildGeminiConfig("", Request{})
	if plain.ResponseSchema != nil || plain.ResponseMIMEType != "" || plain.SystemInstruction != nil {
		t.Errorf("plain config should not request JSON: %+v", plain)
	}
}

func TestSchemaToGenai(t *testing.T) {
	got := schemaToGenai(map[string]any{
		"type":        "object",
		"description": "a node",
		"properties": map[string]any{
			"kind": map[string]any{"type": "string", "enum": []any{"core", "tool"}},
			"kids": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		},
		"required":         []any{"kind"},
		"propertyOrdering": []string{"kind", "kids"},
	})
	if got.Type != genai.TypeObject || got.Description != "a node" {
		t.Errorf("top level = %+v", got)
	}
	if diff := cmp.Diff([]string{"core", "tool"}, got.Properties["kind"].Enum); diff != "" {
		t.Errorf("enum mismatch:\n%s", diff)
	}
	if got.Properties["kids"].Items.Type != genai.TypeInteger {
		t.Errorf("items type = %v", got.Properties["kids"].Items.Type)
	}
	if diff := cmp.Diff([]string{"kind"}, got.Required); diff != "" {
		t.Errorf("required mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"kind", "kids"}, got.PropertyOrdering); diff != "" {
		t.Errorf("ordering mismatch:\n%s", diff)
	}
	if schemaToGenai(nil).Type != genai.TypeString {
		t.Error("nil schema should map to string")
	}
}

func TestGeminiProviderRequiresKey(t *testing.T) {
	p := NewGeminiProvider("", "")
	if p.Name() != "Gemini (gemini-2.5-flash)" {
		t.Errorf("Name() = %q", p.Name())
	}
	_, err := p.Stream(context.Background(), Request{Messages: []Message{UserText("hi")}})
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}
