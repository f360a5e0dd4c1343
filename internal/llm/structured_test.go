package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type answer struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

var answerSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required": []string{"title", "tags"},
}

func TestGenerateJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply []string
	}{
		{"plain json", []string{`{"title":"Go",`, `"tags":["a","b"]}`}},
		{"fenced json", []string{"```json\n{\"title\":\"Go\",\"tags\":[\"a\",\"b\"]}\n```"}},
		{"bare fence", []string{"```\n{\"title\":\"Go\",\"tags\":[\"a\",\"b\"]}```"}},
	}
	want := answer{Title: "Go", Tags: []string{"a", "b"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMockProvider("test").AddChunks(tt.reply...)
			var got answer
			err := GenerateJSON(context.Background(), p, Request{
				Messages:       []Message{UserText("q")},
				ResponseSchema: answerSchema,
			}, &got)
			if err != nil {
				t.Fatalf("GenerateJSON: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateJSONInvalid(t *testing.T) {
	for _, reply := range []string{"", "not json", "{\"title\": "} {
		p := NewMockProvider("test").AddTextResponse(reply)
		var got answer
		err := GenerateJSON(context.Background(), p, Request{
			Messages:       []Message{UserText("q")},
			ResponseSchema: answerSchema,
		}, &got)
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("reply %q: err = %v, want ErrInvalidResponse", reply, err)
		}
	}
}

func TestGenerateJSONRequiresSchema(t *testing.T) {
	p := NewMockProvider("test")
	if err := GenerateJSON(context.Background(), p, Request{}, &answer{}); err == nil {
		t.Fatal("expected error without schema")
	}
	if len(p.Requests()) != 0 {
		t.Error("provider should not be called without a schema")
	}
}
