package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements Provider using the Google Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string {
	return fmt.Sprintf("Gemini (%s)", p.model)
}

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: p.apiKey, Backend: genai.BackendGeminiAPI})
}

func (p *GeminiProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	if p.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	system, contents := buildGeminiContents(req.Messages)
	if len(contents) == 0 {
		return nil, fmt.Errorf("no user content provided")
	}
	config := buildGeminiConfig(system, req)
	model := chooseModel(req.Model, p.model)

	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		client, err := p.newClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create gemini client: %w", err)
		}

		var lastResp *genai.GenerateContentResponse
		for resp, err := range client.Models.GenerateContentStream(ctx, model, contents, config) {
			if err != nil {
				return fmt.Errorf("gemini streaming error: %w", err)
			}
			lastResp = resp
			if text := resp.Text(); text != "" {
				if err := send(ctx, events, Event{Type: EventTextDelta, Text: text}); err != nil {
					return err
				}
			}
		}

		if use := geminiUsage(lastResp); use != nil {
			if err := send(ctx, events, Event{Type: EventUsage, Use: use}); err != nil {
				return err
			}
		}
		return send(ctx, events, Event{Type: EventDone})
	}), nil
}

func buildGeminiConfig(system string, req Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	if req.ResponseSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schemaToGenai(req.ResponseSchema)
	}
	return config
}

func geminiUsage(resp *genai.GenerateContentResponse) *Usage {
	if resp == nil || resp.UsageMetadata == nil || resp.UsageMetadata.TotalTokenCount == 0 {
		return nil
	}
	return &Usage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
	}
}

func buildGeminiContents(messages []Message) (string, []*genai.Content) {
	var systemParts []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			if text := msg.Text(); text != "" {
				systemParts = append(systemParts, text)
			}
		case RoleUser:
			if content := buildGeminiContent(genai.RoleUser, msg.Parts); content != nil {
				contents = append(contents, content)
			}
		case RoleAssistant:
			if content := buildGeminiContent(genai.RoleModel, msg.Parts); content != nil {
				contents = append(contents, content)
			}
		}
	}

	return strings.Join(systemParts, "\n\n"), contents
}

func buildGeminiContent(role string, parts []Part) *genai.Content {
	content := &genai.Content{Role: role}
	for _, part := range parts {
		if part.Text != "" {
			content.Parts = append(content.Parts, &genai.Part{Text: part.Text})
		}
	}
	if len(content.Parts) == 0 {
		return nil
	}
	return content
}

func chooseModel(requested, fallback string) string {
	if requested != "" {
		return requested
	}
	return fallback
}
