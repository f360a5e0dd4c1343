package roadmap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skillpath/skillpath/internal/llm"
	"go.uber.org/zap"
)

const DefaultTemperature = 0.3

// Generator asks the model for a roadmap on an arbitrary topic.
type Generator struct {
	provider    llm.Provider
	model       string
	temperature float32
	logger      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

func WithModel(model string) Option { return func(g *Generator) { g.model = model } }

func WithTemperature(t float32) Option { return func(g *Generator) { g.temperature = t } }

func WithLogger(l *zap.Logger) Option { return func(g *Generator) { g.logger = l } }

func NewGenerator(p llm.Provider, opts ...Option) *Generator {
	g := &Generator{provider: p, temperature: DefaultTemperature, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildPrompt renders the roadmap prompt for a topic.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(`Create a detailed, structured learning roadmap for the topic: %q.
The response must be a single, valid JSON object that strictly adheres to the provided schema.
Do not include any markdown formatting like `+"```json"+`.

The roadmap should have a clear title and a brief description.
It must start with a single "root" node.
Each node must have an id (integer), title, description, a type ('core', 'elective', 'tool'), and an array of children nodes.
'core' is for fundamental concepts.
'elective' is for optional but recommended topics or alternative paths.
'tool' is for specific software, libraries, or frameworks.
The structure must be hierarchical. Keep the roadmap concise but comprehensive, with a depth of 3-5 levels.
Generate a unique ID for each node.
`, topic)
}

func nodeProperties() map[string]any {
	return map[string]any{
		"id":          map[string]any{"type": "integer"},
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"type":        map[string]any{"type": "string", "enum": []string{string(Core), string(Elective), string(Tool)}},
	}
}

// Schema describes the root node and one level of children. Nested
// children are left out because Gemini schemas cannot recurse; the prompt
// asks for the deeper levels.
func Schema() map[string]any {
	child := map[string]any{
		"type":       "object",
		"properties": nodeProperties(),
		"required":   []string{"id", "title", "description", "type"},
	}
	rootProps := nodeProperties()
	rootProps["children"] = map[string]any{"type": "array", "items": child}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"root": map[string]any{
				"type":       "object",
				"properties": rootProps,
				"required":   []string{"id", "title", "description", "type", "children"},
			},
		},
		"required": []string{"title", "description", "root"},
	}
}

// Generate creates a roadmap for topic.
func (g *Generator) Generate(ctx context.Context, topic string) (*Roadmap, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	start := time.Now()
	var r Roadmap
	err := llm.GenerateJSON(ctx, g.provider, llm.Request{
		Model:          g.model,
		Messages:       []llm.Message{llm.UserText(BuildPrompt(topic))},
		Temperature:    llm.Temperature(g.temperature),
		ResponseSchema: Schema(),
	}, &r)
	if err != nil {
		g.logger.Warn("roadmap generation failed", zap.String("topic", topic), zap.Error(err))
		return nil, fmt.Errorf("generate roadmap: %w", err)
	}

	if fixed := Normalize(&r); fixed > 0 {
		g.logger.Debug("normalized roadmap nodes", zap.String("topic", topic), zap.Int("nodes", fixed))
	}
	if err := Validate(&r); err != nil {
		return nil, fmt.Errorf("generate roadmap: %w: %v", llm.ErrInvalidResponse, err)
	}

	g.logger.Info("roadmap generated",
		zap.String("topic", topic),
		zap.Int("nodes", Count(r.Root)),
		zap.Int("depth", Depth(r.Root)),
		zap.Duration("elapsed", time.Since(start)))
	return &r, nil
}
