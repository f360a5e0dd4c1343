// Package advisor asks the model for career recommendations tailored to a
// student profile.
package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/skillpath/skillpath/internal/llm"
	"go.uber.org/zap"
)

const DefaultTemperature = 0.5

// Advisor produces career recommendations.
type Advisor struct {
	provider    llm.Provider
	model       string
	temperature float32
	logger      *zap.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

func WithModel(model string) Option { return func(a *Advisor) { a.model = model } }

func WithTemperature(t float32) Option { return func(a *Advisor) { a.temperature = t } }

func WithLogger(l *zap.Logger) Option { return func(a *Advisor) { a.logger = l } }

func New(p llm.Provider, opts ...Option) *Advisor {
	a := &Advisor{provider: p, temperature: DefaultTemperature, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recommend validates the profile and asks the model for recommendations.
func (a *Advisor) Recommend(ctx context.Context, profile StudentProfile) (*Response, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var resp Response
	err := llm.GenerateJSON(ctx, a.provider, llm.Request{
		Model:          a.model,
		Messages:       []llm.Message{llm.UserText(BuildPrompt(profile))},
		Temperature:    llm.Temperature(a.temperature),
		ResponseSchema: Schema(),
	}, &resp)
	if err != nil {
		a.logger.Warn("career recommendation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("get career recommendations: %w", err)
	}
	if len(resp.Recommendations) == 0 {
		return nil, fmt.Errorf("get career recommendations: %w: no recommendations", llm.ErrInvalidResponse)
	}

	a.logger.Info("career recommendations ready",
		zap.String("student", profile.Name),
		zap.Int("paths", len(resp.Recommendations)),
		zap.Duration("elapsed", time.Since(start)))
	return &resp, nil
}
