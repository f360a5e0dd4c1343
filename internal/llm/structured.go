package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// CollectText streams req to completion and returns the concatenated text.
// A retry resets the collected text.
// Failures from the provider are returned as *ProviderError.
func CollectText(ctx context.Context, p Provider, req Request) (string, error) {
	stream, err := p.Stream(ctx, req)
	if err != nil {
		return "", WrapProviderError(p, err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", WrapProviderError(p, err)
		}
		switch event.Type {
		case EventTextDelta:
			sb.WriteString(event.Text)
		case EventRetry:
			sb.Reset()
		case EventError:
			if event.Err != nil {
				return "", WrapProviderError(p, event.Err)
			}
		}
	}
}

// GenerateJSON sends req with its ResponseSchema and decodes the reply
// into out.
func GenerateJSON(ctx context.Context, p Provider, req Request, out any) error {
	if req.ResponseSchema == nil {
		return fmt.Errorf("GenerateJSON: request has no response schema")
	}
	text, err := CollectText(ctx, p, req)
	if err != nil {
		return err
	}
	payload := stripCodeFence(text)
	if payload == "" {
		return fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// stripCodeFence removes a ```json ... ``` wrapper that models sometimes
// add even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
