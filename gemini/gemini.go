// Package gemini implements the model-backed services (entity
// extraction, summarization, answer generation) using Google Gemini.
package gemini

import (
	"context"

	"github.com/tickerlens/tickerlens"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// generate runs a single-turn generation and returns the response text.
func generate(ctx context.Context, client *genai.Client, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", tickerlens.Errorf(tickerlens.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func systemConfig(instruction string, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature: &temperature,
	}
}
