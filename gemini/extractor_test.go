package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens/gemini"
)

func TestExtractEntities_EmptyTextSkipsModelCall(t *testing.T) {
	t.Parallel()

	extractor := gemini.NewEntityExtractor(nil) // nil client ok, must not be reached

	entities, err := extractor.ExtractEntities(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestExtractConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.ExtractConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "one company name or ticker per line")
}

func TestExtractConfig_SetsZeroTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.ExtractConfig()

	require.NotNil(t, config.Temperature)
	assert.Zero(t, *config.Temperature)
}

func TestParseEntityLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"single ticker", "TSLA", []string{"TSLA"}},
		{"multiple lines", "Apple\nMicrosoft\n", []string{"Apple", "Microsoft"}},
		{"bulleted lines", "- Apple\n- Microsoft", []string{"Apple", "Microsoft"}},
		{"quoted lines", "\"Tesla\"", []string{"Tesla"}},
		{"trailing period stripped", "Apple Inc.", []string{"Apple Inc"}},
		{"class share ticker kept intact", "BRK.B", []string{"BRK.B"}},
		{"none sentinel", "NONE", nil},
		{"lowercase none sentinel", "none", nil},
		{"none among other lines", "Apple\nNONE", nil},
		{"empty output", "", nil},
		{"blank lines only", "\n\n  \n", nil},
		{"prose is rejected", "The user is asking about Apple, a company that makes phones.", nil},
		{"sentence punctuation is rejected", "I could not find any company!", nil},
		{"too many lines rejected", strings.Repeat("AAPL\n", 9), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gemini.ParseEntityLines(tt.out))
		})
	}
}
