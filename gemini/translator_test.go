package gemini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tickerlens/tickerlens/gemini"
)

func TestTranslator_Translate_EmptyTextSkipsModelCall(t *testing.T) {
	t.Parallel()

	translator := gemini.NewTranslator(nil)

	out, err := translator.Translate(context.Background(), " \n ")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTranslateConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.TranslateConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "Translate the input text below into English")
}

func TestTranslateConfig_SetsZeroTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.TranslateConfig()

	require.NotNil(t, config.Temperature)
	assert.Zero(t, *config.Temperature)
}
