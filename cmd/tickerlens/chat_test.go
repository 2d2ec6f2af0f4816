package main_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	main "github.com/tickerlens/tickerlens/cmd/tickerlens"
)

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers questions until quit", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := askDeps(stdout, &bytes.Buffer{})
		deps.Stdin = strings.NewReader("How is AAPL doing?\nquit\n")

		cmd := &main.ChatCmd{Limit: 10, TimebiasAlpha: 1.0}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Yes, Apple had a strong quarter.")
		assert.Contains(t, output, "Goodbye!")
	})

	t.Run("exits cleanly on end of input", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := askDeps(stdout, &bytes.Buffer{})
		deps.Stdin = strings.NewReader("")

		cmd := &main.ChatCmd{Limit: 10, TimebiasAlpha: 1.0}
		require.NoError(t, cmd.Run(deps))
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := askDeps(stdout, &bytes.Buffer{})
		deps.Stdin = strings.NewReader("\n   \nexit\n")

		cmd := &main.ChatCmd{Limit: 10, TimebiasAlpha: 1.0}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "strong quarter")
	})
}
