package rod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	// A canceled context must fail before any browser interaction.
	f := &Fetcher{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://news.example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
